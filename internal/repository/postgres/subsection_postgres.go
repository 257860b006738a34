package postgres

import (
	"context"
	"database/sql"

	"examcracker/internal/model"
	"examcracker/internal/repository"
)

// SubsectionPostgres is a PostgreSQL implementation of repository.SubsectionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type SubsectionPostgres struct {
	db *sql.DB
}

// NewSubsectionPostgres creates a new SubsectionPostgres repository.
func NewSubsectionPostgres(db *sql.DB) *SubsectionPostgres {
	return &SubsectionPostgres{db: db}
}

var _ repository.SubsectionRepository = (*SubsectionPostgres)(nil)

// ListBySubject returns the subsections of a subject ordered by display order.
func (r *SubsectionPostgres) ListBySubject(ctx context.Context, subjectID int64) ([]model.Subsection, error) {
	const q = `
		SELECT id, subject_id, name, icon, display_order
		FROM subsections
		WHERE subject_id = $1
		ORDER BY display_order
	`
	rows, err := r.db.QueryContext(ctx, q, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Subsection, 0)
	for rows.Next() {
		var s model.Subsection
		if err := rows.Scan(&s.ID, &s.SubjectID, &s.Name, &s.Icon, &s.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a subsection with the next display order within its subject.
// The order lookup and the insert run in one transaction so concurrent creates
// cannot observe a partially assigned order.
func (r *SubsectionPostgres) Create(ctx context.Context, sub *model.Subsection) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const qOrder = `SELECT COALESCE(MAX(display_order), 0) + 1 FROM subsections WHERE subject_id = $1`
	var order int
	if err := tx.QueryRowContext(ctx, qOrder, sub.SubjectID).Scan(&order); err != nil {
		return 0, err
	}

	const qInsert = `
		INSERT INTO subsections (subject_id, name, icon, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := tx.QueryRowContext(ctx, qInsert, sub.SubjectID, sub.Name, sub.Icon, order).Scan(&id); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	sub.ID = id
	sub.DisplayOrder = order
	return id, nil
}

// Delete removes a subsection together with its dependent documents and
// question papers in a single transaction.
func (r *SubsectionPostgres) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE subsection_id = $1`, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM question_papers WHERE subsection_id = $1`, id); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM subsections WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}
