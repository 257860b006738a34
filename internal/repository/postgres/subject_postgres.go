package postgres

import (
	"context"
	"database/sql"

	"examcracker/internal/model"
	"examcracker/internal/repository"
)

// SubjectPostgres is a PostgreSQL implementation of repository.SubjectRepository.
type SubjectPostgres struct {
	db *sql.DB
}

// NewSubjectPostgres creates a new SubjectPostgres repository.
func NewSubjectPostgres(db *sql.DB) *SubjectPostgres {
	return &SubjectPostgres{db: db}
}

var _ repository.SubjectRepository = (*SubjectPostgres)(nil)

// List returns every subject ordered by display order.
func (r *SubjectPostgres) List(ctx context.Context) ([]model.Subject, error) {
	const q = `
		SELECT id, name, icon, display_order
		FROM subjects
		ORDER BY display_order
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Subject, 0)
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Icon, &s.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
