package postgres

import (
	"context"
	"database/sql"

	"examcracker/internal/model"
	"examcracker/internal/repository"
)

// QuestionPaperPostgres is a PostgreSQL implementation of repository.QuestionPaperRepository.
type QuestionPaperPostgres struct {
	db *sql.DB
}

// NewQuestionPaperPostgres creates a new QuestionPaperPostgres repository.
func NewQuestionPaperPostgres(db *sql.DB) *QuestionPaperPostgres {
	return &QuestionPaperPostgres{db: db}
}

var _ repository.QuestionPaperRepository = (*QuestionPaperPostgres)(nil)

// ListBySubject returns the question papers of a subject. The LEFT JOIN keeps
// papers whose subsection was deleted visible with a null subsection name.
// A paper matches either through its own subject_id or through the subject of
// its joined subsection.
func (r *QuestionPaperPostgres) ListBySubject(ctx context.Context, subjectID int64) ([]model.QuestionPaper, error) {
	const q = `
		SELECT qp.id, qp.subject_id, qp.subsection_id, s.name, qp.name, qp.link,
		       qp.upload_method, qp.storage_path, qp.created_at
		FROM question_papers qp
		LEFT JOIN subsections s ON qp.subsection_id = s.id
		WHERE qp.subject_id = $1 OR s.subject_id = $1
		ORDER BY qp.created_at, qp.id
	`
	rows, err := r.db.QueryContext(ctx, q, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.QuestionPaper, 0)
	for rows.Next() {
		var (
			qp             model.QuestionPaper
			subsectionID   sql.NullInt64
			subsectionName sql.NullString
		)
		if err := rows.Scan(&qp.ID, &qp.SubjectID, &subsectionID, &subsectionName, &qp.Name,
			&qp.Link, &qp.UploadMethod, &qp.StoragePath, &qp.CreatedAt); err != nil {
			return nil, err
		}
		if subsectionID.Valid {
			qp.SubsectionID = &subsectionID.Int64
		}
		if subsectionName.Valid {
			qp.SubsectionName = &subsectionName.String
		}
		items = append(items, qp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new question paper row and returns the generated id.
func (r *QuestionPaperPostgres) Create(ctx context.Context, qp *model.QuestionPaper) (int64, error) {
	const q = `
		INSERT INTO question_papers (subject_id, subsection_id, name, link, upload_method, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var subsectionID sql.NullInt64
	if qp.SubsectionID != nil {
		subsectionID = sql.NullInt64{Int64: *qp.SubsectionID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, q,
		qp.SubjectID,
		subsectionID,
		qp.Name,
		qp.Link,
		qp.UploadMethod,
		qp.StoragePath,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	qp.ID = id
	return id, nil
}

// Delete removes a question paper by id and reports whether a row was removed.
func (r *QuestionPaperPostgres) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM question_papers WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
