package postgres

import (
	"context"
	"database/sql"

	"examcracker/internal/model"
	"examcracker/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// ListBySubsection returns the documents attached to a subsection.
func (r *DocumentPostgres) ListBySubsection(ctx context.Context, subsectionID int64) ([]model.Document, error) {
	const q = `
		SELECT id, subsection_id, name, link, upload_method, storage_path, created_at
		FROM documents
		WHERE subsection_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, q, subsectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.SubsectionID, &d.Name, &d.Link, &d.UploadMethod, &d.StoragePath, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new document row and returns the generated id.
// A missing subsection is rejected by the foreign key constraint.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (int64, error) {
	const q = `
		INSERT INTO documents (subsection_id, name, link, upload_method, storage_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		doc.SubsectionID,
		doc.Name,
		doc.Link,
		doc.UploadMethod,
		doc.StoragePath,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	doc.ID = id
	return id, nil
}

// Delete removes a document by id and reports whether a row was removed.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM documents WHERE id = $1`
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
