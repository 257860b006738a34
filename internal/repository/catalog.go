package repository

import (
	"context"

	"examcracker/internal/model"
)

// Package repository contains data access layer abstractions for the catalog.
// Implementations live in subpackages (e.g., postgres) inside this directory.
// No business logic here — strictly persistence operations.

// SubjectRepository reads the seeded subject set. Subjects are immutable via
// the API, so there are no mutation methods.
type SubjectRepository interface {
	// List returns all subjects ordered by display order.
	List(ctx context.Context) ([]model.Subject, error)
}

// SubsectionRepository defines data access for subsections.
type SubsectionRepository interface {
	// ListBySubject returns the subsections of a subject ordered by display order.
	ListBySubject(ctx context.Context, subjectID int64) ([]model.Subsection, error)

	// Create inserts a subsection, assigning display_order = max+1 within the
	// subject (1 when the subject has none) in a single transaction.
	// Returns the generated id.
	Create(ctx context.Context, sub *model.Subsection) (int64, error)

	// Delete removes a subsection and, in the same transaction, every document
	// and question paper referencing it. Returns false if no such row existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// DocumentRepository defines data access for documents.
type DocumentRepository interface {
	// ListBySubsection returns the documents attached to a subsection.
	ListBySubsection(ctx context.Context, subsectionID int64) ([]model.Document, error)

	// Create inserts a document record and returns the generated id.
	Create(ctx context.Context, doc *model.Document) (int64, error)

	// Delete removes a document by id. Returns false if no such row existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// QuestionPaperRepository defines data access for question papers.
type QuestionPaperRepository interface {
	// ListBySubject returns the question papers of a subject. The subsection
	// name is joined via LEFT JOIN so papers whose subsection was deleted
	// still appear with a null subsection name.
	ListBySubject(ctx context.Context, subjectID int64) ([]model.QuestionPaper, error)

	// Create inserts a question paper record and returns the generated id.
	Create(ctx context.Context, qp *model.QuestionPaper) (int64, error)

	// Delete removes a question paper by id. Returns false if no such row existed.
	Delete(ctx context.Context, id int64) (bool, error)
}
