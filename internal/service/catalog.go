package service

import (
	"context"
	"errors"
	"fmt"

	"examcracker/internal/model"
	"examcracker/internal/repository"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNameRequired = errors.New("name is required")
)

// Object store namespaces for uploaded material.
const (
	documentNamespace = "ExamCracker"
	questionNamespace = "ExamCracker/Questions"
)

const defaultIcon = "fa-folder"

// MaterialInput is the shared payload for creating documents and question
// papers. Link is used when UploadMethod is "link"; FileData/FileName when it
// is "cloud-file".
type MaterialInput struct {
	Name         string
	Link         string
	UploadMethod string
	FileData     string
	FileName     string
}

// CatalogService defines the use cases over the subject hierarchy. All
// mutations require the caller to have passed the admin gate; this layer does
// not re-check identity.
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]model.Subject, error)

	ListSubsections(ctx context.Context, subjectID int64) ([]model.Subsection, error)
	CreateSubsection(ctx context.Context, subjectID int64, name, icon string) (int64, error)
	DeleteSubsection(ctx context.Context, id int64) error

	ListDocuments(ctx context.Context, subsectionID int64) ([]model.Document, error)
	CreateDocument(ctx context.Context, subsectionID int64, in MaterialInput) (int64, error)
	DeleteDocument(ctx context.Context, id int64) error

	ListQuestionPapers(ctx context.Context, subjectID int64) ([]model.QuestionPaper, error)
	CreateQuestionPaper(ctx context.Context, subjectID int64, subsectionID *int64, in MaterialInput) (int64, error)
	DeleteQuestionPaper(ctx context.Context, id int64) error
}

type catalogService struct {
	subjects    repository.SubjectRepository
	subsections repository.SubsectionRepository
	documents   repository.DocumentRepository
	questions   repository.QuestionPaperRepository
	resolver    UploadResolver
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(
	subjects repository.SubjectRepository,
	subsections repository.SubsectionRepository,
	documents repository.DocumentRepository,
	questions repository.QuestionPaperRepository,
	resolver UploadResolver,
) CatalogService {
	return &catalogService{
		subjects:    subjects,
		subsections: subsections,
		documents:   documents,
		questions:   questions,
		resolver:    resolver,
	}
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *catalogService) ListSubsections(ctx context.Context, subjectID int64) ([]model.Subsection, error) {
	return s.subsections.ListBySubject(ctx, subjectID)
}

func (s *catalogService) CreateSubsection(ctx context.Context, subjectID int64, name, icon string) (int64, error) {
	if name == "" {
		return 0, ErrNameRequired
	}
	if icon == "" {
		icon = defaultIcon
	}
	id, err := s.subsections.Create(ctx, &model.Subsection{
		SubjectID: subjectID,
		Name:      name,
		Icon:      icon,
	})
	if err != nil {
		return 0, fmt.Errorf("create subsection: %w", err)
	}
	return id, nil
}

func (s *catalogService) DeleteSubsection(ctx context.Context, id int64) error {
	existed, err := s.subsections.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete subsection: %w", err)
	}
	if !existed {
		return ErrNotFound
	}
	return nil
}

func (s *catalogService) ListDocuments(ctx context.Context, subsectionID int64) ([]model.Document, error) {
	return s.documents.ListBySubsection(ctx, subsectionID)
}

func (s *catalogService) CreateDocument(ctx context.Context, subsectionID int64, in MaterialInput) (int64, error) {
	if in.Name == "" {
		return 0, ErrNameRequired
	}

	resolved, err := s.resolver.Resolve(ctx, ResolveInput{
		Method:    in.UploadMethod,
		Name:      in.Name,
		Link:      in.Link,
		FileData:  in.FileData,
		FileName:  in.FileName,
		Namespace: documentNamespace,
	})
	if err != nil {
		return 0, err
	}

	id, err := s.documents.Create(ctx, &model.Document{
		SubsectionID: subsectionID,
		Name:         in.Name,
		Link:         resolved.Link,
		UploadMethod: resolved.Method,
		StoragePath:  resolved.StoragePath,
	})
	if err != nil {
		return 0, fmt.Errorf("create document: %w", err)
	}
	return id, nil
}

func (s *catalogService) DeleteDocument(ctx context.Context, id int64) error {
	existed, err := s.documents.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if !existed {
		return ErrNotFound
	}
	return nil
}

func (s *catalogService) ListQuestionPapers(ctx context.Context, subjectID int64) ([]model.QuestionPaper, error) {
	return s.questions.ListBySubject(ctx, subjectID)
}

func (s *catalogService) CreateQuestionPaper(ctx context.Context, subjectID int64, subsectionID *int64, in MaterialInput) (int64, error) {
	if in.Name == "" {
		return 0, ErrNameRequired
	}

	resolved, err := s.resolver.Resolve(ctx, ResolveInput{
		Method:    in.UploadMethod,
		Name:      in.Name,
		Link:      in.Link,
		FileData:  in.FileData,
		FileName:  in.FileName,
		Namespace: questionNamespace,
	})
	if err != nil {
		return 0, err
	}

	id, err := s.questions.Create(ctx, &model.QuestionPaper{
		SubjectID:    subjectID,
		SubsectionID: subsectionID,
		Name:         in.Name,
		Link:         resolved.Link,
		UploadMethod: resolved.Method,
		StoragePath:  resolved.StoragePath,
	})
	if err != nil {
		return 0, fmt.Errorf("create question paper: %w", err)
	}
	return id, nil
}

func (s *catalogService) DeleteQuestionPaper(ctx context.Context, id int64) error {
	existed, err := s.questions.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question paper: %w", err)
	}
	if !existed {
		return ErrNotFound
	}
	return nil
}
