package mocks

import (
	"context"

	"examcracker/internal/model"
	"examcracker/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *MockCatalogService) ListSubsections(ctx context.Context, subjectID int64) ([]model.Subsection, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subsection), args.Error(1)
}

func (m *MockCatalogService) CreateSubsection(ctx context.Context, subjectID int64, name, icon string) (int64, error) {
	args := m.Called(ctx, subjectID, name, icon)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogService) DeleteSubsection(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) ListDocuments(ctx context.Context, subsectionID int64) ([]model.Document, error) {
	args := m.Called(ctx, subsectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockCatalogService) CreateDocument(ctx context.Context, subsectionID int64, in service.MaterialInput) (int64, error) {
	args := m.Called(ctx, subsectionID, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogService) DeleteDocument(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) ListQuestionPapers(ctx context.Context, subjectID int64) ([]model.QuestionPaper, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuestionPaper), args.Error(1)
}

func (m *MockCatalogService) CreateQuestionPaper(ctx context.Context, subjectID int64, subsectionID *int64, in service.MaterialInput) (int64, error) {
	args := m.Called(ctx, subjectID, subsectionID, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogService) DeleteQuestionPaper(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
