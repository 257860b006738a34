package mocks

import (
	"context"

	"examcracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

type MockSubsectionRepository struct {
	mock.Mock
}

func (m *MockSubsectionRepository) ListBySubject(ctx context.Context, subjectID int64) ([]model.Subsection, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subsection), args.Error(1)
}

func (m *MockSubsectionRepository) Create(ctx context.Context, sub *model.Subsection) (int64, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubsectionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) ListBySubsection(ctx context.Context, subsectionID int64) ([]model.Document, error) {
	args := m.Called(ctx, subsectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) (int64, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockQuestionPaperRepository struct {
	mock.Mock
}

func (m *MockQuestionPaperRepository) ListBySubject(ctx context.Context, subjectID int64) ([]model.QuestionPaper, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuestionPaper), args.Error(1)
}

func (m *MockQuestionPaperRepository) Create(ctx context.Context, qp *model.QuestionPaper) (int64, error) {
	args := m.Called(ctx, qp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionPaperRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
