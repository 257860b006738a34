package postgres

import (
	"context"
	"errors"
	"testing"

	"examcracker/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsectionPostgres_ListBySubject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSubsectionPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "subject_id", "name", "icon", "display_order"}).
		AddRow(int64(1), int64(2), "Grammar", "fa-folder", 1).
		AddRow(int64(2), int64(2), "Literature", "fa-folder", 2)

	mock.ExpectQuery("SELECT id, subject_id, name, icon, display_order").
		WithArgs(int64(2)).
		WillReturnRows(rows)

	items, err := repo.ListBySubject(ctx, 2)

	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Grammar", items[0].Name)
	assert.Equal(t, 1, items[0].DisplayOrder)
	assert.Equal(t, 2, items[1].DisplayOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubsectionPostgres_Create(t *testing.T) {
	t.Run("first subsection gets display order 1", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubsectionPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO subsections").
			WithArgs(int64(2), "Grammar", "fa-folder", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectCommit()

		sub := &model.Subsection{SubjectID: 2, Name: "Grammar", Icon: "fa-folder"}
		id, err := repo.Create(context.Background(), sub)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.Equal(t, 1, sub.DisplayOrder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("subsequent subsection gets max plus one", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubsectionPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4))
		mock.ExpectQuery("INSERT INTO subsections").
			WithArgs(int64(2), "Poetry", "fa-folder", 4).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
		mock.ExpectCommit()

		sub := &model.Subsection{SubjectID: 2, Name: "Poetry", Icon: "fa-folder"}
		_, err = repo.Create(context.Background(), sub)

		assert.NoError(t, err)
		assert.Equal(t, 4, sub.DisplayOrder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubsectionPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO subsections").
			WillReturnError(errors.New("violates foreign key constraint"))
		mock.ExpectRollback()

		_, err = repo.Create(context.Background(), &model.Subsection{SubjectID: 99, Name: "Ghost"})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubsectionPostgres_Delete(t *testing.T) {
	t.Run("cascades to documents and question papers", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubsectionPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM documents WHERE subsection_id").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM question_papers WHERE subsection_id").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM subsections WHERE id").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		existed, err := repo.Delete(context.Background(), 3)

		assert.NoError(t, err)
		assert.True(t, existed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row reports not existed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubsectionPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM documents WHERE subsection_id").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM question_papers WHERE subsection_id").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM subsections WHERE id").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		existed, err := repo.Delete(context.Background(), 404)

		assert.NoError(t, err)
		assert.False(t, existed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cascade failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubsectionPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM documents WHERE subsection_id").
			WithArgs(int64(3)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err = repo.Delete(context.Background(), 3)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
