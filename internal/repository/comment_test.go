package repository

import (
	"context"
	"regexp"
	"testing"

	"dtwitter/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommentRepository_CreateAdjustsCounter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Content: "Nice post!", PostID: 1, UserID: 2}

	// Row insert and counter increment share one transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "comments_count"=comments_count + 1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(ctx, 99)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteCascade(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	// Likes on the comment are removed first.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE comment_id = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	// The parent post loses exactly one comment.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "comments_count"=comments_count - 1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Comment rows are soft-deleted.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "deleted_at"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteCascade(ctx, 3, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteCascadeRollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE comment_id = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "comments_count"=comments_count - 1`)).
		WithArgs(1).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.DeleteCascade(ctx, 3, 1)
	assert.True(t, models.HasCode(err, models.CodeServerError))
	assert.NoError(t, mock.ExpectationsWereMet())
}
