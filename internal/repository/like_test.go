package repository

import (
	"context"
	"regexp"
	"testing"

	"dtwitter/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestLikeRepository_LikePost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes (user_id, post_id, created_at)`)).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "likes_count"=likes_count + 1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.LikePost(ctx, 5, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_LikePostDuplicateIsConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	// ON CONFLICT DO NOTHING swallows the duplicate: zero rows affected.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes (user_id, post_id, created_at)`)).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.LikePost(ctx, 5, 1)
	assert.True(t, models.HasCode(err, models.CodeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_UnlikePost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Decrement is clamped so the counter can never go negative.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "likes_count"=GREATEST(likes_count - 1, 0)`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UnlikePost(ctx, 5, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_UnlikePostMissingLikeIsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UnlikePost(ctx, 5, 1)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_LikeComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes (user_id, comment_id, created_at)`)).
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "likes_count"=likes_count + 1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.LikeComment(ctx, 5, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_UnlikeComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND comment_id = $2`)).
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "likes_count"=GREATEST(likes_count - 1, 0)`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UnlikeComment(ctx, 5, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
