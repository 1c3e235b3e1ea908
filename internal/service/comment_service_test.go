package service

import (
	"context"
	"testing"

	"dtwitter/internal/cache"
	"dtwitter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteComment_Owner(t *testing.T) {
	comment := &models.Comment{ID: 12, PostID: 7, UserID: 3}

	var cascadedComment, cascadedPost uint
	commentRepo := &stubCommentRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			assert.Equal(t, uint(12), id)
			return comment, nil
		},
		deleteCascadeFn: func(_ context.Context, commentID, postID uint) error {
			cascadedComment, cascadedPost = commentID, postID
			return nil
		},
	}
	postRepo := &stubPostRepo{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, CommentsCount: 5}, nil
		},
	}

	invalidator, store := newTestInvalidator(t, cache.PostKey(7), cache.PostCommentsKey(7))

	svc := NewCommentService(commentRepo, postRepo, store, invalidator)
	result, err := svc.DeleteComment(context.Background(), DeleteCommentInput{CommentID: 12, ActorID: 3})

	require.NoError(t, err)
	assert.True(t, result.IsDeleted)
	assert.Equal(t, uint(12), cascadedComment)
	assert.Equal(t, uint(7), cascadedPost)
	assert.False(t, cacheHas(t, store, cache.PostKey(7)))
	assert.False(t, cacheHas(t, store, cache.PostCommentsKey(7)))
}

func TestDeleteComment_Moderator(t *testing.T) {
	comment := &models.Comment{ID: 12, PostID: 7, UserID: 3}
	commentRepo := &stubCommentRepo{
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) { return comment, nil },
	}
	invalidator, store := newTestInvalidator(t)

	svc := NewCommentService(commentRepo, &stubPostRepo{}, store, invalidator)
	result, err := svc.DeleteComment(context.Background(), DeleteCommentInput{
		CommentID:  12,
		ActorID:    50,
		ActorRoles: []string{models.RoleModerator},
	})

	require.NoError(t, err)
	assert.True(t, result.IsDeleted)
}

func TestDeleteComment_NonOwnerUnauthorized(t *testing.T) {
	comment := &models.Comment{ID: 12, PostID: 7, UserID: 3}

	cascaded := false
	commentRepo := &stubCommentRepo{
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) { return comment, nil },
		deleteCascadeFn: func(_ context.Context, _, _ uint) error {
			cascaded = true
			return nil
		},
	}
	invalidator, store := newTestInvalidator(t, cache.PostCommentsKey(7))

	svc := NewCommentService(commentRepo, &stubPostRepo{}, store, invalidator)
	_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{CommentID: 12, ActorID: 4})

	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeUnauthorized))
	assert.False(t, cascaded)
	assert.True(t, cacheHas(t, store, cache.PostCommentsKey(7)))
}

func TestDeleteComment_MissingCommentNotFound(t *testing.T) {
	commentRepo := &stubCommentRepo{
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment not found")
		},
	}
	invalidator, store := newTestInvalidator(t)

	svc := NewCommentService(commentRepo, &stubPostRepo{}, store, invalidator)
	_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{CommentID: 404, ActorID: 3})

	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestDeleteComment_MissingParentPostNotFound(t *testing.T) {
	comment := &models.Comment{ID: 12, PostID: 7, UserID: 3}
	commentRepo := &stubCommentRepo{
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) { return comment, nil },
	}
	postRepo := &stubPostRepo{
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post not found")
		},
	}
	invalidator, store := newTestInvalidator(t)

	svc := NewCommentService(commentRepo, postRepo, store, invalidator)
	_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{CommentID: 12, ActorID: 3})

	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestCreateComment_EmptyContentBadRequest(t *testing.T) {
	invalidator, store := newTestInvalidator(t)
	svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{}, store, invalidator)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{ActorID: 3, PostID: 7})

	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeBadRequest))
}

func TestCreateComment_InvalidatesPostAndListing(t *testing.T) {
	commentRepo := &stubCommentRepo{
		createFn: func(_ context.Context, comment *models.Comment) error {
			comment.ID = 13
			return nil
		},
	}
	invalidator, store := newTestInvalidator(t, cache.PostKey(7), cache.PostCommentsKey(7))

	svc := NewCommentService(commentRepo, &stubPostRepo{}, store, invalidator)
	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{ActorID: 3, PostID: 7, Content: "nice"})

	require.NoError(t, err)
	assert.Equal(t, uint(13), comment.ID)
	assert.False(t, cacheHas(t, store, cache.PostKey(7)))
	assert.False(t, cacheHas(t, store, cache.PostCommentsKey(7)))
}

func TestListComments_CachesPerPost(t *testing.T) {
	fetches := 0
	commentRepo := &stubCommentRepo{
		listByPostFn: func(_ context.Context, postID uint) ([]*models.Comment, error) {
			fetches++
			return []*models.Comment{{ID: 1, PostID: postID}}, nil
		},
	}
	invalidator, store := newTestInvalidator(t)

	svc := NewCommentService(commentRepo, &stubPostRepo{}, store, invalidator)

	first, err := svc.ListComments(context.Background(), 7)
	require.NoError(t, err)
	second, err := svc.ListComments(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 1, fetches)
	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}
