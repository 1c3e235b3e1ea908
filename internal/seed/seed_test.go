package seed

import (
	"testing"

	"dtwitter/internal/database"
	"dtwitter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeederProducesConsistentCounters(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	// ShouldClean false: TRUNCATE ... CASCADE is postgres syntax.
	require.NoError(t, s.Run(Options{NumUsers: 8, NumPosts: 20}))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	require.NotEmpty(t, posts)

	for _, post := range posts {
		var likeRows, commentRows int64
		require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeRows).Error)
		require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentRows).Error)

		assert.EqualValues(t, likeRows, post.LikesCount, "post %d likes_count", post.ID)
		assert.EqualValues(t, commentRows, post.CommentsCount, "post %d comments_count", post.ID)
	}

	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)
	for _, comment := range comments {
		var likeRows int64
		require.NoError(t, db.Model(&models.Like{}).Where("comment_id = ?", comment.ID).Count(&likeRows).Error)
		assert.EqualValues(t, likeRows, comment.LikesCount, "comment %d likes_count", comment.ID)
	}
}

func TestSeederAcceptedRequestsHaveFriendships(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 10, NumPosts: 0}))

	var accepted []models.FriendRequest
	require.NoError(t, db.Where("status = ?", models.FriendRequestAccepted).Find(&accepted).Error)

	for _, request := range accepted {
		lo, hi := request.SenderID, request.ReceiverID
		if lo > hi {
			lo, hi = hi, lo
		}
		var count int64
		require.NoError(t, db.Model(&models.Friendship{}).
			Where("user1_id = ? AND user2_id = ?", lo, hi).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	}
}

func TestSeederFirstUserIsModerator(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 3, NumPosts: 0}))

	var first models.User
	require.NoError(t, db.Order("id").First(&first).Error)
	assert.Equal(t, models.RoleModerator, first.Roles)
}
