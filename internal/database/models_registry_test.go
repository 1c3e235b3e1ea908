package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "posts", "comments", "likes", "friend_requests", "friendships"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	// Denormalized counters must exist as real columns, not computed fields.
	assert.True(t, db.Migrator().HasColumn("posts", "likes_count"))
	assert.True(t, db.Migrator().HasColumn("posts", "comments_count"))
	assert.True(t, db.Migrator().HasColumn("comments", "likes_count"))
}
