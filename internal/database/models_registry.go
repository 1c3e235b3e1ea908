package database

import (
	"dtwitter/internal/models"

	"gorm.io/gorm"
)

// RegisteredModels returns every model that participates in AutoMigrate,
// ordered so foreign-key targets migrate before their referrers.
func RegisteredModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.FriendRequest{},
		&models.Friendship{},
	}
}

// Migrate runs AutoMigrate for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(RegisteredModels()...)
}
