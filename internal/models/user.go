// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// RoleModerator grants delete rights over other users' posts and comments
// and the ability to clear profile fields.
const RoleModerator = "Moderator"

// User represents an account in the Dtwitter application.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Username          string         `gorm:"uniqueIndex;not null" json:"username"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	Password          string         `gorm:"not null" json:"-"`
	FullName          string         `json:"full_name"`
	Bio               string         `json:"bio"`
	Gender            string         `json:"gender"`
	ProfilePictureURL string         `json:"profile_picture_url"`
	Roles             string         `gorm:"default:''" json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// FriendSummary is the public profile summary returned when a friend
// request is accepted.
type FriendSummary struct {
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	Gender            string    `json:"gender"`
	DateEstablished   time.Time `json:"date_established"`
}
