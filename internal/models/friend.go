package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendRequestStatus represents the lifecycle state of a friend request.
// Pending is the only state that accepts a response; Accepted and Declined
// are terminal.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// Terminal reports whether the status permits no further transitions.
func (s FriendRequestStatus) Terminal() bool {
	return s == FriendRequestAccepted || s == FriendRequestDeclined
}

// FriendRequest is a directed request from sender to receiver. It can be
// responded to at most once.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	SenderID   uint                `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint                `gorm:"not null;index" json:"receiver_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// Friendship is an unordered pair of users. BeforeCreate normalizes the pair
// so the unique index holds regardless of which user initiated the request.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user1_id"`
	User2ID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2 User `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// BeforeCreate ensures User1ID < User2ID for consistent ordering
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.User1ID > f.User2ID {
		f.User1ID, f.User2ID = f.User2ID, f.User1ID
	}
	return nil
}
