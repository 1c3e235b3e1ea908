package cache

import (
	"fmt"
	"time"
)

// Key shapes. Derivation is deterministic and mutation-specific; the same
// functions are used by read paths to populate and by the coordinator to
// invalidate, so the two can never drift apart.
const (
	postKeyPrefix             = "post:%d"
	postCommentsKeyPrefix     = "post:%d:comments"
	postsRecentKey            = "posts:recent"
	userPostsKeyPrefix        = "user-posts:%d"
	userKeyPrefix             = "user:%s"
	userPhotosKeyPrefix       = "user-photos:%s"
	friendsKeyPrefix          = "friends:%d"
	friendRequestsKeyPrefix   = "friend-requests:%d"
	friendshipStatusKeyPrefix = "friendship-status:%d:%d"
)

// TTLs per key family.
const (
	PostTTL             = 30 * time.Minute
	PostCommentsTTL     = 10 * time.Minute
	PostsRecentTTL      = 2 * time.Minute
	UserPostsTTL        = 10 * time.Minute
	UserTTL             = 5 * time.Minute
	UserPhotosTTL       = 10 * time.Minute
	FriendsTTL          = 5 * time.Minute
	FriendRequestsTTL   = 5 * time.Minute
	FriendshipStatusTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostCommentsKey(postID uint) string {
	return fmt.Sprintf(postCommentsKeyPrefix, postID)
}

func PostsRecentKey() string {
	return postsRecentKey
}

func UserPostsKey(userID uint) string {
	return fmt.Sprintf(userPostsKeyPrefix, userID)
}

func UserKey(username string) string {
	return fmt.Sprintf(userKeyPrefix, username)
}

func UserPhotosKey(username string) string {
	return fmt.Sprintf(userPhotosKeyPrefix, username)
}

func FriendsKey(userID uint) string {
	return fmt.Sprintf(friendsKeyPrefix, userID)
}

func FriendRequestsKey(userID uint) string {
	return fmt.Sprintf(friendRequestsKeyPrefix, userID)
}

// FriendshipStatusKey normalizes the unordered pair so both directions map
// to one key.
func FriendshipStatusKey(userID1, userID2 uint) string {
	if userID1 > userID2 {
		userID1, userID2 = userID2, userID1
	}
	return fmt.Sprintf(friendshipStatusKeyPrefix, userID1, userID2)
}
