package cache

import (
	"context"
	"log/slog"

	"dtwitter/internal/observability"
)

// Event describes a committed mutation in just enough detail to derive the
// cache keys it staled. Keys is a pure function: same event, same key set.
type Event interface {
	// Name identifies the event type for logs and metrics.
	Name() string
	// Keys returns every cache key whose backing data the mutation changed.
	Keys() []string
}

// PostDeleted is emitted after a post and its children are removed.
// MediaRemoved is set when the external photo was deleted as part of the
// operation, which additionally stales the owner's photo listing.
type PostDeleted struct {
	PostID        uint
	OwnerID       uint
	OwnerUsername string
	MediaRemoved  bool
}

func (e PostDeleted) Name() string { return "post_deleted" }

func (e PostDeleted) Keys() []string {
	keys := []string{
		PostKey(e.PostID),
		PostCommentsKey(e.PostID),
		PostsRecentKey(),
		UserPostsKey(e.OwnerID),
	}
	if e.MediaRemoved {
		keys = append(keys, UserPhotosKey(e.OwnerUsername))
	}
	return keys
}

// PostCreated is emitted after a new post is persisted.
type PostCreated struct {
	OwnerID uint
}

func (e PostCreated) Name() string { return "post_created" }

func (e PostCreated) Keys() []string {
	return []string{PostsRecentKey(), UserPostsKey(e.OwnerID)}
}

// CommentCreated is emitted after a comment is persisted and the parent
// post's comments_count was incremented.
type CommentCreated struct {
	PostID uint
}

func (e CommentCreated) Name() string { return "comment_created" }

func (e CommentCreated) Keys() []string {
	return []string{PostKey(e.PostID), PostCommentsKey(e.PostID)}
}

// CommentDeleted is emitted after a comment and its likes are removed and
// the parent post's comments_count was decremented.
type CommentDeleted struct {
	PostID uint
}

func (e CommentDeleted) Name() string { return "comment_deleted" }

func (e CommentDeleted) Keys() []string {
	return []string{PostKey(e.PostID), PostCommentsKey(e.PostID)}
}

// PostLikeChanged covers both like and unlike on a post.
type PostLikeChanged struct {
	PostID uint
}

func (e PostLikeChanged) Name() string { return "post_like_changed" }

func (e PostLikeChanged) Keys() []string {
	return []string{PostKey(e.PostID)}
}

// CommentLikeChanged covers both like and unlike on a comment. The comment
// is cached inside its parent post's comment listing.
type CommentLikeChanged struct {
	PostID uint
}

func (e CommentLikeChanged) Name() string { return "comment_like_changed" }

func (e CommentLikeChanged) Keys() []string {
	return []string{PostKey(e.PostID), PostCommentsKey(e.PostID)}
}

// FriendRequestResponded is emitted after accept or decline. Friend lists
// are only staled on accept: a decline forms no friendship.
type FriendRequestResponded struct {
	SenderID   uint
	ReceiverID uint
	Accepted   bool
}

func (e FriendRequestResponded) Name() string { return "friend_request_responded" }

func (e FriendRequestResponded) Keys() []string {
	keys := []string{
		FriendRequestsKey(e.SenderID),
		FriendRequestsKey(e.ReceiverID),
		FriendshipStatusKey(e.SenderID, e.ReceiverID),
	}
	if e.Accepted {
		keys = append(keys, FriendsKey(e.SenderID), FriendsKey(e.ReceiverID))
	}
	return keys
}

// ProfileFieldCleared is emitted when a moderator clears a profile field.
type ProfileFieldCleared struct {
	Username string
}

func (e ProfileFieldCleared) Name() string { return "profile_field_cleared" }

func (e ProfileFieldCleared) Keys() []string {
	return []string{UserKey(e.Username)}
}

// Coordinator drops the key set of a committed mutation from the store.
// Apply must be called only after the mutation has durably committed;
// invalidating before commit risks a reader repopulating the cache with the
// stale value in the gap.
type Coordinator struct {
	store  Store
	logger *slog.Logger
}

// NewCoordinator returns a Coordinator over the given store.
func NewCoordinator(store Store, logger *slog.Logger) *Coordinator {
	return &Coordinator{store: store, logger: logger}
}

// Apply invalidates every key the event stales. It is fire-and-forget from
// the handler's perspective: store failures are logged and counted, never
// surfaced, because the mutation has already committed.
func (c *Coordinator) Apply(ctx context.Context, event Event) {
	keys := event.Keys()
	observability.CacheInvalidations.WithLabelValues(event.Name()).Add(float64(len(keys)))

	if err := c.store.Invalidate(ctx, keys...); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("event", event.Name()),
			slog.Any("keys", keys),
			slog.String("error", err.Error()),
		)
	}
}
