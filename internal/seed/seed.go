// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"dtwitter/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with consistent demo data: every counter
// column matches its backing rows exactly, so seeded data never starts in a
// state the invariants forbid.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	//nolint:gosec // weak randomness is fine for demo data
	return &Seeder{db: db, r: rand.New(rand.NewSource(seed))}
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, comments, posts, friendships, friend_requests, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run seeds users, posts, comments, likes, and friendships.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := s.createEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := s.createFriendships(users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}

	log.Println("Seeding complete. All test users have the password: password123")
	return nil
}

func (s *Seeder) createUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user := models.User{
			Username:          username,
			Email:             fmt.Sprintf("%s@example.com", username),
			Password:          string(hashed),
			FullName:          gofakeit.Name(),
			Bio:               gofakeit.Sentence(8),
			Gender:            gofakeit.Gender(),
			ProfilePictureURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}
		if i == 0 {
			user.Roles = models.RoleModerator
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createPosts(users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		owner := users[s.r.Intn(len(users))]
		post := models.Post{
			Content: gofakeit.Paragraph(1, 3, 8, "\n"),
			UserID:  owner.ID,
			CreatedAt: time.Now().
				Add(-time.Duration(s.r.Intn(90*24)) * time.Hour),
		}
		if s.r.Intn(3) == 0 {
			id := gofakeit.UUID()
			post.PhotoURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", id)
			post.PhotoPublicID = "seed/" + id
		}
		if err := s.db.Create(&post).Error; err != nil {
			log.Printf("failed to create post: %v", err)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement attaches comments and likes, then writes each aggregate's
// counters from the rows actually inserted.
func (s *Seeder) createEngagement(users []models.User, posts []models.Post) error {
	if len(users) == 0 {
		return nil
	}

	for i := range posts {
		post := &posts[i]

		numComments := s.r.Intn(6)
		for j := 0; j < numComments; j++ {
			author := users[s.r.Intn(len(users))]
			comment := models.Comment{
				Content: gofakeit.Sentence(12),
				UserID:  author.ID,
				PostID:  post.ID,
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}

			for _, liker := range s.pickUsers(users, s.r.Intn(4)) {
				commentID := comment.ID
				like := models.Like{UserID: liker.ID, CommentID: &commentID}
				if err := s.db.Create(&like).Error; err != nil {
					return err
				}
				comment.LikesCount++
			}
			if comment.LikesCount > 0 {
				if err := s.db.Model(&comment).UpdateColumn("likes_count", comment.LikesCount).Error; err != nil {
					return err
				}
			}
		}

		likers := s.pickUsers(users, s.r.Intn(len(users)+1))
		for _, liker := range likers {
			postID := post.ID
			like := models.Like{UserID: liker.ID, PostID: &postID}
			if err := s.db.Create(&like).Error; err != nil {
				return err
			}
		}

		err := s.db.Model(post).UpdateColumns(map[string]interface{}{
			"comments_count": numComments,
			"likes_count":    len(likers),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// createFriendships links random user pairs, with a few requests left
// pending.
func (s *Seeder) createFriendships(users []models.User) error {
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			roll := s.r.Intn(10)
			if roll > 2 {
				continue
			}

			request := models.FriendRequest{
				SenderID:   users[i].ID,
				ReceiverID: users[j].ID,
				Status:     models.FriendRequestPending,
			}
			if roll < 2 {
				request.Status = models.FriendRequestAccepted
			}
			if err := s.db.Create(&request).Error; err != nil {
				return err
			}

			if request.Status == models.FriendRequestAccepted {
				friendship := models.Friendship{User1ID: users[i].ID, User2ID: users[j].ID}
				if err := s.db.Create(&friendship).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// pickUsers returns up to n distinct users.
func (s *Seeder) pickUsers(users []models.User, n int) []models.User {
	if n >= len(users) {
		n = len(users)
	}
	perm := s.r.Perm(len(users))
	picked := make([]models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}
