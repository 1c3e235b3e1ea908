// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dtwitter/internal/cache"
	"dtwitter/internal/config"
	"dtwitter/internal/database"
	"dtwitter/internal/media"
	"dtwitter/internal/middleware"
	"dtwitter/internal/repository"
	"dtwitter/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	friendRepo  repository.FriendRepository

	postService    *service.PostService
	commentService *service.CommentService
	likeService    *service.LikeService
	friendService  *service.FriendService
	userService    *service.UserService
}

// NewServer creates a server instance, establishing the database and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	store := cache.NewRedisStore(redisClient)
	invalidator := cache.NewCoordinator(store, middleware.Logger)

	var photos media.PhotoStore = media.NoopPhotoStore{}
	if cfg.CloudinaryCloudName != "" {
		photos = media.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}

	prom := fiberprometheus.New("dtwitter-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
		friendRepo:     friendRepo,
	}
	server.postService = service.NewPostService(postRepo, userRepo, photos, store, invalidator)
	server.commentService = service.NewCommentService(commentRepo, postRepo, store, invalidator)
	server.likeService = service.NewLikeService(likeRepo, postRepo, commentRepo, invalidator)
	server.friendService = service.NewFriendService(friendRepo, userRepo, store, invalidator)
	server.userService = service.NewUserService(userRepo, postRepo, store, invalidator)

	return server
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(middleware.RequestLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:4200,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public read paths.
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	publicPosts.Get("/:id/comments", s.GetComments)
	publicPosts.Get("/:id", s.GetPost)

	publicUsers := api.Group("/users")
	publicUsers.Get("/:username/photos", s.GetUserPhotos)
	publicUsers.Get("/:username", s.GetUserProfile)

	// Protected routes.
	protected := api.Group("", middleware.AuthRequired)

	posts := protected.Group("/posts")
	posts.Post("/", s.CreatePost)
	// Specific /:id/:resource routes before the generic /:id route.
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Delete("/:id", s.DeletePost)

	comments := protected.Group("/comments")
	comments.Post("/:id/like", s.LikeComment)
	comments.Delete("/:id/like", s.UnlikeComment)
	comments.Delete("/:id", s.DeleteComment)

	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Post("/requests/:userId", s.SendFriendRequest)
	friends.Get("/requests", s.GetPendingRequests)
	friends.Post("/requests/:requestId/respond", s.RespondToFriendRequest)
	friends.Get("/status/:userId", s.GetFriendshipStatus)

	moderation := protected.Group("/moderation")
	moderation.Delete("/users/:username/:field", s.ClearProfileField)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "absent"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"redis":  redisStatus,
	})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.WarnContext(ctx, "redis close failed", slog.String("error", err.Error()))
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
