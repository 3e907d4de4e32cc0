package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookclub/internal/cache"
	"bookclub/internal/config"
	"bookclub/internal/database"
	"bookclub/internal/featureflags"
	"bookclub/internal/middleware"
	"bookclub/internal/notifications"
	"bookclub/internal/repository"
	"bookclub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	clubRepo         repository.ClubRepository
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	tagRepo          repository.TagRepository
	reportRepo       repository.ReportRepository
	notificationRepo repository.NotificationRepository

	notifier *notifications.Notifier
	sink     *notifications.Sink

	membershipService   *service.MembershipService
	postService         *service.PostService
	commentService      *service.CommentService
	moderationService   *service.ModerationService
	tagService          *service.TagService
	notificationService *service.NotificationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	s := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("bookclub-api"),
		userRepo:         repository.NewUserRepository(db),
		clubRepo:         repository.NewClubRepository(db),
		postRepo:         repository.NewPostRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		tagRepo:          repository.NewTagRepository(db),
		reportRepo:       repository.NewReportRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}

	s.notifier = notifications.NewNotifier(redisClient)
	flags := featureflags.NewManager(cfg.FeatureFlags)
	s.sink = notifications.NewSink(s.notificationRepo, s.notifier, flags, middleware.Logger)

	s.membershipService = service.NewMembershipService(s.clubRepo)
	s.postService = service.NewPostService(s.postRepo, s.clubRepo, s.tagRepo, s.sink)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo, s.clubRepo, s.sink)
	s.moderationService = service.NewModerationService(s.reportRepo, s.postRepo, s.clubRepo)
	s.tagService = service.NewTagService(s.tagRepo)
	s.notificationService = service.NewNotificationService(s.notificationRepo)

	middleware.InitMiddleware(cfg)

	return s, nil
}

// SetupMiddleware wires the global middleware chain.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.TrimSpace(s.config.AllowedOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
}

// SetupRoutes registers every API route.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 10, time.Minute, "auth"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, time.Minute, "auth"), s.Login)
	auth.Get("/me", middleware.AuthRequired, s.Me)

	clubs := api.Group("/clubs", middleware.AuthRequired)
	clubs.Post("/", s.CreateClub)
	clubs.Get("/:clubId", s.GetClub)
	clubs.Post("/join", s.JoinClub)
	clubs.Delete("/:clubId/membership", s.LeaveClub)
	clubs.Get("/:clubId/members", s.ListMembers)

	clubs.Get("/:clubId/posts", s.ListClubPosts)
	clubs.Post("/:clubId/posts", s.CreatePost)
	clubs.Get("/:clubId/reports", s.ListClubReports)

	posts := api.Group("/posts", middleware.AuthRequired)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)
	posts.Post("/:id/like", s.TogglePostLike)
	posts.Post("/:id/lock", s.LockPost)
	posts.Delete("/:id/lock", s.UnlockPost)
	posts.Post("/:id/pin", s.PinPost)
	posts.Delete("/:id/pin", s.UnpinPost)
	posts.Post("/:id/report", s.ReportPost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", s.CreateComment)

	comments := api.Group("/comments", middleware.AuthRequired)
	comments.Delete("/:commentId", s.DeleteComment)
	comments.Post("/:commentId/like", s.ToggleCommentLike)

	reports := api.Group("/reports", middleware.AuthRequired)
	reports.Post("/:reportId/resolve", s.ResolveReport)

	tags := api.Group("/tags")
	tags.Get("/", s.ListTags)
	tags.Post("/", middleware.AuthRequired, s.CreateTag)
	tags.Delete("/:tagId", middleware.AuthRequired, s.DeleteTag)

	notificationsGroup := api.Group("/notifications", middleware.AuthRequired)
	notificationsGroup.Get("/", s.ListNotifications)
	notificationsGroup.Post("/read", s.MarkNotificationsRead)
	notificationsGroup.Post("/read-all", s.MarkAllNotificationsRead)
}

// HealthCheck reports process liveness and database reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}
	return c.JSON(fiber.Map{"status": status})
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Book Club API",
		BodyLimit: 1 * 1024 * 1024,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app.Listen(":" + s.config.Port)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}
