package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"projecthub/internal/config"
	"projecthub/internal/handler"
	"projecthub/internal/middleware"
	"projecthub/internal/repository"
	"projecthub/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewMongoDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect from MongoDB: %v", err)
		}
	}()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (comment caching disabled)", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (file upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	app.Get("/uploads/knowledge-base/:name", h.KnowledgeBase.ServeUpload)

	auth := v1.Group("/auth")
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Put("/reset-password/:token", h.Auth.ResetPassword)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/", h.User.List)
	users.Put("/profile", h.User.UpdateProfile)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", middleware.RequireRole("admin"), h.User.Update)
	users.Delete("/:id", middleware.RequireRole("admin"), h.User.Delete)

	projects := protected.Group("/projects")
	projects.Post("/", middleware.RequireRole("project_manager"), h.Project.Create)
	projects.Get("/", h.Project.List)
	projects.Get("/user/my-projects", h.Project.MyProjects)
	projects.Get("/:id", h.Project.Get)
	projects.Put("/:id", middleware.RequireRole("project_manager"), h.Project.Update)
	projects.Delete("/:id", middleware.RequireRole("project_manager"), h.Project.Delete)

	projects.Post("/:id/interested", h.Project.ExpressInterest)
	projects.Get("/:id/interested", middleware.RequireRole("project_manager"), h.Project.ListInterested)
	projects.Delete("/:id/interested/:userId", h.Project.WithdrawInterest)
	projects.Post("/:id/interested/:userId/accept", h.Project.AcceptInterest)
	projects.Post("/:id/interested/:userId/reject", h.Project.RejectInterest)
	projects.Post("/:id/team/add", middleware.RequireRole("project_manager"), h.Project.AddTeamMember)

	projects.Post("/:id/comments", h.Comment.Create)
	projects.Get("/:id/comments", h.Comment.ListByProject)

	projects.Post("/:id/knowledge-base", h.KnowledgeBase.Create)
	projects.Get("/:id/knowledge-base", h.KnowledgeBase.ListByProject)

	knowledgeBase := protected.Group("/knowledge-base")
	knowledgeBase.Put("/:id", h.KnowledgeBase.Update)
	knowledgeBase.Delete("/:id", h.KnowledgeBase.Delete)

	comments := protected.Group("/comments")
	comments.Put("/:id", h.Comment.Update)
	comments.Delete("/:id", h.Comment.Delete)
	comments.Post("/:id/replies", h.Comment.AddReply)
	comments.Put("/:id/replies/:replyId", h.Comment.UpdateReply)
	comments.Delete("/:id/replies/:replyId", h.Comment.DeleteReply)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Post("/", middleware.RequireRole("admin"), h.Notification.Create)
	notifications.Patch("/read-all", h.Notification.MarkAllRead)
	notifications.Patch("/:id/read", h.Notification.MarkRead)
	notifications.Delete("/all", h.Notification.DeleteAll)
	notifications.Delete("/:id", h.Notification.Delete)
}
