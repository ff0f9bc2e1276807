package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"grievance-portal/internal/config"
	"grievance-portal/internal/domain"
	"grievance-portal/internal/handler"
	"grievance-portal/internal/middleware"
	"grievance-portal/internal/repository"
	"grievance-portal/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (attachment upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    int(cfg.MaxAttachmentSize) * (cfg.MaxAttachmentCount + 1),
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

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/me", h.Auth.Me)
	protected.Get("/departments", h.Grievance.ListDepartments)

	student := protected.Group("/grievances", middleware.RequireRole(domain.RoleStudent))
	student.Post("/", h.Grievance.Submit)
	student.Get("/", h.Grievance.ListOwn)
	student.Get("/:id", h.Grievance.GetOwn)
	student.Post("/:id/attachments", h.Grievance.AddAttachment)

	department := protected.Group("/department", middleware.RequireRole(domain.RoleDepartment))
	department.Get("/grievances", h.Department.ListGrievances)
	department.Get("/grievances/:id", h.Department.GetGrievance)
	department.Post("/grievances/:id/responses", h.Department.Respond)

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Get("/grievances", h.Admin.ListGrievances)
	admin.Get("/grievances/:id", h.Admin.GetGrievance)
	admin.Patch("/grievances/:id/status", h.Admin.TransitionStatus)
	admin.Get("/dashboard", h.Admin.Dashboard)
	admin.Get("/reports/grievances.csv", h.Admin.ExportGrievancesCSV)

	admin.Get("/departments", h.Admin.ListDepartments)
	admin.Post("/departments", h.Admin.CreateDepartment)
	admin.Put("/departments/:id", h.Admin.UpdateDepartment)
	admin.Delete("/departments/:id", h.Admin.DeleteDepartment)

	admin.Get("/users", h.Admin.ListUsers)
	admin.Get("/users/:id", h.Admin.GetUser)
	admin.Put("/users/:id", h.Admin.UpdateUser)
	admin.Post("/users/:id/reset-password", h.Admin.ResetUserPassword)
	admin.Delete("/users/:id", h.Admin.DeleteUser)

	admin.Get("/notifications", h.Notification.List)
	admin.Get("/notifications/unread-count", h.Notification.UnreadCount)
	admin.Patch("/notifications/:id/read", h.Notification.MarkAsRead)
	admin.Post("/notifications/mark-all-read", h.Notification.MarkAllAsRead)

	admin.Get("/audit/recent", h.Audit.Recent)
}
