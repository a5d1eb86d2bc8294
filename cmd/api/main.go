package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/alexdev/portfolio-api/internal/config"
	"github.com/alexdev/portfolio-api/internal/content"
	"github.com/alexdev/portfolio-api/internal/db"
	"github.com/alexdev/portfolio-api/internal/editor"
	"github.com/alexdev/portfolio-api/internal/enquiry"
	"github.com/alexdev/portfolio-api/internal/handlers"
	"github.com/alexdev/portfolio-api/internal/mailer"
	"github.com/alexdev/portfolio-api/internal/middleware"
	"github.com/alexdev/portfolio-api/internal/models"
	"github.com/alexdev/portfolio-api/internal/notify"
	"github.com/alexdev/portfolio-api/internal/realtime"
	"github.com/alexdev/portfolio-api/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config: ", err)
	}

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.SiteContent{}, &models.Enquiry{}); err != nil {
		log.Fatal(err)
	}

	if err := seedAdmin(gdb, cfg); err != nil {
		log.Fatal(err)
	}

	var broker notify.Broker
	rb := notify.NewRedisBroker(cfg.RedisAddr, cfg.RedisPassword)
	if err := rb.Ping(context.Background()); err != nil {
		log.Printf("Redis unreachable (%v), change events stay in-process", err)
		broker = notify.NewMemoryBroker()
	} else {
		log.Println("Redis change feed active")
		broker = rb
	}

	hub := realtime.NewHub()
	go hub.Run()
	events, _ := broker.Subscribe()
	go hub.PumpEvents(events)

	store := content.NewStore(gdb, broker)
	mail := mailer.New(cfg.MailMode)

	editorSvc := editor.NewService(store)
	enquirySvc := enquiry.NewService(gdb, mail)

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
		AdminEmail:      cfg.AdminEmail,
	}
	contentH := handlers.NewContentHandler(store)
	editorH := handlers.NewEditorHandler(editorSvc)
	enquiryH := handlers.NewEnquiryHandler(enquirySvc, store)
	wsH := handlers.NewWSHandler(hub)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	api := app.Group("/api")

	// public
	api.Get("/content", contentH.Get)
	api.Post("/enquiries", enquiryH.Submit)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	app.Get("/ws/content", websocket.New(wsH.ContentFeed))

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/auth/me", authH.Me)

	admin := protected.Group("/admin", middleware.RequireRoles("admin"))

	admin.Get("/draft", editorH.Draft)
	admin.Post("/draft/reload", editorH.Reload)
	admin.Put("/draft/profile", editorH.UpdateProfile)
	admin.Put("/draft/settings", editorH.UpdateSettings)
	admin.Post("/draft/skills", editorH.AddSkill)
	admin.Put("/draft/skills/:id", editorH.UpdateSkill)
	admin.Delete("/draft/skills/:id", editorH.DeleteSkill)
	admin.Post("/draft/projects", editorH.AddProject)
	admin.Put("/draft/projects/:id", editorH.UpdateProject)
	admin.Delete("/draft/projects/:id", editorH.DeleteProject)
	admin.Post("/draft/save", editorH.Save)

	admin.Get("/enquiries", enquiryH.List)
	admin.Patch("/enquiries/:id/replied", enquiryH.MarkReplied)
	admin.Post("/enquiries/:id/reply", enquiryH.Reply)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}

// seedAdmin creates the single admin account from env on an empty users
// table. Password changes go through env + restart, there is no registration.
func seedAdmin(gdb *gorm.DB, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := gdb.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	u := models.User{
		Name:     "Admin",
		Email:    cfg.AdminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := gdb.Create(&u).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin account %s", cfg.AdminEmail)
	return nil
}
