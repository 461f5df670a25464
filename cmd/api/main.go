package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/digitalagency-id/agency_be/internal/config"
	"github.com/digitalagency-id/agency_be/internal/contracts"
	"github.com/digitalagency-id/agency_be/internal/db"
	"github.com/digitalagency-id/agency_be/internal/handlers"
	"github.com/digitalagency-id/agency_be/internal/logger"
	"github.com/digitalagency-id/agency_be/internal/middleware"
	"github.com/digitalagency-id/agency_be/internal/models"
	"github.com/digitalagency-id/agency_be/internal/onboarding"
	"github.com/digitalagency-id/agency_be/internal/realtime"
	"github.com/digitalagency-id/agency_be/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zlog.Sync()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	bridge := realtime.NewBridge(rdb, hub)
	go bridge.Run(context.Background())

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Branch{},
		&models.Competitor{},
		&models.Segment{},
		&models.Contract{},
		&models.Campaign{},
		&models.Quotation{},
		&models.Package{},
		&models.AgencyService{},
		&models.ServiceItem{},
	); err != nil {
		log.Fatal(err)
	}

	clientRepo := repository.NewGormClientRepository(gdb)
	contractRepo := repository.NewGormContractRepository(gdb)
	campaignRepo := repository.NewGormCampaignRepository(gdb)
	draftStore := onboarding.NewRedisDraftStore(rdb, time.Duration(cfg.DraftTTLHours)*time.Hour)

	contractSvc := contracts.NewService(contractRepo, bridge, zlog)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

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
	}
	onboardH := handlers.NewOnboardingHandler(draftStore, clientRepo, zlog)
	clientH := handlers.NewClientHandler(clientRepo)
	contractH := handlers.NewContractHandler(contractSvc)
	campaignH := handlers.NewCampaignHandler(gdb, campaignRepo)
	activityH := handlers.NewActivityHandler(hub)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", func(c *fiber.Ctx) error {
		uid := c.Locals("userId")

		var user models.User
		if err := gdb.First(&user, "id = ?", uid).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	})

	// onboarding wizard
	onb := protected.Group("/onboarding")
	onb.Get("/", onboardH.Get)
	onb.Post("/advance", onboardH.Advance)
	onb.Post("/back", onboardH.Retreat)
	onb.Post("/jump/:index", onboardH.Jump)
	onb.Post("/branches", onboardH.AddBranch)
	onb.Post("/competitors", onboardH.AddCompetitor)
	onb.Post("/segments", onboardH.AddSegment)
	onb.Post("/submit", onboardH.Submit)
	onb.Delete("/", onboardH.Reset)

	// clients
	protected.Get("/clients", clientH.List)
	protected.Get("/clients/:id", clientH.Get)
	protected.Put("/clients/:id", clientH.Update)
	protected.Delete("/clients/:id",
		middleware.RequireRoles("admin", "manager"),
		clientH.Delete,
	)

	// contracts
	protected.Get("/contracts", contractH.List)
	protected.Get("/contracts/:id", contractH.Get)
	protected.Post("/contracts", contractH.Create)
	protected.Put("/contracts/:id", contractH.Update)
	protected.Delete("/contracts/:id",
		middleware.RequireRoles("admin", "manager"),
		contractH.Delete,
	)
	protected.Post("/contracts/:id/sign", contractH.Sign)
	protected.Post("/contracts/:id/complete", contractH.Complete)
	protected.Post("/contracts/:id/cancel", contractH.Cancel)
	protected.Post("/contracts/:id/renew", contractH.Renew)

	// campaign planning + lookups
	protected.Get("/campaigns", campaignH.List)
	protected.Get("/campaigns/:id", campaignH.Get)
	protected.Post("/campaigns", campaignH.Create)
	protected.Put("/campaigns/:id", campaignH.Update)
	protected.Delete("/campaigns/:id",
		middleware.RequireRoles("admin", "manager"),
		campaignH.Delete,
	)
	protected.Get("/quotations", campaignH.ListQuotations)
	protected.Get("/packages", campaignH.ListPackages)
	protected.Get("/services", campaignH.ListServices)

	// WebSocket activity feed (authenticated via query param)
	app.Get("/ws/activity", websocket.New(activityH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
