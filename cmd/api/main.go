package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/Yash-01907/odoo-timepass/internal/config"
	"github.com/Yash-01907/odoo-timepass/internal/db"
	"github.com/Yash-01907/odoo-timepass/internal/handlers"
	"github.com/Yash-01907/odoo-timepass/internal/middleware"
	"github.com/Yash-01907/odoo-timepass/internal/models"
	"github.com/Yash-01907/odoo-timepass/internal/realtime"
	"github.com/Yash-01907/odoo-timepass/internal/services/ratings"
	"github.com/Yash-01907/odoo-timepass/internal/services/swaps"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable, notifications stay in-process only: %v", err)
		rdb = nil
	}

	hub := realtime.NewHub()
	go hub.Run()

	notifier := realtime.NewNotifier(hub, rdb)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.SkillOffered{},
		&models.SkillWanted{},
		&models.Swap{},
		&models.Rating{},
		&models.AdminMessage{},
	); err != nil {
		log.Fatal(err)
	}

	swapSvc := swaps.NewSwapService(gdb)
	ratingSvc := ratings.NewRatingService(gdb)

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
	userH := handlers.NewUserHandler(gdb)
	skillH := handlers.NewSkillHandler(gdb)
	swapH := handlers.NewSwapHandler(gdb, swapSvc, notifier)
	ratingH := handlers.NewRatingHandler(gdb, ratingSvc)
	adminH := handlers.NewAdminHandler(gdb)
	notifH := handlers.NewNotificationHandler(hub, cfg.JWTSecret)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
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
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/skills/search", skillH.Search)
	api.Get("/skills/categories", skillH.Categories)
	api.Get("/skills/popular", skillH.Popular)
	api.Get("/users", userH.ListPublic)

	// protected (JWT)
	protected := api.Group("/",
		middleware.JWTFromHeader(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/auth/me", authH.GetProfile)
	protected.Put("/auth/me", authH.UpdateProfile)

	protected.Get("/users/:id", userH.GetDetail)
	protected.Put("/users/:id", userH.Update)
	protected.Delete("/users/:id", userH.Delete)
	protected.Get("/users/:id/skills", userH.GetSkills)
	protected.Post("/users/:id/skills", userH.AddSkill)
	protected.Put("/users/:id/skills/:skillId", userH.UpdateSkill)
	protected.Delete("/users/:id/skills/:skillId", userH.DeleteSkill)

	protected.Post("/swaps", swapH.Create)
	protected.Get("/swaps", swapH.MySwaps)
	protected.Get("/swaps/history", swapH.History)
	protected.Get("/swaps/:id", swapH.GetByID)
	protected.Put("/swaps/:id/respond", swapH.Respond)
	protected.Put("/swaps/:id/cancel", swapH.Cancel)
	protected.Put("/swaps/:id/complete", swapH.Complete)

	protected.Post("/ratings", ratingH.Create)
	protected.Get("/ratings/user/:userId", ratingH.GetUserRatings)
	protected.Get("/ratings/swap/:swapId", ratingH.GetSwapRatings)
	protected.Put("/ratings/:id", ratingH.Update)
	protected.Delete("/ratings/:id", ratingH.Delete)

	protected.Get("/messages", adminH.GetMessages)

	// admin
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/dashboard", adminH.Dashboard)
	admin.Get("/users", adminH.GetAllUsers)
	admin.Put("/users/:id/ban", adminH.BanUser)
	admin.Put("/users/:id/unban", adminH.UnbanUser)
	admin.Get("/skills/pending", adminH.GetPendingSkills)
	admin.Put("/skills/:id/approve", adminH.ApproveSkill)
	admin.Put("/skills/:id/reject", adminH.RejectSkill)
	admin.Get("/swaps", adminH.GetAllSwaps)
	admin.Post("/messages", adminH.CreateMessage)
	admin.Put("/messages/:id/deactivate", adminH.DeactivateMessage)
	admin.Get("/reports/users", adminH.UserReport)
	admin.Get("/reports/swaps", adminH.SwapReport)
	admin.Get("/reports/feedback", adminH.FeedbackReport)

	// websocket relay for swap notifications
	app.Use("/ws/notifications", notifH.Upgrade)
	app.Get("/ws/notifications", notifH.Stream())

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
