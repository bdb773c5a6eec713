package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/elitecars/rental-backend/internal/config"
	"github.com/elitecars/rental-backend/internal/database"
	"github.com/elitecars/rental-backend/internal/handlers"
	"github.com/elitecars/rental-backend/internal/middleware"
	"github.com/elitecars/rental-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db, cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.InitRedis(cfg.RedisURL); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Firebase is optional - push notifications are skipped without it
	if err := services.InitFirebase(); err != nil {
		log.Printf("Firebase initialization warning: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Serve locally stored car images
	if !services.IsUsingS3() {
		r.Static("/uploads", "./uploads")
	}

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		public := api.Group("/")
		public.Use(middleware.MaintenanceGate(db))
		{
			public.GET("/cars", handlers.GetCars(db))
			public.GET("/cars/:id", handlers.GetCar(db))
			public.GET("/cars/:id/ratings", handlers.GetCarRatings(db))
			public.GET("/settings", handlers.GetPublicSettings(db))
			public.POST("/inquiries", handlers.CreateInquiry(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Authenticated customer routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(), middleware.MaintenanceGate(db))
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/fcm-token", handlers.RegisterFCMToken(db))
			}

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db))
				bookings.GET("", handlers.GetMyBookings(db))
				bookings.POST("/:id/submit", handlers.SubmitBooking(db))
				bookings.POST("/:id/cancel", handlers.CancelMyBooking(db, hub))
				bookings.POST("/:id/rating", handlers.RateBooking(db))
				bookings.GET("/:id/invoice", handlers.DownloadInvoice(db))
			}
		}

		// Back-office routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
		{
			admin.GET("/dashboard", handlers.GetDashboardStats(db))
			admin.GET("/revenue", handlers.GetMonthlyRevenue(db))
			admin.GET("/reviews", handlers.GetAllReviews(db))

			admin.POST("/cars", handlers.CreateCar(db))
			admin.PUT("/cars/:id", handlers.UpdateCar(db))
			admin.DELETE("/cars/:id", handlers.DeleteCar(db))
			admin.POST("/cars/:id/availability", handlers.ToggleCarAvailability(db))
			admin.POST("/cars/:id/image", handlers.UploadCarImage(db))

			admin.GET("/drivers", handlers.GetDrivers(db))
			admin.POST("/drivers", handlers.CreateDriver(db))
			admin.PUT("/drivers/:id", handlers.UpdateDriver(db))
			admin.DELETE("/drivers/:id", handlers.DeleteDriver(db))
			admin.POST("/drivers/:id/availability", handlers.ToggleDriverAvailability(db))

			admin.GET("/bookings", handlers.GetAllBookings(db))
			admin.PATCH("/bookings/:id/status", handlers.UpdateBookingStatus(db, hub))
			admin.PATCH("/bookings/:id/driver", handlers.AssignDriver(db, hub))
			admin.PATCH("/bookings/:id/payment", handlers.UpdatePaymentStatus(db, hub))
			admin.DELETE("/bookings/:id", handlers.DeleteBooking(db))
			admin.GET("/bookings/:id/invoice", handlers.DownloadInvoice(db))
			admin.POST("/availability/repair", handlers.RepairAvailability(db))

			admin.GET("/customers", handlers.GetCustomers(db))

			admin.GET("/inquiries", handlers.GetInquiries(db))
			admin.PATCH("/inquiries/:id/read", handlers.MarkInquiryRead(db))
			admin.DELETE("/inquiries/:id", handlers.DeleteInquiry(db))

			admin.GET("/settings", handlers.GetSettings(db))
			admin.PUT("/settings", handlers.UpdateSettings(db))
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
