package main

import (
	"log"
	"time"

	"food-tracker/auth"
	"food-tracker/config"
	"food-tracker/db"
	"food-tracker/middleware"
	"food-tracker/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables:", err)
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("Missing JWT_SECRET environment variable")
	}

	auth.JwtSecret = []byte(cfg.JWTSecret)
	auth.TokenIssuer = cfg.TokenDomain

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	defer db.Disconnect(client)
	log.Println("Connected to MongoDB")

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api/v1")
	api.POST("/auth/token", auth.IssueToken())

	foods := api.Group("/foods", auth.AuthMiddleware())
	{
		foods.POST("", services.Create(client, cfg))
		foods.GET("", auth.ScopeUser(cfg.AdminUser), services.FindAll(client, cfg))
		foods.GET("/:id", services.FindOne(client, cfg))
		foods.PUT("/:id", services.Update(client, cfg))
		foods.DELETE("/:id", services.Delete(client, cfg))

		// Maintenance operations, admin only.
		foods.DELETE("", auth.RequireAdmin(cfg.AdminUser), services.DeleteAll(client, cfg))
		foods.POST("/initialData", auth.RequireAdmin(cfg.AdminUser), services.InsertInitialData(client, cfg))

		// Cross-user admin reports.
		foods.GET("/findAllNDays", auth.RequireAdmin(cfg.AdminUser), services.FindAllNDays(client, cfg))
		foods.GET("/averageCalories", auth.RequireAdmin(cfg.AdminUser), services.AverageCalories(client, cfg))

		// Per-user reports; non-admins are scoped to their own entries.
		foods.GET("/totalCalories/:user", auth.ScopeUser(cfg.AdminUser), services.TotalCalories(client, cfg))
		foods.GET("/totalCaloriesInDate/:user", auth.ScopeUser(cfg.AdminUser), services.TotalCaloriesInDate(client, cfg))
		foods.GET("/byDates/:user", auth.ScopeUser(cfg.AdminUser), services.ByDates(client, cfg))
		foods.GET("/totalSpending/:user", auth.ScopeUser(cfg.AdminUser), services.TotalSpending(client, cfg))
		foods.GET("/totalSpendingInMonth/:user", auth.ScopeUser(cfg.AdminUser), services.TotalSpendingInMonth(client, cfg))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
