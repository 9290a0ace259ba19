package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers"
	"velora_back_end/internal/repository/postgres"
	"velora_back_end/internal/routes"
	"velora_back_end/internal/services"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	// Dépôts Postgres
	userRepo := postgres.NewUserRepository(database.Pool)
	addressRepo := postgres.NewAddressRepository(database.Pool)
	productRepo := postgres.NewProductRepository(database.Pool)
	reviewRepo := postgres.NewReviewRepository(database.Pool)
	orderRepo := postgres.NewOrderRepository(database.Pool)

	// Services — MinIO, Elastic et SMTP restent optionnels
	var storage services.ImageStore
	if database.MinIO != nil {
		storage = services.NewStorage(database.MinIO)
	}
	search := services.NewElasticIndex(database.Elastic)
	mailer := services.NewMailerFromEnv()
	productCache := cache.NewProductCache(database.Redis)

	userService := services.NewUserService(userRepo, addressRepo)
	catalogService := services.NewCatalogService(productRepo, productCache, search, storage)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, mailer)

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Handlers{
		Auth:          handlers.NewAuthHandler(userService),
		Users:         handlers.NewUserHandler(userService),
		Products:      handlers.NewProductHandler(catalogService, reviewService, userService),
		AdminProducts: handlers.NewAdminProductHandler(catalogService),
		Orders:        handlers.NewOrderHandler(orderService),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Velora lancé sur le port", port)
	r.Run(":" + port)
}
