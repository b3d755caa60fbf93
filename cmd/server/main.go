package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shoplite/internal/cache"
	"shoplite/internal/config"
	"shoplite/internal/routes"
	"shoplite/internal/store"
)

func main() {
	config.Load()

	dbPath := config.Getenv("DB_PATH", "db.json")
	s, err := store.Open(dbPath)
	if err != nil {
		log.Fatal("❌ Impossible d'ouvrir le store:", err)
	}

	// Redis optionnel : miroir panier + rate limiting
	if err := cache.InitRedis(); err != nil {
		log.Printf("⚠️ Redis non initialisé: %v", err)
	}
	defer cache.CloseRedis()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	routes.RegisterRoutes(r, s)

	port := config.Getenv("PORT", "8080")
	log.Println("🚀 Serveur mock storefront lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Serveur arrêté:", err)
	}
}
