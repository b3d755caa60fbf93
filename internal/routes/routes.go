package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"shoplite/internal/cache"
	"shoplite/internal/handlers"
	"shoplite/internal/middleware"
	"shoplite/internal/store"
)

func RegisterRoutes(r *gin.Engine, s *store.Store) {
	auth := &handlers.AuthHandler{Store: s}
	products := &handlers.ProductHandler{Store: s}
	categories := &handlers.CategoryHandler{Store: s}
	orders := &handlers.OrderHandler{Store: s}
	users := &handlers.UserHandler{Store: s}

	api := r.Group("/api")

	// Auth
	api.POST("/auth/login", middleware.LoginRateLimit(), auth.Login)
	api.POST("/auth/register", auth.Register)
	api.GET("/auth/me", middleware.AuthRequired(), auth.Me)

	// Catalogue (lecture publique, écriture admin)
	api.GET("/products", products.List)
	api.GET("/products/:id", products.Get)
	api.POST("/products", middleware.AuthRequired(), middleware.RequireAdmin, products.Create)
	api.PUT("/products/:id", middleware.AuthRequired(), middleware.RequireAdmin, products.Update)
	api.DELETE("/products/:id", middleware.AuthRequired(), middleware.RequireAdmin, products.Delete)

	api.GET("/categories", categories.List)
	api.POST("/categories", middleware.AuthRequired(), middleware.RequireAdmin, categories.Create)
	api.PUT("/categories/:id", middleware.AuthRequired(), middleware.RequireAdmin, categories.Update)
	api.DELETE("/categories/:id", middleware.AuthRequired(), middleware.RequireAdmin, categories.Delete)

	// Commandes
	api.POST("/orders", middleware.AuthRequired(), orders.Create)
	api.GET("/orders", middleware.AuthRequired(), orders.List)
	api.GET("/orders/:id", middleware.AuthRequired(), orders.Get)
	api.PATCH("/orders/:id", middleware.AuthRequired(), middleware.RequireAdmin, orders.UpdateStatus)

	// Back-office utilisateurs
	api.GET("/users", middleware.AuthRequired(), middleware.RequireAdmin, users.List)
	api.GET("/users/:id", middleware.AuthRequired(), middleware.RequireAdmin, users.Get)
	api.PUT("/users/:id", middleware.AuthRequired(), middleware.RequireAdmin, users.Update)
	api.DELETE("/users/:id", middleware.AuthRequired(), middleware.RequireAdmin, users.Delete)

	// Miroir panier — seulement si Redis est configuré
	if cache.Enabled() {
		cart := &handlers.CartHandler{Store: s}
		api.GET("/cart", middleware.AuthRequired(), cart.Get)
		api.POST("/cart/add", middleware.AuthRequired(), cart.Add)
		api.DELETE("/cart/clear", middleware.AuthRequired(), cart.Clear)
		api.DELETE("/cart/:productId", middleware.AuthRequired(), cart.Remove)
		log.Println("✅ Miroir panier Redis activé")
	} else {
		log.Println("⚠️ Redis absent — miroir panier et rate limiting désactivés")
	}
}
