package store

import (
	"log"
	"time"

	"shoplite/internal/models"
	"shoplite/internal/utils"
)

// seedData fabrique le contenu de démo : les deux comptes de test, le
// catalogue d'exemple et les catégories de base.
func seedData() collections {
	now := time.Now().UTC()

	adminHash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatal("❌ Impossible de hasher le mot de passe de démo:", err)
	}
	userHash, err := utils.HashPassword("user123")
	if err != nil {
		log.Fatal("❌ Impossible de hasher le mot de passe de démo:", err)
	}

	return collections{
		Users: []models.User{
			{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin, Password: adminHash, CreatedAt: now},
			{ID: "2", Email: "user@example.com", Name: "John Doe", Role: models.RoleUser, Password: userHash, CreatedAt: now},
		},
		Products: []models.Product{
			{
				ID:          "1",
				Name:        "Wireless Bluetooth Headphones",
				Description: "High-quality wireless headphones with noise cancellation and 30-hour battery life.",
				Price:       99.99,
				Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
				Category:    "Electronics",
				Stock:       50,
				Rating:      4.5,
				Reviews:     234,
				CreatedAt:   now,
			},
			{
				ID:          "2",
				Name:        "Smart Watch Pro",
				Description: "Feature-rich smartwatch with fitness tracking, heart rate monitor, and GPS.",
				Price:       249.99,
				Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
				Category:    "Electronics",
				Stock:       30,
				Rating:      4.7,
				Reviews:     189,
				CreatedAt:   now,
			},
			{
				ID:          "3",
				Name:        "Laptop Backpack",
				Description: "Durable laptop backpack with multiple compartments and USB charging port.",
				Price:       49.99,
				Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500",
				Category:    "Accessories",
				Stock:       75,
				Rating:      4.3,
				Reviews:     156,
				CreatedAt:   now,
			},
			{
				ID:          "4",
				Name:        "Wireless Mouse",
				Description: "Ergonomic wireless mouse with precision tracking and long battery life.",
				Price:       29.99,
				Image:       "https://images.unsplash.com/photo-1527814050087-3793815479db?w=500",
				Category:    "Electronics",
				Stock:       100,
				Rating:      4.4,
				Reviews:     312,
				CreatedAt:   now,
			},
			{
				ID:          "5",
				Name:        "Mechanical Keyboard",
				Description: "RGB mechanical keyboard with Cherry MX switches and customizable keys.",
				Price:       129.99,
				Image:       "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500",
				Category:    "Electronics",
				Stock:       40,
				Rating:      4.6,
				Reviews:     278,
				CreatedAt:   now,
			},
			{
				ID:          "6",
				Name:        "USB-C Hub",
				Description: "Multi-port USB-C hub with HDMI, USB 3.0, and SD card reader.",
				Price:       39.99,
				Image:       "https://images.unsplash.com/photo-1625842268584-8f3296236761?w=500",
				Category:    "Accessories",
				Stock:       60,
				Rating:      4.2,
				Reviews:     145,
				CreatedAt:   now,
			},
		},
		Categories: []models.Category{
			{ID: "1", Name: "Electronics", Slug: "electronics"},
			{ID: "2", Name: "Accessories", Slug: "accessories"},
			{ID: "3", Name: "Clothing", Slug: "clothing"},
			{ID: "4", Name: "Home & Garden", Slug: "home-garden"},
			{ID: "5", Name: "Sports", Slug: "sports"},
		},
		Orders: []models.Order{},
	}
}
