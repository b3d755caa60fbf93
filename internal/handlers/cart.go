package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoplite/internal/cache"
	"shoplite/internal/models"
	"shoplite/internal/store"
)

// CartHandler est le miroir serveur du panier, stocké dans Redis. Il permet à
// un client web de retrouver son panier d'un appareil à l'autre. Le panier
// faisant foi reste l'agrégat local du client.
type CartHandler struct {
	Store *store.Store
}

// GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	cart, err := cache.GetCart(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart})
}

// POST /api/cart/add
func (h *CartHandler) Add(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	product, err := h.Store.ProductByID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	ctx := context.Background()
	cart, err := cache.GetCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// Met à jour ou ajoute la ligne
	found := false
	for i := range cart {
		if cart[i].ProductID == input.ProductID {
			cart[i].Quantity += input.Quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    input.Quantity,
			Image:       product.Image,
		})
	}

	if err := cache.SaveCart(ctx, userID, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

// DELETE /api/cart/clear
func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := cache.ClearCart(context.Background(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}

// DELETE /api/cart/:productId
func (h *CartHandler) Remove(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	ctx := context.Background()
	cart, err := cache.GetCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	newCart := make([]models.CartLine, 0, len(cart))
	for _, line := range cart {
		if line.ProductID != productID {
			newCart = append(newCart, line)
		}
	}

	if err := cache.SaveCart(ctx, userID, newCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   newCart,
	})
}
