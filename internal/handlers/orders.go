package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shoplite/internal/models"
	"shoplite/internal/store"
	"shoplite/internal/utils"
)

type OrderHandler struct {
	Store *store.Store
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Items           []models.OrderItem `json:"items"`
		ShippingAddress models.Address     `json:"shippingAddress"`
		PaymentMethod   string             `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}
	if !input.ShippingAddress.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison incomplète"})
		return
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
			return
		}
	}

	// Le total est recalculé côté serveur, figé à la création de la commande.
	var total float64
	for _, item := range input.Items {
		total += item.Price * float64(item.Quantity)
	}

	order := models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           input.Items,
		Total:           total,
		Status:          models.StatusPending,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := h.Store.CreateOrder(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// Confirmation par e-mail, sans bloquer la réponse.
	if email := c.GetString("email"); email != "" {
		go func() {
			if err := utils.SendOrderConfirmation(email, created); err != nil && !errors.Is(err, utils.ErrSMTPDisabled) {
				log.Printf("⚠️ Envoi confirmation commande %s échoué: %v", created.ID, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, created)
}

// GET /api/orders — les commandes de l'utilisateur, toutes pour un admin.
func (h *OrderHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	if c.GetString("role") == models.RoleAdmin {
		c.JSON(http.StatusOK, h.Store.Orders(""))
		return
	}
	c.JSON(http.StatusOK, h.Store.Orders(userID))
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := h.Store.OrderByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Une commande n'est visible que par son propriétaire ou un admin.
	if order.UserID != userID && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// PATCH /api/orders/:id {status} (admin)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}

	order, err := h.Store.UpdateOrderStatus(c.Param("id"), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		case errors.Is(err, store.ErrBadTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Transition de statut invalide"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
