package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shoplite/internal/models"
	"shoplite/internal/store"
)

// UserHandler expose le back-office utilisateurs (admin).
type UserHandler struct {
	Store *store.Store
}

// GET /api/users (admin)
func (h *UserHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Users())
}

// GET /api/users/:id (admin)
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.Store.UserByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /api/users/:id (admin) — nom et rôle uniquement, l'email est immuable.
func (h *UserHandler) Update(c *gin.Context) {
	existing, err := h.Store.UserByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	var input struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Role != "" {
		if input.Role != models.RoleUser && input.Role != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
			return
		}
		existing.Role = input.Role
	}

	updated, err := h.Store.UpdateUser(existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour utilisateur"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DELETE /api/users/:id (admin)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Store.DeleteUser(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé"})
}
