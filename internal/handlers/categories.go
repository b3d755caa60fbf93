package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shoplite/internal/models"
	"shoplite/internal/store"
)

type CategoryHandler struct {
	Store *store.Store
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Categories())
}

// POST /api/categories (admin)
func (h *CategoryHandler) Create(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" || cat.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et slug requis"})
		return
	}

	cat.ID = uuid.NewString()
	created, err := h.Store.CreateCategory(cat)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Une catégorie avec ce slug existe déjà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// PUT /api/categories/:id (admin)
func (h *CategoryHandler) Update(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat.ID = c.Param("id")

	updated, err := h.Store.UpdateCategory(cat)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DELETE /api/categories/:id (admin)
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Store.DeleteCategory(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
