package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shoplite/internal/models"
	"shoplite/internal/store"
)

type ProductHandler struct {
	Store *store.Store
}

// GET /api/products?category&minPrice&maxPrice&rating&q
func (h *ProductHandler) List(c *gin.Context) {
	filter := store.ProductFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("rating"), 64); err == nil {
		filter.Rating = v
	}

	c.JSON(http.StatusOK, h.Store.Products(filter))
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.Store.ProductByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /api/products (admin)
func (h *ProductHandler) Create(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom requis et prix positif"})
		return
	}

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()

	created, err := h.Store.CreateProduct(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// PUT /api/products/:id (admin)
func (h *ProductHandler) Update(c *gin.Context) {
	existing, err := h.Store.ProductByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Bind par-dessus l'existant : les champs absents du body sont conservés.
	if err := c.ShouldBindJSON(&existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.ID = c.Param("id")

	updated, err := h.Store.UpdateProduct(existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Store.DeleteProduct(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
