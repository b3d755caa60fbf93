// Package cart implémente l'agrégat panier : les lignes produit+quantité de la
// session courante et leurs totaux, recalculés à chaque lecture.
package cart

import (
	"sync"

	"shoplite/internal/models"
)

// Cart est l'agrégat panier. Invariant : toute ligne présente a une quantité
// strictement positive — une quantité poussée sous 1 supprime la ligne.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem ajoute un produit. Si la ligne existe déjà, la quantité s'additionne
// au lieu de créer un doublon. Une quantité non positive vaut 1.
func (c *Cart) AddItem(p models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity += quantity
			return
		}
	}
	c.items = append(c.items, models.CartItem{Product: p, Quantity: quantity})
}

// RemoveItem supprime la ligne du produit. Produit absent : sans effet.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity fixe la quantité d'une ligne. Toute valeur sous 1 supprime la
// ligne : l'agrégat ne contient jamais de ligne à quantité nulle.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.removeLocked(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear vide toutes les lignes.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// TotalItems retourne la somme des quantités.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice retourne Σ prix × quantité. Aucun arrondi interne : l'arrondi
// est l'affaire de la présentation.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Items retourne une copie des lignes, dans l'ordre d'insertion.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Replace remplace toutes les lignes (rechargement depuis un instantané
// persisté). Les lignes à quantité invalide sont ignorées.
func (c *Cart) Replace(items []models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	for _, item := range items {
		if item.Quantity >= 1 {
			c.items = append(c.items, item)
		}
	}
}
