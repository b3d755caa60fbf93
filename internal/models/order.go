package models

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderItem est un instantané d'une ligne de panier au moment du checkout.
// Découplé du produit vivant : une modification ou suppression ultérieure du
// produit ne change pas les commandes passées.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
}

var statusRank = map[string]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// ValidStatus indique si le statut fait partie du cycle de vie connu.
func ValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransition vérifie qu'un changement de statut avance dans le cycle de vie.
// Les retours en arrière sont refusés, l'annulation est possible tant que la
// commande n'est ni livrée ni déjà annulée.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	if to == StatusCancelled {
		return from != StatusDelivered && from != StatusCancelled
	}
	fr, okFrom := statusRank[from]
	tr, okTo := statusRank[to]
	return okFrom && okTo && tr > fr
}
