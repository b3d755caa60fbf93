// Package checkout assemble une commande à partir d'un instantané du panier,
// la soumet au serveur et vide le panier une fois la commande acceptée.
package checkout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"shoplite/internal/client"
	"shoplite/internal/client/cart"
	"shoplite/internal/client/session"
	"shoplite/internal/models"
)

type Service struct {
	api  *client.Client
	sess *session.Manager
}

func NewService(api *client.Client, sess *session.Manager) *Service {
	return &Service{api: api, sess: sess}
}

// PlaceOrder transforme le panier en commande. Le total est calculé une seule
// fois et figé dans la commande. Sur succès, le panier est vidé — c'est une
// post-condition du checkout, pas une option. Serveur injoignable : commande
// locale best-effort avec identifiant horodaté, perdue au rechargement.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Cart, address models.Address, paymentMethod string) (*models.Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: panier vide", client.ErrValidation)
	}
	if !address.Complete() {
		return nil, fmt.Errorf("%w: adresse de livraison incomplète", client.ErrValidation)
	}

	// Instantané des lignes : les commandes passées ne bougent plus si les
	// produits changent ensuite.
	orderItems := make([]models.OrderItem, 0, len(items))
	var total float64
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
			Image:       item.Product.Image,
		})
		total += item.Product.Price * float64(item.Quantity)
	}

	payload := map[string]any{
		"items":           orderItems,
		"total":           total,
		"status":          models.StatusPending,
		"shippingAddress": address,
		"paymentMethod":   paymentMethod,
	}

	var order models.Order
	err := s.api.Post(ctx, "/orders", payload, &order)
	if err == nil {
		c.Clear()
		return &order, nil
	}

	if client.IsUnreachable(err) {
		local := models.Order{
			ID:              strconv.FormatInt(time.Now().UnixMilli(), 10),
			UserID:          s.localUserID(),
			Items:           orderItems,
			Total:           total,
			Status:          models.StatusPending,
			ShippingAddress: address,
			PaymentMethod:   paymentMethod,
			CreatedAt:       time.Now().UTC(),
		}
		c.Clear()
		return &local, nil
	}

	return nil, err
}

// Orders liste les commandes de l'utilisateur. Serveur injoignable : liste
// vide plutôt qu'une erreur, l'historique n'est pas disponible hors ligne.
func (s *Service) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.api.Get(ctx, "/orders", &orders)
	if err != nil {
		if client.IsUnreachable(err) {
			return []models.Order{}, nil
		}
		return nil, err
	}
	return orders, nil
}

// Order récupère une commande par identifiant.
func (s *Service) Order(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.api.Get(ctx, "/orders/"+id, &order)
	if err != nil {
		if client.IsUnreachable(err) {
			return nil, fmt.Errorf("%w: commande %s", client.ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus change le statut d'une commande (action admin). Pas de
// fallback : hors ligne, l'erreur remonte.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	var order models.Order
	if err := s.api.Patch(ctx, "/orders/"+id, map[string]string{"status": status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) localUserID() string {
	if u := s.sess.User(); u != nil {
		return u.ID
	}
	return ""
}
