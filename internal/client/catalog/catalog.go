// Package catalog donne accès au catalogue produits et catégories, avec un
// fallback local quand le serveur est injoignable.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"shoplite/internal/client"
	"shoplite/internal/models"
)

// Filters reprend les paramètres de requête du catalogue.
type Filters struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Rating   float64
	Search   string
}

func (f Filters) encode() string {
	params := url.Values{}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Rating > 0 {
		params.Set("rating", strconv.FormatFloat(f.Rating, 'f', -1, 64))
	}
	if f.Search != "" {
		params.Set("q", f.Search)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

type Service struct {
	api *client.Client
}

func NewService(api *client.Client) *Service {
	return &Service{api: api}
}

// Products liste le catalogue filtré. Serveur injoignable : catalogue de
// démo embarqué, non filtré.
func (s *Service) Products(ctx context.Context, f Filters) ([]models.Product, error) {
	var products []models.Product
	err := s.api.Get(ctx, "/products"+f.encode(), &products)
	if err != nil {
		if client.IsUnreachable(err) {
			return MockProducts(), nil
		}
		return nil, err
	}
	return products, nil
}

// Product récupère un produit par identifiant, en cherchant dans le catalogue
// de démo quand le serveur est injoignable.
func (s *Service) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.api.Get(ctx, "/products/"+id, &product)
	if err != nil {
		if client.IsUnreachable(err) {
			for _, p := range MockProducts() {
				if p.ID == id {
					return &p, nil
				}
			}
			return nil, fmt.Errorf("%w: produit %s", client.ErrNotFound, id)
		}
		return nil, err
	}
	return &product, nil
}

// Categories liste les catégories, avec fallback sur la liste de démo.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.api.Get(ctx, "/categories", &categories)
	if err != nil {
		if client.IsUnreachable(err) {
			return MockCategories(), nil
		}
		return nil, err
	}
	return categories, nil
}

// CreateProduct crée un produit (admin). Pas de fallback : la création exige
// le serveur, le message aide à diagnostiquer un backend arrêté.
func (s *Service) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var created models.Product
	if err := s.api.Post(ctx, "/products", p, &created); err != nil {
		if client.IsUnreachable(err) {
			return nil, fmt.Errorf("%w: impossible de créer le produit, vérifiez que le serveur tourne", err)
		}
		return nil, err
	}
	return &created, nil
}

// UpdateProduct met à jour un produit (admin).
func (s *Service) UpdateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var updated models.Product
	if err := s.api.Put(ctx, "/products/"+p.ID, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct supprime un produit (admin).
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/products/"+id)
}
