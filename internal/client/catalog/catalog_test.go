package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoplite/internal/client"
	"shoplite/internal/models"
)

const unreachableURL = "http://127.0.0.1:1/api"

func TestFiltersEncode(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want string
	}{
		{"vide", Filters{}, ""},
		{"categorie", Filters{Category: "electronics"}, "?category=electronics"},
		{"prix", Filters{MinPrice: 10, MaxPrice: 99.5}, "?maxPrice=99.5&minPrice=10"},
		{"recherche", Filters{Search: "casque audio"}, "?q=casque+audio"},
		{"note", Filters{Rating: 4.5}, "?rating=4.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.encode(); got != tt.want {
				t.Errorf("encode() = %q, attendu %q", got, tt.want)
			}
		})
	}
}

func TestProductsSendsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Product{{ID: "p1", Name: "Casque"}})
	}))
	defer srv.Close()

	svc := NewService(client.New(srv.URL))
	products, err := svc.Products(context.Background(), Filters{Category: "electronics", MinPrice: 10})
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if gotQuery != "category=electronics&minPrice=10" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("produits inattendus: %+v", products)
	}
}

func TestProductsOfflineFallsBackToMocks(t *testing.T) {
	svc := NewService(client.New(unreachableURL))
	products, err := svc.Products(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Products hors ligne: %v", err)
	}
	if len(products) != len(MockProducts()) {
		t.Errorf("catalogue de démo attendu, reçu %d produits", len(products))
	}
}

func TestProductOfflineLookup(t *testing.T) {
	svc := NewService(client.New(unreachableURL))

	mock := MockProducts()[0]
	p, err := svc.Product(context.Background(), mock.ID)
	if err != nil {
		t.Fatalf("Product hors ligne: %v", err)
	}
	if p.Name != mock.Name {
		t.Errorf("produit = %+v, attendu %+v", p, mock)
	}

	if _, err := svc.Product(context.Background(), "inconnu"); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("produit inconnu hors ligne: err = %v, attendu ErrNotFound", err)
	}
}

func TestProductServerNotFoundPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Produit introuvable"})
	}))
	defer srv.Close()

	svc := NewService(client.New(srv.URL))
	_, err := svc.Product(context.Background(), "p404")
	// 404 du serveur : pas de fallback sur la démo.
	if !errors.Is(err, client.ErrNotFound) {
		t.Errorf("err = %v, attendu ErrNotFound", err)
	}
}

func TestCategoriesOfflineFallsBackToMocks(t *testing.T) {
	svc := NewService(client.New(unreachableURL))
	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories hors ligne: %v", err)
	}
	if len(categories) != len(MockCategories()) {
		t.Errorf("catégories de démo attendues, reçu %d", len(categories))
	}
}

func TestCreateProductOfflineFails(t *testing.T) {
	svc := NewService(client.New(unreachableURL))
	_, err := svc.CreateProduct(context.Background(), models.Product{Name: "Nouveau"})
	if !client.IsUnreachable(err) {
		t.Errorf("CreateProduct hors ligne: err = %v, attendu ErrUnreachable", err)
	}
}
