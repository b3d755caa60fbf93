package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"shoplite/internal/client"
	"shoplite/internal/client/cart"
	"shoplite/internal/client/session"
	"shoplite/internal/models"
)

const unreachableURL = "http://127.0.0.1:1/api"

func adresse() models.Address {
	return models.Address{
		Street:  "12 rue des Lilas",
		City:    "Bruxelles",
		State:   "Bruxelles-Capitale",
		ZipCode: "1000",
		Country: "Belgique",
	}
}

func panierRempli() *cart.Cart {
	c := cart.New()
	c.AddItem(models.Product{ID: "p1", Name: "Casque", Price: 10}, 2)
	c.AddItem(models.Product{ID: "p2", Name: "Souris", Price: 5}, 1)
	return c
}

func newService(t *testing.T, baseURL string) *Service {
	t.Helper()
	api := client.New(baseURL)
	store := session.NewStore(filepath.Join(t.TempDir(), "auth-storage.json"))
	sess := session.NewManager(api, store, true)
	return NewService(api, sess)
}

func TestPlaceOrderComputesTotal(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("requête inattendue: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{ID: "o1", Total: got["total"].(float64), Status: models.StatusPending})
	}))
	defer srv.Close()

	svc := newService(t, srv.URL)
	basket := panierRempli()

	order, err := svc.PlaceOrder(context.Background(), basket, adresse(), "card")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// 10×2 + 5×1 = 25, figé dans la commande.
	if got["total"] != 25.0 {
		t.Errorf("total envoyé = %v, attendu 25", got["total"])
	}
	if order.Total != 25 {
		t.Errorf("total de la commande = %v, attendu 25", order.Total)
	}
	if got["status"] != models.StatusPending {
		t.Errorf("status envoyé = %v", got["status"])
	}

	// Post-condition : le panier est vidé.
	if basket.TotalItems() != 0 {
		t.Errorf("panier non vidé après commande: %d articles", basket.TotalItems())
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := newService(t, unreachableURL)
	_, err := svc.PlaceOrder(context.Background(), cart.New(), adresse(), "card")
	if !errors.Is(err, client.ErrValidation) {
		t.Errorf("panier vide: err = %v, attendu ErrValidation", err)
	}
}

func TestPlaceOrderIncompleteAddress(t *testing.T) {
	svc := newService(t, unreachableURL)
	addr := adresse()
	addr.City = ""
	basket := panierRempli()

	_, err := svc.PlaceOrder(context.Background(), basket, addr, "card")
	if !errors.Is(err, client.ErrValidation) {
		t.Errorf("adresse incomplète: err = %v, attendu ErrValidation", err)
	}
	if basket.TotalItems() != 3 {
		t.Errorf("le panier ne doit pas être vidé sur échec de validation")
	}
}

func TestPlaceOrderOfflineFallback(t *testing.T) {
	svc := newService(t, unreachableURL)
	basket := panierRempli()

	order, err := svc.PlaceOrder(context.Background(), basket, adresse(), "card")
	if err != nil {
		t.Fatalf("PlaceOrder hors ligne: %v", err)
	}
	if order.Total != 25 || order.Status != models.StatusPending {
		t.Errorf("commande locale inattendue: %+v", order)
	}
	// Identifiant horodaté : un entier en millisecondes.
	if _, perr := strconv.ParseInt(order.ID, 10, 64); perr != nil {
		t.Errorf("id local non horodaté: %q", order.ID)
	}
	if basket.TotalItems() != 0 {
		t.Errorf("panier non vidé après commande locale")
	}
}

func TestOrdersOfflineReturnsEmptyList(t *testing.T) {
	svc := newService(t, unreachableURL)
	orders, err := svc.Orders(context.Background())
	if err != nil {
		t.Fatalf("Orders hors ligne: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("liste non vide hors ligne: %d", len(orders))
	}
}

func TestOrderOfflineNotFound(t *testing.T) {
	svc := newService(t, unreachableURL)
	_, err := svc.Order(context.Background(), "o404")
	if !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Order hors ligne: err = %v, attendu ErrNotFound", err)
	}
}

func TestUpdateStatusNoOfflineFallback(t *testing.T) {
	svc := newService(t, unreachableURL)
	_, err := svc.UpdateStatus(context.Background(), "o1", models.StatusShipped)
	if !client.IsUnreachable(err) {
		t.Errorf("UpdateStatus hors ligne: err = %v, attendu ErrUnreachable", err)
	}
}
