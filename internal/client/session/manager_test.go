package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"shoplite/internal/client"
	"shoplite/internal/models"
)

// unreachableURL pointe vers un port fermé : toute requête échoue en panne
// réseau, ce qui déclenche les fallbacks.
const unreachableURL = "http://127.0.0.1:1/api"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "auth-storage.json"))
}

func TestLoginFallbackDemoCredentials(t *testing.T) {
	cases := []struct {
		email, password, wantRole string
	}{
		{"admin@example.com", "admin123", models.RoleAdmin},
		{"user@example.com", "user123", models.RoleUser},
	}

	for _, tc := range cases {
		m := NewManager(client.New(unreachableURL), newTestStore(t), true)

		user, err := m.Login(context.Background(), tc.email, tc.password)
		if err != nil {
			t.Fatalf("login %s: %v", tc.email, err)
		}
		if user.Role != tc.wantRole {
			t.Errorf("login %s: rôle %s, attendu %s", tc.email, user.Role, tc.wantRole)
		}
		if !m.IsAuthenticated() {
			t.Errorf("login %s: session non active", tc.email)
		}
	}
}

func TestLoginFallbackRejectsUnknownCredentials(t *testing.T) {
	m := NewManager(client.New(unreachableURL), newTestStore(t), true)

	_, err := m.Login(context.Background(), "admin@example.com", "mauvais")
	if !errors.Is(err, client.ErrInvalidCredentials) {
		t.Errorf("attendu ErrInvalidCredentials, obtenu %v", err)
	}
}

func TestLoginWithoutDemoModePropagatesUnreachable(t *testing.T) {
	m := NewManager(client.New(unreachableURL), newTestStore(t), false)

	_, err := m.Login(context.Background(), "admin@example.com", "admin123")
	if !errors.Is(err, client.ErrUnreachable) {
		t.Errorf("attendu ErrUnreachable, obtenu %v", err)
	}
}

func TestLoginAgainstServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		if body.Email != "alice@example.com" || body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Email ou mot de passe incorrect"})
			return
		}
		json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "token-serveur",
			User:  models.User{ID: "42", Email: body.Email, Name: "Alice", Role: models.RoleUser},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := NewManager(client.New(srv.URL), newTestStore(t), false)

	user, err := m.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "42" || m.Token() != "token-serveur" {
		t.Errorf("session inattendue: user=%+v token=%s", user, m.Token())
	}

	_, err = m.Login(context.Background(), "alice@example.com", "faux")
	if !errors.Is(err, client.ErrInvalidCredentials) {
		t.Errorf("mauvais mot de passe: attendu ErrInvalidCredentials, obtenu %v", err)
	}
}

func TestRegisterFallbackCreatesLocalUser(t *testing.T) {
	m := NewManager(client.New(unreachableURL), newTestStore(t), true)

	before := time.Now().UnixMilli()
	user, err := m.Register(context.Background(), "Bob", "bob@example.com", "motdepasse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("rôle %s, attendu user", user.Role)
	}

	// L'identifiant hors ligne est dérivé de l'horloge.
	ms, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		t.Fatalf("identifiant %q non horodaté: %v", user.ID, err)
	}
	if ms < before {
		t.Errorf("identifiant %s antérieur au test", user.ID)
	}
}

func TestLogoutThenRestoreIsUnauthenticated(t *testing.T) {
	st := newTestStore(t)
	m := NewManager(client.New(unreachableURL), st, true)

	if _, err := m.Login(context.Background(), "user@example.com", "user123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	m.Logout()

	m2 := NewManager(client.New(unreachableURL), st, true)
	if err := m2.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if m2.IsAuthenticated() {
		t.Error("session restaurée après logout")
	}
}

func TestRestoreRoundTripViaTokenDecode(t *testing.T) {
	st := newTestStore(t)
	m := NewManager(client.New(unreachableURL), st, true)

	original, err := m.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Simule un rechargement : nouveau manager, même stockage durable,
	// serveur toujours injoignable → reconstruction par décodage du token.
	m2 := NewManager(client.New(unreachableURL), st, true)
	if err := m2.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored := m2.User()
	if restored == nil {
		t.Fatal("aucun utilisateur restauré")
	}
	if restored.ID != original.ID {
		t.Errorf("userId %s, attendu %s", restored.ID, original.ID)
	}
	if restored.Role != original.Role {
		t.Errorf("rôle %s, attendu %s", restored.Role, original.Role)
	}
}

func TestRestoreResolvesUserViaServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-persisté" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: "7", Email: "carol@example.com", Name: "Carol", Role: models.RoleUser})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	st := newTestStore(t)
	if err := st.Save(State{Token: "token-persisté", IsAuthenticated: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	m := NewManager(client.New(srv.URL), st, false)
	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if u := m.User(); u == nil || u.ID != "7" {
		t.Errorf("utilisateur restauré inattendu: %+v", m.User())
	}
}

func TestRestoreGarbageTokenClearsSession(t *testing.T) {
	st := newTestStore(t)
	if err := st.Save(State{Token: "pas-un-jwt", IsAuthenticated: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	m := NewManager(client.New(unreachableURL), st, true)
	err := m.Restore(context.Background())
	if !errors.Is(err, client.ErrInvalidSession) {
		t.Errorf("attendu ErrInvalidSession, obtenu %v", err)
	}
	if m.IsAuthenticated() {
		t.Error("session active malgré un token corrompu")
	}

	// Le stockage durable doit avoir été nettoyé.
	persisted, err := st.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if persisted != nil {
		t.Errorf("stockage non nettoyé: %+v", persisted)
	}
}
