// Package session orchestre l'authentification du client storefront :
// login, inscription, déconnexion et restauration au démarrage, avec un
// fallback hors ligne explicite (mode démo) quand le serveur est injoignable.
package session

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shoplite/internal/client"
	"shoplite/internal/models"
)

// Manager détient l'état de session courant. C'est un objet explicite passé
// aux composants qui en ont besoin — pas de globals de paquet.
type Manager struct {
	api      *client.Client
	store    *Store
	demoMode bool

	user  *models.User
	token string
}

// NewManager construit le gestionnaire. demoMode autorise le fallback local
// (comptes de démo, inscription hors ligne) sur panne réseau ; sans lui,
// l'erreur Unreachable remonte telle quelle.
func NewManager(api *client.Client, store *Store, demoMode bool) *Manager {
	return &Manager{api: api, store: store, demoMode: demoMode}
}

// User retourne une copie de l'utilisateur connecté, ou nil.
func (m *Manager) User() *models.User {
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token retourne le token de session courant.
func (m *Manager) Token() string { return m.token }

// IsAuthenticated indique si une session est active.
func (m *Manager) IsAuthenticated() bool { return m.user != nil && m.token != "" }

// Login authentifie auprès du serveur, avec fallback sur la table de démo en
// mode démo quand le serveur est injoignable.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}

	var resp models.AuthResponse
	err := m.api.Post(ctx, "/auth/login", body, &resp)
	if err == nil {
		m.adopt(resp.Token, resp.User)
		return m.User(), nil
	}

	if client.IsStatus(err, http.StatusUnauthorized) {
		return nil, client.ErrInvalidCredentials
	}

	if isUnreachable(err) && m.demoMode {
		user, ok := findDemoByCredentials(email, password)
		if !ok {
			return nil, client.ErrInvalidCredentials
		}
		token, serr := signDemoToken(user)
		if serr != nil {
			return nil, serr
		}
		m.adopt(token, user)
		return m.User(), nil
	}

	return nil, err
}

// Register crée un compte. Hors ligne (mode démo), l'utilisateur est créé
// localement avec un identifiant horodaté, rôle "user" — sans contrôle
// d'unicité d'email, c'est assumé pour un compte jetable de démo.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp models.AuthResponse
	err := m.api.Post(ctx, "/auth/register", body, &resp)
	if err == nil {
		m.adopt(resp.Token, resp.User)
		return m.User(), nil
	}

	if isUnreachable(err) && m.demoMode {
		user := models.User{
			ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
			Email:     email,
			Name:      name,
			Role:      models.RoleUser,
			CreatedAt: time.Now().UTC(),
		}
		token, serr := signDemoToken(user)
		if serr != nil {
			return nil, serr
		}
		m.adopt(token, user)
		return m.User(), nil
	}

	return nil, err
}

// Logout efface l'état en mémoire et le stockage durable. Aucun appel réseau.
func (m *Manager) Logout() {
	m.reset()
	_ = m.store.Clear()
}

// Restore relit le stockage durable au démarrage. Token présent : on résout
// l'utilisateur via le serveur, sinon on le reconstruit en décodant le token
// localement. Token indéchiffrable : session effacée, ErrInvalidSession.
func (m *Manager) Restore(ctx context.Context) error {
	st, err := m.store.Load()
	if err != nil {
		// Stockage corrompu : on repart de zéro.
		m.reset()
		_ = m.store.Clear()
		return fmt.Errorf("%w: %v", client.ErrInvalidSession, err)
	}
	if st == nil || st.Token == "" {
		m.reset()
		return nil
	}

	m.api.SetToken(st.Token)

	var user models.User
	if err := m.api.Get(ctx, "/auth/me", &user); err == nil {
		m.adopt(st.Token, user)
		return nil
	}

	// Fallback : reconstruire un utilisateur minimal depuis le token.
	userID, role, derr := decodeToken(st.Token)
	if derr != nil {
		m.reset()
		_ = m.store.Clear()
		return fmt.Errorf("%w: %v", client.ErrInvalidSession, derr)
	}

	user = rebuildUser(userID, role, st.User)
	m.adopt(st.Token, user)
	return nil
}

// rebuildUser reconstitue le meilleur utilisateur possible hors ligne :
// compte de démo connu, sinon copie persistée, sinon identité minimale.
func rebuildUser(userID, role string, persisted *models.User) models.User {
	if demo, ok := findDemoByID(userID); ok {
		demo.Role = role
		return demo
	}
	if persisted != nil && persisted.ID == userID {
		return *persisted
	}
	return models.User{ID: userID, Role: role}
}

// adopt installe la session et la persiste. L'écriture durable est
// fire-and-forget : un échec n'invalide pas la session en mémoire.
func (m *Manager) adopt(token string, user models.User) {
	m.token = token
	m.user = &user
	m.api.SetToken(token)
	_ = m.store.Save(State{Token: token, User: &user, IsAuthenticated: true})
}

func (m *Manager) reset() {
	m.token = ""
	m.user = nil
	m.api.SetToken("")
}

func isUnreachable(err error) bool {
	return err != nil && client.IsUnreachable(err)
}
