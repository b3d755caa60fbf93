// Package store implémente le document store JSON plat du serveur mock
// (l'équivalent du db.json de json-server) : quatre collections chargées en
// mémoire et réécrites sur disque à chaque mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"shoplite/internal/models"
)

var (
	ErrNotFound      = errors.New("document introuvable")
	ErrConflict      = errors.New("document en conflit")
	ErrBadTransition = errors.New("transition de statut invalide")
)

type collections struct {
	Users      []models.User
	Products   []models.Product
	Categories []models.Category
	Orders     []models.Order
}

// storedUser double models.User pour la persistance : le hash du mot de passe
// est exclu des réponses API (json:"-") mais doit survivre dans db.json, sinon
// tous les logins échouent après un redémarrage.
type storedUser struct {
	models.User
	Password string `json:"password"`
}

// document est la forme sur disque de db.json.
type document struct {
	Users      []storedUser      `json:"users"`
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
	Orders     []models.Order    `json:"orders"`
}

func (c collections) toDocument() document {
	users := make([]storedUser, len(c.Users))
	for i, u := range c.Users {
		users[i] = storedUser{User: u, Password: u.Password}
	}
	return document{Users: users, Products: c.Products, Categories: c.Categories, Orders: c.Orders}
}

func (d document) toCollections() collections {
	users := make([]models.User, len(d.Users))
	for i, su := range d.Users {
		u := su.User
		u.Password = su.Password
		users[i] = u
	}
	return collections{Users: users, Products: d.Products, Categories: d.Categories, Orders: d.Orders}
}

type Store struct {
	mu   sync.RWMutex
	path string
	data collections
}

// Open charge le fichier db.json, ou crée un store pré-rempli avec les données
// de démo s'il n'existe pas encore.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var doc document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("db.json corrompu (%s): %w", path, err)
		}
		s.data = doc.toCollections()
		log.Printf("✅ Store chargé depuis %s (%d produits, %d utilisateurs, %d commandes)",
			path, len(s.data.Products), len(s.data.Users), len(s.data.Orders))
	case os.IsNotExist(err):
		s.data = seedData()
		if err := s.persist(); err != nil {
			return nil, err
		}
		log.Printf("✅ Store initialisé avec les données de démo dans %s", path)
	default:
		return nil, err
	}

	return s, nil
}

// persist réécrit tout le fichier. Appelé sous le lock en écriture.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data.toDocument(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// ================== UTILISATEURS ==================

func (s *Store) CreateUser(u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data.Users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, fmt.Errorf("email %s: %w", u.Email, ErrConflict)
		}
	}

	s.data.Users = append(s.data.Users, u)
	if err := s.persist(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) UserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.data.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) UserByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.data.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.data.Users))
	copy(out, s.data.Users)
	return out
}

func (s *Store) UpdateUser(u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Users {
		if s.data.Users[i].ID == u.ID {
			s.data.Users[i] = u
			if err := s.persist(); err != nil {
				return models.User{}, err
			}
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Users {
		if s.data.Users[i].ID == id {
			s.data.Users = append(s.data.Users[:i], s.data.Users[i+1:]...)
			return s.persist()
		}
	}
	return ErrNotFound
}

// ================== PRODUITS ==================

// ProductFilter reprend les paramètres de requête du catalogue :
// category, minPrice, maxPrice, rating, q.
type ProductFilter struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Rating   float64
	Query    string
}

func (f ProductFilter) matches(p models.Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Rating > 0 && p.Rating < f.Rating {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

func (s *Store) Products(f ProductFilter) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.data.Products))
	for _, p := range s.data.Products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) ProductByID(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.data.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *Store) CreateProduct(p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Products = append(s.data.Products, p)
	if err := s.persist(); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Products {
		if s.data.Products[i].ID == p.ID {
			s.data.Products[i] = p
			if err := s.persist(); err != nil {
				return models.Product{}, err
			}
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Products {
		if s.data.Products[i].ID == id {
			s.data.Products = append(s.data.Products[:i], s.data.Products[i+1:]...)
			return s.persist()
		}
	}
	return ErrNotFound
}

// ================== CATÉGORIES ==================

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, len(s.data.Categories))
	copy(out, s.data.Categories)
	return out
}

func (s *Store) CreateCategory(c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data.Categories {
		if existing.Slug == c.Slug {
			return models.Category{}, fmt.Errorf("slug %s: %w", c.Slug, ErrConflict)
		}
	}

	s.data.Categories = append(s.data.Categories, c)
	if err := s.persist(); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *Store) UpdateCategory(c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Categories {
		if s.data.Categories[i].ID == c.ID {
			s.data.Categories[i] = c
			if err := s.persist(); err != nil {
				return models.Category{}, err
			}
			return c, nil
		}
	}
	return models.Category{}, ErrNotFound
}

func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Categories {
		if s.data.Categories[i].ID == id {
			s.data.Categories = append(s.data.Categories[:i], s.data.Categories[i+1:]...)
			return s.persist()
		}
	}
	return ErrNotFound
}

// ================== COMMANDES ==================

func (s *Store) CreateOrder(o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Orders = append(s.data.Orders, o)
	if err := s.persist(); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Store) OrderByID(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.data.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrNotFound
}

// Orders retourne les commandes d'un utilisateur, ou toutes si userID est vide
// (vue admin). Les plus récentes d'abord.
func (s *Store) Orders(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.data.Orders))
	for _, o := range s.data.Orders {
		if userID == "" || o.UserID == userID {
			out = append(out, o)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// UpdateOrderStatus applique un changement de statut en refusant les retours
// en arrière dans le cycle de vie.
func (s *Store) UpdateOrderStatus(id, status string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Orders {
		if s.data.Orders[i].ID != id {
			continue
		}
		if !models.CanTransition(s.data.Orders[i].Status, status) {
			return models.Order{}, fmt.Errorf("%s → %s: %w", s.data.Orders[i].Status, status, ErrBadTransition)
		}
		s.data.Orders[i].Status = status
		if err := s.persist(); err != nil {
			return models.Order{}, err
		}
		return s.data.Orders[i], nil
	}
	return models.Order{}, ErrNotFound
}
