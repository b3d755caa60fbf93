package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"shoplite/internal/models"
)

// State est l'état de session persisté. Le format sur disque reprend la clé
// "auth-storage" du client web : {"state":{"token","user","isAuthenticated"}}.
type State struct {
	Token           string       `json:"token"`
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

type envelope struct {
	State State `json:"state"`
}

// Store est le stockage durable de session : un fichier JSON qui survit aux
// redémarrages, relu au démarrage et réécrit à chaque mutation de session.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath retourne l'emplacement standard du fichier auth-storage.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shoplite", "auth-storage.json"), nil
}

// Load lit l'état persisté. Absence de fichier = pas de session (nil, nil).
func (s *Store) Load() (*State, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return &env.State, nil
}

// Save réécrit l'état complet.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(envelope{State: st}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear supprime l'état persisté. Un fichier déjà absent n'est pas une erreur.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
