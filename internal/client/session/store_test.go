package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"shoplite/internal/models"
)

func TestStoreRoundTrip(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "auth-storage.json"))

	// Fichier absent : pas de session, pas d'erreur.
	loaded, err := st.Load()
	if err != nil || loaded != nil {
		t.Fatalf("état initial: %+v, %v", loaded, err)
	}

	user := models.User{ID: "2", Email: "user@example.com", Role: models.RoleUser}
	if err := st.Save(State{Token: "abc", User: &user, IsAuthenticated: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err = st.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Token != "abc" || loaded.User == nil || loaded.User.ID != "2" || !loaded.IsAuthenticated {
		t.Errorf("état relu inattendu: %+v", loaded)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	// Double clear : idempotent.
	if err := st.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

// Le format sur disque garde l'enveloppe {"state":{...}} du client web.
func TestStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-storage.json")
	st := NewStore(path)

	if err := st.Save(State{Token: "abc", IsAuthenticated: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := doc["state"]; !ok {
		t.Errorf("clé \"state\" absente du fichier: %s", raw)
	}
}
