package utils

import (
	"strings"
	"testing"

	"shoplite/internal/models"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("user123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("format de hash inattendu: %s", hash)
	}

	ok, err := VerifyPassword("user123", hash)
	if err != nil || !ok {
		t.Errorf("bon mot de passe refusé: ok=%v, err=%v", ok, err)
	}

	ok, err = VerifyPassword("autre", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("mauvais mot de passe accepté")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("user123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("user123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("deux hashs identiques: sel manquant")
	}
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	if _, err := VerifyPassword("x", "pas-un-hash"); err == nil {
		t.Error("hash invalide accepté sans erreur")
	}
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	user := models.User{ID: "2", Email: "user@example.com", Role: models.RoleUser}
	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Errorf("token mal formé: %s", token)
	}
}
