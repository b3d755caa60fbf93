package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shoplite/internal/models"
)

// JWTSecret retourne le secret de signature. Le fallback sert uniquement au
// mode démo local — en production JWT_SECRET doit être défini.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateJWT signe un token HS256 pour un utilisateur, valable 24h.
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
