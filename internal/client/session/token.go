package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shoplite/internal/models"
)

// Secret fixe du mode démo : il ne protège rien, il permet seulement
// d'émettre hors ligne des tokens au même format que ceux du serveur.
const demoSecret = "shoplite_demo_secret"

// signDemoToken émet un token local pour le fallback hors ligne, valable 24h.
func signDemoToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(demoSecret))
}

// decodeToken lit user_id et role dans les claims SANS vérifier la signature.
// Le token sert ici de poignée de session locale pour reconstruire un
// utilisateur minimal hors ligne — ce n'est pas une authentification.
func decodeToken(tokenString string) (userID, role string, err error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("claims illisibles")
	}

	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("user_id absent du token")
	}
	return userID, role, nil
}
