package session

import (
	"strings"
	"time"

	"shoplite/internal/models"
)

// Comptes de démo du fallback hors ligne. Uniquement consultés quand le
// gestionnaire tourne en mode démo et que le serveur est injoignable.
type demoAccount struct {
	user     models.User
	password string
}

func demoAccounts() []demoAccount {
	now := time.Now().UTC()
	return []demoAccount{
		{
			user:     models.User{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin, CreatedAt: now},
			password: "admin123",
		},
		{
			user:     models.User{ID: "2", Email: "user@example.com", Name: "John Doe", Role: models.RoleUser, CreatedAt: now},
			password: "user123",
		},
	}
}

func findDemoByCredentials(email, password string) (models.User, bool) {
	for _, acct := range demoAccounts() {
		if strings.EqualFold(acct.user.Email, email) && acct.password == password {
			return acct.user, true
		}
	}
	return models.User{}, false
}

func findDemoByID(id string) (models.User, bool) {
	for _, acct := range demoAccounts() {
		if acct.user.ID == id {
			return acct.user, true
		}
	}
	return models.User{}, false
}
