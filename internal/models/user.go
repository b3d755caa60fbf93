package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse est la réponse de /auth/login et /auth/register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
