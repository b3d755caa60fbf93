package client

import (
	"errors"
	"fmt"
)

// Taxonomie d'erreurs du coeur storefront. Comparer avec errors.Is.
var (
	// ErrInvalidCredentials : email/mot de passe refusés.
	ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
	// ErrInvalidSession : token absent ou corrompu à la restauration.
	ErrInvalidSession = errors.New("session invalide")
	// ErrUnreachable : collaborateur injoignable (panne réseau). Déclenche le
	// fallback local là où il est défini, sinon remonte à l'appelant.
	ErrUnreachable = errors.New("serveur injoignable")
	// ErrValidation : champ obligatoire vide, vérifié avant tout appel réseau.
	ErrValidation = errors.New("champs obligatoires manquants")
	// ErrNotFound : produit ou commande inconnus.
	ErrNotFound = errors.New("introuvable")
)

// APIError est une réponse non-2xx du serveur, hors cas couverts par la
// taxonomie ci-dessus.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: statut %d", e.Status)
}

// IsStatus teste si err est une APIError avec le statut donné.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnreachable teste si err est une panne réseau vers le collaborateur.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
