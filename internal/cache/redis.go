// Package cache gère la connexion Redis optionnelle du serveur mock : miroir
// de panier côté serveur et compteurs de rate limiting. Quand REDIS_HOST n'est
// pas configuré, tout ce qui en dépend est simplement désactivé.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"shoplite/internal/models"
)

var RedisClient *redis.Client

// CartTTL : durée de vie du panier serveur (même valeur qu'un cookie long).
const CartTTL = 30 * 24 * time.Hour

// InitRedis initialise la connexion Redis.
func InitRedis() error {
	redisHost := os.Getenv("REDIS_HOST")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		return fmt.Errorf("REDIS_HOST non configuré")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("impossible de se connecter à Redis: %v", err)
	}

	RedisClient = client
	log.Println("✅ Redis connecté avec succès")
	return nil
}

// Enabled indique si les fonctionnalités Redis sont actives.
func Enabled() bool {
	return RedisClient != nil
}

// CloseRedis ferme la connexion Redis.
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// --- Miroir de panier ---

func cartKey(userID string) string {
	return "cart:" + userID
}

// GetCart lit le panier serveur d'un utilisateur. Un panier absent est vide.
func GetCart(ctx context.Context, userID string) ([]models.CartLine, error) {
	data, err := RedisClient.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || data == "" {
		return []models.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart []models.CartLine
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SaveCart écrit le panier serveur avec son TTL de 30 jours.
func SaveCart(ctx context.Context, userID string, cart []models.CartLine) error {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, cartKey(userID), jsonData, CartTTL).Err()
}

// ClearCart supprime complètement la clé du panier.
func ClearCart(ctx context.Context, userID string) error {
	return RedisClient.Del(ctx, cartKey(userID)).Err()
}

// --- Rate limiting ---

// IncrementRateLimit incrémente un compteur avec fenêtre glissante.
func IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := RedisClient.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
