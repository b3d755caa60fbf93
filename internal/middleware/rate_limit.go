package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoplite/internal/cache"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email. Sans Redis le
// middleware est transparent (serveur mock en mode démo).
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cache.Enabled() {
			c.Next()
			return
		}

		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := "login_attempts:" + input.Email
		cooldownKey := "login_cooldown:" + input.Email

		if cache.RedisClient.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := cache.RedisClient.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := cache.RedisClient.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			cache.RedisClient.Set(ctx, cooldownKey, "1", LoginCooldown)
			cache.RedisClient.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Tentative échouée : incrémenter. Réussie : réinitialiser.
		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			_, _ = cache.IncrementRateLimit(ctx, key, LoginCooldown)
		case http.StatusOK:
			cache.RedisClient.Del(ctx, key)
			cache.RedisClient.Del(ctx, cooldownKey)
		}
	}
}
