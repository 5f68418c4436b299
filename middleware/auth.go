package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	userRepo "bikefix/database/repository/user"
	"bikefix/models"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the authenticated user lands in the Gin context.
const ContextUserKey = "authUser"

const authCacheTTL = 5 * time.Minute

// AuthMiddleware validates the bearer token, checks the token hash against
// the stored one (so revocation works), and restricts access to the given
// roles. An empty role list admits any authenticated user.
func AuthMiddleware(repo userRepo.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{
				Success: false, Message: "Missing or invalid Authorization header",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{
				Success: false, Message: "Invalid token",
			})
			return
		}

		user := lookupByTokenHash(repo, utils.HashToken(tokenString))
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{
				Success: false, Message: "Token revoked or user not found",
			})
			return
		}

		if len(roles) > 0 && !containsRole(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.Envelope{
				Success: false, Message: "Insufficient permissions",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// lookupByTokenHash resolves a user from the auth cache, falling back to the
// database and refilling the cache.
func lookupByTokenHash(repo userRepo.UserRepository, tokenHash string) *models.User {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	cache := utils.GetAuthCacheClient()
	key := "auth:" + tokenHash
	if cache != nil {
		if raw, err := cache.Get(ctx, key).Result(); err == nil {
			var user models.User
			if json.Unmarshal([]byte(raw), &user) == nil {
				return &user
			}
		}
	}

	user, err := repo.GetByTokenHash(tokenHash)
	if err != nil || user == nil {
		return nil
	}
	if cache != nil {
		if data, err := json.Marshal(user); err == nil {
			cache.Set(ctx, key, data, authCacheTTL)
		}
	}
	return user
}

// CurrentUser pulls the authenticated user out of the Gin context.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
