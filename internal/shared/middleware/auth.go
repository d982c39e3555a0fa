package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gallery-backend/internal/shared"
)

const contextKeyActor = "actor"

// AuthMiddleware verifies the bearer token and puts the resolved actor in
// the request context. Admin routes sit behind this; public reads do not.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}
		token := parts[1]

		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !parsedToken.Valid {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		subject, ok := claims["sub"].(string)
		if !ok || subject == "" {
			c.JSON(401, gin.H{"error": "invalid subject in token"})
			c.Abort()
			return
		}

		actorType := shared.ActorTypeUser
		if t, ok := claims["actor_type"].(string); ok && t == shared.ActorTypeSystem {
			actorType = shared.ActorTypeSystem
		}

		c.Set(contextKeyActor, shared.Actor{ID: subject, Type: actorType})
		c.Next()
	}
}

// GetActor returns the actor resolved by AuthMiddleware. Handlers on
// unauthenticated routes get the system actor.
func GetActor(c *gin.Context) shared.Actor {
	if v, ok := c.Get(contextKeyActor); ok {
		if actor, ok := v.(shared.Actor); ok {
			return actor
		}
	}
	return shared.SystemActor
}
