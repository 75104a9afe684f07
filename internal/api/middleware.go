/**
 * @description
 * This file contains custom middleware for the HTTP router. The admin
 * dashboard authenticates with an HS256 JWT issued by the identity service;
 * the middleware validates the token, enforces the admin role claim, and
 * places the actor identity on the request context so handlers can stamp it
 * into audit entries.
 *
 * @dependencies
 * - context, net/http, strings: Standard Go libraries.
 * - github.com/golang-jwt/jwt/v5: JWT parsing and validation.
 */

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ActorContextKey is a custom type for the context key to avoid collisions.
type ActorContextKey string

const adminActorKey ActorContextKey = "adminActor"

// AdminAuthMiddleware creates a middleware that validates HS256 admin JWTs.
// Tokens must carry role=admin and a non-empty sub claim.
func AdminAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
				return
			}
			if !token.Valid {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			role, _ := claims["role"].(string)
			if role != "admin" {
				http.Error(w, "Admin role required", http.StatusForbidden)
				return
			}

			actor, ok := claims["sub"].(string)
			if !ok || strings.TrimSpace(actor) == "" {
				http.Error(w, "Actor identity not found in token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminActor retrieves the authenticated admin identity from the request
// context. Handlers use this to attribute audit entries.
func GetAdminActor(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(adminActorKey).(string)
	return actor, ok
}
