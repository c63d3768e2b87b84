// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// clientIDKey is the context key for storing the authenticated client ID.
const clientIDKey ContextKey = "clientID"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (ClientIDGetter, error)
}

// ClientIDGetter is an interface for extracting the client ID from token claims.
type ClientIDGetter interface {
	GetClientID() string
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the client ID to request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), clientIDKey, claims.GetClientID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token of a case-insensitive "Bearer" Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="cv-registry"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// GetClientID extracts the authenticated client ID from the request context.
func GetClientID(r *http.Request) (string, error) {
	clientID, ok := r.Context().Value(clientIDKey).(string)
	if !ok || clientID == "" {
		return "", fmt.Errorf("client ID not found in request context")
	}
	return clientID, nil
}

// ClientIDKey returns the context key for the client ID (for testing purposes).
func ClientIDKey() ContextKey {
	return clientIDKey
}
