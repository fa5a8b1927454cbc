package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Dipto6969/Police-Positive/config"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Actor is the authenticated principal resolved from the bearer token
type Actor struct {
	ID    string
	Email string
	Role  string
}

// Auth verifies bearer tokens on protected routes. The signing secret
// is injected at construction rather than read from the environment at
// call time.
type Auth struct {
	Secret string
}

// Middleware rejects requests without a valid HS256 bearer token and
// stores the actor in the request context for the handlers.
func (a Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, fmt.Errorf("missing bearer token"))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(a.Secret), nil
		})
		if err != nil || !token.Valid {
			config.ErrorStatus("Invalid or expired token", http.StatusUnauthorized, w, err)
			return
		}

		actor := Actor{}
		if id, ok := claims["id"].(string); ok {
			actor.ID = id
		}
		if email, ok := claims["email"].(string); ok {
			actor.Email = email
		}
		if role, ok := claims["role"].(string); ok {
			actor.Role = role
		}

		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the authenticated actor stored by the
// middleware, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(Actor)
	return actor, ok
}

// ContextWithActor is used by tests to simulate an authenticated request.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}
