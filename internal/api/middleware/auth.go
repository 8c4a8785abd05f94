package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/boggle-go/internal/model"
)

type contextKey string

const tokenContextKey contextKey = "user_token"

// Token copies a bearer token from the Authorization header into the request
// context. It never rejects a request: the engine decides whether a token is valid.
func Token() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				r = r.WithContext(context.WithValue(r.Context(), tokenContextKey, token))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the user token from the Authorization header
func extractToken(r *http.Request) model.Token {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return model.Token(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
	}
	return ""
}

// GetToken returns the bearer token from the request context, if any
func GetToken(ctx context.Context) model.Token {
	token, _ := ctx.Value(tokenContextKey).(model.Token)
	return token
}

// ResolveToken prefers a token given in the request body over the bearer token
func ResolveToken(ctx context.Context, bodyToken string) model.Token {
	if bodyToken = strings.TrimSpace(bodyToken); bodyToken != "" {
		return model.Token(bodyToken)
	}
	return GetToken(ctx)
}
