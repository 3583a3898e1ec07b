package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// UserResolver resolves a bearer token to its user.
type UserResolver interface {
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
}

// authMiddleware requires a valid bearer token and stores the resolved user
// in the request context.
func authMiddleware(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, errs.Auth("missing bearer token"))
				return
			}
			user, err := resolver.GetUserByToken(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// userFrom returns the authenticated user stored by authMiddleware.
func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
