package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-foodorder/models"
	"go-foodorder/services"
	"go-foodorder/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// Authenticator resolves bearer tokens; services.IdentityGuard implements it
type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (*models.User, error)
	AuthenticateAdmin(ctx context.Context, bearerToken string) (*models.User, error)
}

// AuthMiddleware verifies the bearer token and attaches the user to the context
func AuthMiddleware(guard Authenticator) func(http.Handler) http.Handler {
	return authenticate(guard.Authenticate)
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(guard Authenticator) func(http.Handler) http.Handler {
	return authenticate(guard.AuthenticateAdmin)
}

func authenticate(resolve func(ctx context.Context, token string) (*models.User, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolve(r.Context(), bearerToken(r))
			if err != nil {
				status, message := http.StatusUnauthorized, "please authenticate"
				if se, ok := services.AsError(err); ok {
					status, message = se.Kind.HTTPStatus(), se.Message
				}
				if status >= http.StatusInternalServerError {
					utils.WithCtx(r.Context()).Error("authenticate", "error", err)
					message = "internal server error"
				}
				utils.WriteMessage(w, status, message)
				return
			}

			utils.WithCtx(r.Context()).Debug("authenticated", "user_id", user.ID.Hex())
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header, or ""
func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// CurrentUser returns the user attached by AuthMiddleware or AdminMiddleware
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserContextKey).(*models.User)
	return user
}
