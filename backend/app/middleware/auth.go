package middleware

import (
	"context"
	"errors"
	"net/http"

	"wine-cellar/backend/app/models"
	"wine-cellar/backend/app/session"

	"github.com/rs/zerolog"
)

type ctxKey int

const UserKey ctxKey = 1

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type Auth struct {
	Sessions *session.Manager
	Users    UserFinder
	Log      zerolog.Logger
}

// RequireAuth lets the request through only with a live session whose user
// still exists. Everything else is redirected to the login page before next
// runs.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, uid, err := a.Sessions.Resolve(r)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("session lookup failed")
			}
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		u, err := a.Users.FindByID(r.Context(), uid)
		if err != nil {
			a.Log.Warn().Err(err).Uint("user_id", uid).Msg("session user not found")
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), UserKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
