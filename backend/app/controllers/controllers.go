package controllers

import (
	"context"
	"io"
	"net/http"

	"wine-cellar/backend/app/dto"
	"wine-cellar/backend/app/models"
	"wine-cellar/backend/app/views"

	"github.com/rs/zerolog"
)

type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

type WineStore interface {
	List(ctx context.Context) ([]models.Wine, error)
	Search(ctx context.Context, query string) ([]models.Wine, error)
	Get(ctx context.Context, id string) (*models.Wine, error)
	Create(ctx context.Context, form dto.WineForm) (*models.Wine, error)
	Update(ctx context.Context, id string, form dto.WineForm) error
	Delete(ctx context.Context, id string) error
}

type Authenticator interface {
	ValidateCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// render writes page name or, when the template fails, redirects to
// fallback. The client never sees the template error.
func render(w http.ResponseWriter, r *http.Request, v Renderer, log zerolog.Logger, name string, page views.Page, fallback string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.Render(w, name, page); err != nil {
		log.Error().Err(err).Str("view", name).Msg("render failed")
		w.Header().Del("Content-Type")
		http.Redirect(w, r, fallback, http.StatusFound)
	}
}
