package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"wine-cellar/backend/app/dto"
	jwtutil "wine-cellar/backend/app/jwt"
	"wine-cellar/backend/app/models"
	"wine-cellar/backend/app/services"
	"wine-cellar/backend/app/session"
	"wine-cellar/backend/app/views"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeWines struct {
	wines   map[string]models.Wine
	err     error
	lastQ   string
	created []dto.WineForm
	updated map[string]dto.WineForm
	deleted []string
}

func newFakeWines() *fakeWines {
	return &fakeWines{wines: map[string]models.Wine{}, updated: map[string]dto.WineForm{}}
}

func (f *fakeWines) List(context.Context) ([]models.Wine, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Wine, 0, len(f.wines))
	for _, w := range f.wines {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWines) Search(_ context.Context, q string) ([]models.Wine, error) {
	f.lastQ = q
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Wine
	for _, w := range f.wines {
		if strings.Contains(w.Name, q) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWines) Get(_ context.Context, id string) (*models.Wine, error) {
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.wines[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &w, nil
}

func (f *fakeWines) Create(_ context.Context, form dto.WineForm) (*models.Wine, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, form)
	w := form.Wine
	w.ID = "new"
	return &w, nil
}

func (f *fakeWines) Update(_ context.Context, id string, form dto.WineForm) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.wines[id]; !ok {
		return services.ErrNotFound
	}
	f.updated[id] = form
	return nil
}

func (f *fakeWines) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeAuth struct {
	user *models.User
	err  error
}

func (f *fakeAuth) ValidateCredentials(_ context.Context, username, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || username != f.user.Username || password != "pw" {
		return nil, services.ErrInvalidCredentials
	}
	return f.user, nil
}

type brokenRenderer struct{}

func (brokenRenderer) Render(w io.Writer, name string, data any) error {
	return errors.New("template exploded")
}

// --- helpers ---

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	r, err := views.New(views.Templates())
	require.NoError(t, err)
	return r
}

func newSessions() *session.Manager {
	return &session.Manager{
		Store:  session.NewMemoryStore(),
		Signer: &jwtutil.Signer{Secret: []byte("k"), Issuer: "test", TTL: time.Hour},
		Cookie: "sess",
		TTL:    time.Hour,
	}
}

func newInventory(t *testing.T, wines WineStore) http.Handler {
	t.Helper()
	c := NewInventoryController(wines, newRenderer(t), zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/inventory", c.Index)
	r.Post("/inventory", c.Create)
	r.Get("/inventory/results", c.Search)
	r.Get("/inventory/add", c.New)
	r.Get("/inventory/{id}", c.Show)
	r.Get("/inventory/{id}/edit", c.Edit)
	r.Put("/inventory/{id}", c.Update)
	r.Delete("/inventory/{id}", c.Delete)
	return r
}

func do(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
