package controllers

import (
	"errors"
	"net/http"

	"wine-cellar/backend/app/dto"
	"wine-cellar/backend/app/metrics"
	"wine-cellar/backend/app/middleware"
	"wine-cellar/backend/app/services"
	"wine-cellar/backend/app/views"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const addPath = "/inventory/add"

// InventoryController serves the wine pages. Every failure ends in a
// redirect; nothing about the error reaches the client.
type InventoryController struct {
	Wines WineStore
	Views Renderer
	Log   zerolog.Logger
}

func NewInventoryController(wines WineStore, v Renderer, log zerolog.Logger) *InventoryController {
	return &InventoryController{Wines: wines, Views: v, Log: log}
}

func (c *InventoryController) Index(w http.ResponseWriter, r *http.Request) {
	wines, err := c.Wines.List(r.Context())
	if err != nil {
		c.fail(w, r, "list", err, homePath)
		return
	}
	c.render(w, r, views.Index, views.Page{Wines: wines})
}

// Search matches the name query parameter against name, type and location.
func (c *InventoryController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("name")
	wines, err := c.Wines.Search(r.Context(), q)
	if err != nil {
		c.fail(w, r, "search", err, homePath)
		return
	}
	c.render(w, r, views.Results, views.Page{Wines: wines, Query: q})
}

func (c *InventoryController) New(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, views.Add, views.Page{})
}

func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.fail(w, r, "create", err, addPath)
		return
	}
	form, err := dto.ParseWineForm(r.PostForm)
	if err != nil {
		c.fail(w, r, "create", err, addPath)
		return
	}
	wine, err := c.Wines.Create(r.Context(), form)
	if err != nil {
		c.fail(w, r, "create", err, addPath)
		return
	}
	c.Log.Info().Str("id", wine.ID).Str("name", wine.Name).Msg("wine created")
	http.Redirect(w, r, inventoryPath, http.StatusFound)
}

func (c *InventoryController) Edit(w http.ResponseWriter, r *http.Request) {
	wine, err := c.Wines.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, "edit", err, homePath)
		return
	}
	c.render(w, r, views.Edit, views.Page{Wine: wine})
}

func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		c.fail(w, r, "update", err, homePath)
		return
	}
	form, err := dto.ParseWineForm(r.PostForm)
	if err != nil {
		c.fail(w, r, "update", err, homePath)
		return
	}
	if err := c.Wines.Update(r.Context(), id, form); err != nil {
		c.fail(w, r, "update", err, homePath)
		return
	}
	http.Redirect(w, r, inventoryPath+"/"+id, http.StatusFound)
}

// Delete redirects to the list whether or not the store call worked; a
// failure is only visible in the log.
func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.Wines.Delete(r.Context(), id); err != nil {
		c.fail(w, r, "delete", err, inventoryPath)
		return
	}
	http.Redirect(w, r, inventoryPath, http.StatusFound)
}

func (c *InventoryController) Show(w http.ResponseWriter, r *http.Request) {
	wine, err := c.Wines.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, "show", err, homePath)
		return
	}
	c.render(w, r, views.Show, views.Page{Wine: wine})
}

func (c *InventoryController) render(w http.ResponseWriter, r *http.Request, name string, page views.Page) {
	page.User = middleware.GetUser(r.Context())
	render(w, r, c.Views, c.Log, name, page, homePath)
}

func (c *InventoryController) fail(w http.ResponseWriter, r *http.Request, op string, err error, to string) {
	ev := c.Log.Error()
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrInvalidQuery), errors.Is(err, dto.ErrInvalidQuantity):
		ev = c.Log.Warn()
	default:
		metrics.RecordStoreError(op)
	}
	ev.Err(err).Str("op", op).Str("path", r.URL.Path).Msg("inventory request failed")
	http.Redirect(w, r, to, http.StatusFound)
}
