package controllers

import (
	"errors"
	"net/http"

	"wine-cellar/backend/app/dto"
	"wine-cellar/backend/app/metrics"
	"wine-cellar/backend/app/services"
	"wine-cellar/backend/app/session"
	"wine-cellar/backend/app/views"

	"github.com/rs/zerolog"
)

const (
	homePath      = "/"
	inventoryPath = "/inventory"
)

type AuthController struct {
	Users    Authenticator
	Sessions *session.Manager
	Views    Renderer
	Log      zerolog.Logger
}

func NewAuthController(users Authenticator, sessions *session.Manager, v Renderer, log zerolog.Logger) *AuthController {
	return &AuthController{Users: users, Sessions: sessions, Views: v, Log: log}
}

// Root sends visitors to the login page.
func (c *AuthController) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Views.Render(w, views.Login, views.Page{}); err != nil {
		c.Log.Error().Err(err).Msg("render login failed")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}
}

// Login checks the submitted credentials. Success starts a fresh session and
// goes to the inventory; any failure goes back to the start page and leaves
// an existing session as it was.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	}
	req := dto.ParseLoginForm(r.PostForm)
	if req.Username == "" || req.Password == "" {
		metrics.RecordLogin("failure")
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	}
	u, err := c.Users.ValidateCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.RecordLogin("failure")
			c.Log.Info().Str("username", req.Username).Msg("login rejected")
		} else {
			metrics.RecordLogin("error")
			c.Log.Error().Err(err).Msg("login lookup failed")
		}
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	}
	if err := c.Sessions.Start(w, r, u.ID); err != nil {
		metrics.RecordLogin("error")
		c.Log.Error().Err(err).Msg("start session failed")
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	}
	metrics.RecordLogin("success")
	c.Log.Info().Str("username", u.Username).Msg("login")
	http.Redirect(w, r, inventoryPath, http.StatusFound)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Sessions.End(w, r); err != nil {
		c.Log.Error().Err(err).Msg("end session failed")
	}
	http.Redirect(w, r, homePath, http.StatusFound)
}
