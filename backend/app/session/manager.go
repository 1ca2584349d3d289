package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	jwtutil "wine-cellar/backend/app/jwt"
)

// Manager ties the store to the browser: it issues, reads and clears the
// signed session cookie.
type Manager struct {
	Store  Store
	Signer *jwtutil.Signer
	Cookie string
	TTL    time.Duration
	Secure bool
}

// Start binds a new session to userID and sets the cookie. Any session the
// request already carried is destroyed first.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, userID uint) error {
	if sid, _, err := m.Resolve(r); err == nil {
		_ = m.Store.Destroy(r.Context(), sid)
	}
	sid, err := m.Store.Create(r.Context(), userID, m.TTL)
	if err != nil {
		return err
	}
	token, err := m.Signer.Sign(sid, userID)
	if err != nil {
		_ = m.Store.Destroy(r.Context(), sid)
		return fmt.Errorf("sign session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.Cookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve returns the live session id and user id carried by r.
// ErrNoSession covers a missing, forged, expired or revoked cookie.
func (m *Manager) Resolve(r *http.Request) (string, uint, error) {
	c, err := r.Cookie(m.Cookie)
	if err != nil || c.Value == "" {
		return "", 0, ErrNoSession
	}
	claims, err := m.Signer.Parse(c.Value)
	if err != nil {
		return "", 0, ErrNoSession
	}
	uid, err := m.Store.Lookup(r.Context(), claims.SessionID)
	if err != nil {
		return "", 0, err
	}
	if uid != claims.UserID {
		return "", 0, ErrNoSession
	}
	return claims.SessionID, uid, nil
}

// End destroys the session carried by r, if any, and expires the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	var err error
	if sid, _, rerr := m.Resolve(r); rerr == nil {
		err = m.Store.Destroy(r.Context(), sid)
	} else if !errors.Is(rerr, ErrNoSession) {
		err = rerr
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.Cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}
