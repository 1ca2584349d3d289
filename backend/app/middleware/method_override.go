package middleware

import (
	"net/http"
	"strings"
)

const methodField = "_method"

// MethodOverride lets HTML forms issue PUT and DELETE: a POST carrying
// _method (form field or query) or X-HTTP-Method-Override is re-dispatched
// with that method. Only PUT, PATCH and DELETE are accepted.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.Header.Get("X-HTTP-Method-Override")
			if m == "" {
				m = r.URL.Query().Get(methodField)
			}
			if m == "" && isForm(r) {
				m = r.PostFormValue(methodField)
			}
			switch m = strings.ToUpper(m); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}
