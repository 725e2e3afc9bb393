package auth

import (
	"net/http"
)

// Middleware injects the model into the request context so handlers can
// read its configuration with ModelFromContext.
func (m *Model) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithModel(r.Context(), m)))
	})
}

// RequireModel responds 500 when no model was injected upstream.
func RequireModel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ModelFromContext(r.Context()); !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}
