package main

import (
	"net/http"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.errorLog.Printf("panic: %v", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireSession gates endpoints that need a live directory session. The
// directory verifies the token on its side; the gateway only checks that a
// session exists and is not past expiry.
func (app *application) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := app.store.Get(r.Context())
		if err != nil {
			http.Error(w, "No active session", http.StatusUnauthorized)
			return
		}
		if sess.Expired() {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole additionally checks the session role.
func (app *application) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := app.store.Get(r.Context())
			if err != nil || sess.Expired() {
				http.Error(w, "No active session", http.StatusUnauthorized)
				return
			}
			if sess.Role != role {
				http.Error(w, "Forbidden: requires "+role+" role", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
