package api

import (
	"context"
	"net/http"
	"time"

	"github.com/nvillanueva/flightboard/session"
)

const sessionCookieName = "session"

type contextKey string

const sessionTokenKey contextKey = "sessionToken"

// ResolveSession maps the session cookie to a session record, creating a
// fresh unauthenticated session when the cookie is absent, unknown, or
// expired. The session token is placed on the request context; handlers
// read current state from the store at time of use.
func ResolveSession(sessions *session.Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				token = cookie.Value
			}

			sess, created := sessions.GetOrCreate(token)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
				})
			}

			ctx := context.WithValue(r.Context(), sessionTokenKey, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose session is not flagged as admin.
func RequireAdmin(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessions.Get(sessionToken(r))
			if !ok || !sess.IsAdmin {
				writeError(w, http.StatusUnauthorized, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionToken returns the session token resolved by ResolveSession.
func sessionToken(r *http.Request) string {
	token, _ := r.Context().Value(sessionTokenKey).(string)
	return token
}
