package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/checkout"
)

// SessionCookie is the cookie carrying the visitor's session id.
const SessionCookie = "cupcake_session"

type sessionCtxKey struct{}

// Session loads the visitor's checkout session from the store, creating
// one (and setting the cookie) for first-time visitors, and binds it to
// the request context.
func Session(store ports.SessionStore, ttl time.Duration, secure bool, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, fresh := resolveSession(r, store)
			if fresh {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
				if err := store.Save(r.Context(), sess); err != nil {
					logger.Warn("failed to persist new session", zap.Error(err))
				}
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveSession(r *http.Request, store ports.SessionStore) (sess *checkout.Session, fresh bool) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		sess, err := store.Get(r.Context(), cookie.Value)
		if err == nil {
			return sess, false
		}
		if !errors.Is(err, ports.ErrSessionNotFound) {
			// Store trouble; fall through to a fresh session rather
			// than failing the request.
			return checkout.NewSession(cookie.Value, time.Now()), true
		}
	}
	return checkout.NewSession(uuid.New().String(), time.Now()), true
}

// SessionFromContext returns the checkout session bound by the Session
// middleware.
func SessionFromContext(ctx context.Context) (*checkout.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey{}).(*checkout.Session)
	return sess, ok
}
