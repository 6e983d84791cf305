package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/campusrfid/ledger/internal/models"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "session"

const loginPath = "/login"

type contextKey string

const sessionKey contextKey = "session"

// SessionValidator resolves a raw token into a live session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.Session, error)
}

// Authenticator binds the caller's session to the request context.
type Authenticator struct {
	sessions SessionValidator
}

func NewAuthenticator(sessions SessionValidator) *Authenticator {
	return &Authenticator{sessions: sessions}
}

// RequireSession sends callers without a valid session back to the login view.
func (a *Authenticator) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		session, err := a.sessions.ValidateSession(r.Context(), token)
		if err != nil {
			log.Printf("[AUTH] Rejected session on %s: %v", r.URL.Path, err)
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireRole only lets sessions holding one of roles through. Everyone else
// is redirected to the login view.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			if _, ok := allowed[session.Role]; !ok {
				log.Printf("[AUTH] Account %d (%s) denied %s", session.AccountID, session.Role, r.URL.Path)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromRequest reads the bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok && session != nil
}
