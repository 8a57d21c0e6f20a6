package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"clubhub/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const (
	identityContextKey contextKey = "identity"
	tokenContextKey    contextKey = "token"
)

const sessionCookieName = "clubhub_session"

// SecureCookies controls the Secure flag on session cookies. Enabled in
// production by the mux constructor.
var SecureCookies = false

// Resolver turns a session token into an identity snapshot. A failure
// means "not logged in", never a hard error.
type Resolver func(ctx context.Context, token string) (session.Snapshot, error)

// Auth returns middleware that resolves the session cookie into an
// identity on the request context. It does NOT block unauthenticated
// requests — use RequireAuth or RequireRole for that.
func Auth(resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if snap, err := resolve(r.Context(), cookie.Value); err == nil {
					ctx := context.WithValue(r.Context(), identityContextKey, snap)
					ctx = context.WithValue(ctx, tokenContextKey, cookie.Value)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that blocks unauthenticated requests.
// API paths get a 401; everything else is sent to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			reject(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns middleware that blocks requests from identities
// without one of the specified roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap, ok := IdentityFromContext(r.Context())
			if !ok {
				reject(w, r)
				return
			}
			if !roleSet[snap.Role] {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// IdentityFromContext extracts the resolved identity from the request
// context.
func IdentityFromContext(ctx context.Context) (session.Snapshot, bool) {
	snap, ok := ctx.Value(identityContextKey).(session.Snapshot)
	return snap, ok
}

// TokenFromContext extracts the session token from the request context.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

// ContextWithIdentity returns a context with the given identity set.
// Intended for use in tests.
func ContextWithIdentity(ctx context.Context, snap session.Snapshot) context.Context {
	return context.WithValue(ctx, identityContextKey, snap)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(session.Lifetime.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// GenerateToken returns a new random session token.
func GenerateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("session token entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}
