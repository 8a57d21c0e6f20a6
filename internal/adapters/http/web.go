package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"clubhub/internal/adapters/email"
	"clubhub/internal/adapters/http/middleware"
	announcementStore "clubhub/internal/adapters/storage/announcement"
	clubStore "clubhub/internal/adapters/storage/club"
	eventStore "clubhub/internal/adapters/storage/event"
	membershipStore "clubhub/internal/adapters/storage/membership"
	paymentStore "clubhub/internal/adapters/storage/payment"
	sessionStore "clubhub/internal/adapters/storage/session"
	themeStore "clubhub/internal/adapters/storage/theme"
	userStore "clubhub/internal/adapters/storage/user"
	"clubhub/internal/application/orchestrators"
	"clubhub/internal/domain/session"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore         userStore.Store
	ClubStore         clubStore.Store
	MembershipStore   membershipStore.Store
	SessionStore      sessionStore.Store
	AnnouncementStore announcementStore.Store
	EventStore        eventStore.Store
	ThemeStore        themeStore.Store
	PaymentStore      paymentStore.Store
}

// loadCSRFKey reads the CSRF secret from CLUBHUB_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLUBHUB_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLUBHUB_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CLUBHUB_ENV") == "production" {
		log.Fatal("CLUBHUB_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key. Set CLUBHUB_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// restoreDeps wires the session-restore use case against the live stores.
func restoreDeps() orchestrators.RestoreDeps {
	return orchestrators.RestoreDeps{
		SessionStore:    stores.SessionStore,
		UserStore:       stores.UserStore,
		MembershipStore: stores.MembershipStore,
		Now:             time.Now,
	}
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	middleware.SecureCookies = os.Getenv("CLUBHUB_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	resolve := func(ctx context.Context, token string) (session.Snapshot, error) {
		return orchestrators.ExecuteRestoreSession(ctx, token, restoreDeps())
	}

	// Apply middleware: RequestLog -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(resolve),
		middleware.RateLimit(limiter),
		middleware.RequestLog,
	)
}
