package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "clubhub/internal/adapters/email"
	web "clubhub/internal/adapters/http"
	"clubhub/internal/adapters/storage"
	announcementStore "clubhub/internal/adapters/storage/announcement"
	clubStore "clubhub/internal/adapters/storage/club"
	eventStore "clubhub/internal/adapters/storage/event"
	membershipStore "clubhub/internal/adapters/storage/membership"
	paymentStore "clubhub/internal/adapters/storage/payment"
	sessionStore "clubhub/internal/adapters/storage/session"
	themeStore "clubhub/internal/adapters/storage/theme"
	userStore "clubhub/internal/adapters/storage/user"
	"clubhub/internal/application/orchestrators"

	"github.com/google/uuid"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys, and a busy timeout for concurrent readers
	dbPath := envOrDefault("CLUBHUB_DB", "clubhub.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	log.Println("Database initialized successfully!")

	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		UserStore:         userStore.NewSQLiteStore(timedDB),
		ClubStore:         clubStore.NewSQLiteStore(timedDB),
		MembershipStore:   membershipStore.NewSQLiteStore(timedDB),
		SessionStore:      sessionStore.NewSQLiteStore(timedDB),
		AnnouncementStore: announcementStore.NewSQLiteStore(timedDB),
		EventStore:        eventStore.NewSQLiteStore(timedDB),
		ThemeStore:        themeStore.NewSQLiteStore(timedDB),
		PaymentStore:      paymentStore.NewSQLiteStore(timedDB),
	}

	// Load the demo fixture on an empty database (idempotent)
	seedDeps := orchestrators.SeedDemoDeps{
		UserStore:         stores.UserStore,
		ClubStore:         stores.ClubStore,
		MembershipStore:   stores.MembershipStore,
		AnnouncementStore: stores.AnnouncementStore,
		EventStore:        stores.EventStore,
		GenerateID:        uuid.NewString,
		Now:               time.Now,
	}
	if err := orchestrators.ExecuteSeedDemo(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed demo data: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("CLUBHUB_RESEND_KEY")
	emailFrom := envOrDefault("CLUBHUB_RESEND_FROM", "ClubHub <noreply@clubhub.example>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("CLUBHUB_ENV") == "production" {
			log.Println("WARNING: CLUBHUB_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CLUBHUB_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(envOrDefault("CLUBHUB_STATIC_DIR", "static"), stores)

	addr := envOrDefault("CLUBHUB_ADDR", ":8080")
	log.Printf("ClubHub %s starting on %s (env=%s)", version, addr, envOrDefault("CLUBHUB_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
