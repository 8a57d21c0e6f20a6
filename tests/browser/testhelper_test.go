package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	web "clubhub/internal/adapters/http"
	"clubhub/internal/adapters/http/middleware"
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
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
}

// newTestApp creates a fully wired app over a temp SQLite DB, seeds the
// demo fixture, and starts an HTTP server plus a headless browser.
// Skips the test when Playwright browsers are not installed.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize test DB: %v", err)
	}

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
		t.Fatalf("failed to seed demo data: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	web.RateLimitPerSecond = 1000

	mux := web.NewMux(filepath.Join(findProjectRoot(t), "static"), stores)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		srv.Close()
		db.Close()
		t.Skipf("playwright unavailable: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		srv.Close()
		db.Close()
		t.Skipf("browser unavailable: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login opens the app and signs in through the login form.
func (a *testApp) login(t *testing.T, page playwright.Page, identifier, password string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := page.Locator("input[name=identifier]").Fill(identifier); err != nil {
		t.Fatalf("failed to fill identifier: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("#login-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.Locator("#role").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not reach the signed-in view: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
