package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestSmoke_LoginShowsRole verifies each seeded account lands on the
// signed-in view with its role displayed.
func TestSmoke_LoginShowsRole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)

	accounts := []struct {
		identifier string
		password   string
		wantRole   string
	}{
		{identifier: "creator@example.com", password: "123", wantRole: "Creator"},
		{identifier: "leader@example.com", password: "123", wantRole: "Admin"},
		{identifier: "john@example.com", password: "123", wantRole: "Member"},
	}

	for _, account := range accounts {
		account := account
		t.Run(account.identifier, func(t *testing.T) {
			page := app.newPage(t)
			app.login(t, page, account.identifier, account.password)

			role, err := page.Locator("#role").TextContent()
			if err != nil {
				t.Fatalf("failed to read role: %v", err)
			}
			if role != account.wantRole {
				t.Errorf("expected role %s, got %s", account.wantRole, role)
			}
		})
	}
}

// TestSmoke_QuickAccountLogin verifies the quick-account buttons sign in
// without typing credentials.
func TestSmoke_QuickAccountLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := page.Locator(`button[data-quick="handler"]`).Click(); err != nil {
		t.Fatalf("failed to click quick account: %v", err)
	}
	if err := page.Locator("#role").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("quick login did not reach the signed-in view: %v", err)
	}

	role, err := page.Locator("#role").TextContent()
	if err != nil {
		t.Fatalf("failed to read role: %v", err)
	}
	if role != "Creator" {
		t.Errorf("expected role Creator, got %s", role)
	}
}

// TestSmoke_JoinClub verifies joining a club from the directory shows the
// success notice and flips the card to joined.
func TestSmoke_JoinClub(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page, "john@example.com", "123")

	// Photography Society is seeded as club 3 with no members.
	card := page.Locator(`div.club[data-club-id="3"]`)
	if err := card.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("club card did not appear: %v", err)
	}
	if err := card.Locator("button").Click(); err != nil {
		t.Fatalf("failed to click join: %v", err)
	}

	if err := page.Locator("#notice").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("notice did not appear: %v", err)
	}
	msg, err := page.Locator("#notice").TextContent()
	if err != nil {
		t.Fatalf("failed to read notice: %v", err)
	}
	if !strings.Contains(msg, "Successfully joined the Photography Society!") {
		t.Errorf("unexpected notice: %q", msg)
	}

	badge := page.Locator(`div.club[data-club-id="3"] em`)
	if err := badge.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("joined badge did not appear: %v", err)
	}
}

// TestSmoke_ThemeToggle verifies the theme flips and survives a reload.
func TestSmoke_ThemeToggle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page, "mary@example.com", "123")

	if err := page.Locator("#theme-toggle").Click(); err != nil {
		t.Fatalf("failed to toggle theme: %v", err)
	}
	// The attribute flips once the save round trip completes.
	if err := page.Locator(`body[data-theme="light"]`).WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("theme did not flip to light: %v", err)
	}

	// The saved preference is applied again on reload.
	if _, err := page.Reload(); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if err := page.Locator("#role").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("session did not restore after reload: %v", err)
	}
	theme, err := page.Locator("body").GetAttribute("data-theme")
	if err != nil {
		t.Fatalf("failed to read theme: %v", err)
	}
	if theme != "light" {
		t.Errorf("expected theme light after reload, got %s", theme)
	}
}
