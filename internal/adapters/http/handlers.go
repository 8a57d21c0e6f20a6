package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"clubhub/internal/adapters/http/middleware"
	"clubhub/internal/application/orchestrators"
	"clubhub/internal/domain/payment"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"

	"github.com/google/uuid"
)

// registerRoutes wires every API route onto the mux.
func registerRoutes(mux *http.ServeMux) {
	manage := middleware.RequireRole(user.RoleCreator, user.RoleAdmin)
	creatorOnly := middleware.RequireRole(user.RoleCreator)

	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("GET /api/quick-accounts", handleQuickAccounts)

	mux.Handle("POST /api/logout", middleware.RequireAuth(http.HandlerFunc(handleLogout)))
	mux.Handle("GET /api/session", middleware.RequireAuth(http.HandlerFunc(handleSession)))
	mux.Handle("GET /api/dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))
	mux.Handle("GET /api/profile", middleware.RequireAuth(http.HandlerFunc(handleProfile)))

	mux.Handle("GET /api/clubs", middleware.RequireAuth(http.HandlerFunc(handleClubDirectory)))
	mux.Handle("GET /api/clubs/{id}", middleware.RequireAuth(http.HandlerFunc(handleClubDetail)))
	mux.Handle("POST /api/clubs/{id}/join", middleware.RequireAuth(http.HandlerFunc(handleJoinClub)))
	mux.Handle("POST /api/clubs", creatorOnly(http.HandlerFunc(handleCreateClub)))

	mux.Handle("GET /api/clubs/{id}/roster", manage(http.HandlerFunc(handleRoster)))
	mux.Handle("POST /api/clubs/{id}/members", manage(http.HandlerFunc(handleAddMember)))
	mux.Handle("POST /api/clubs/{id}/members/remove", manage(http.HandlerFunc(handleRemoveMember)))
	mux.Handle("POST /api/clubs/{id}/admin", manage(http.HandlerFunc(handleAssignAdmin)))

	mux.Handle("GET /api/announcements", middleware.RequireAuth(http.HandlerFunc(handleListAnnouncements)))
	mux.Handle("POST /api/announcements", manage(http.HandlerFunc(handlePostAnnouncement)))
	mux.Handle("GET /api/events", middleware.RequireAuth(http.HandlerFunc(handleListEvents)))
	mux.Handle("POST /api/events", manage(http.HandlerFunc(handlePostEvent)))
	mux.Handle("GET /api/calendar", middleware.RequireAuth(http.HandlerFunc(handleCalendar)))

	mux.Handle("GET /api/theme", middleware.RequireAuth(http.HandlerFunc(handleGetTheme)))
	mux.Handle("PUT /api/theme", middleware.RequireAuth(http.HandlerFunc(handleSetTheme)))
	mux.Handle("POST /api/payments", middleware.RequireAuth(http.HandlerFunc(handlePayment)))
	mux.Handle("GET /api/payments", middleware.RequireAuth(http.HandlerFunc(handleListPayments)))
	mux.Handle("POST /api/payments/{id}/verify", manage(http.HandlerFunc(handleVerifyPayment)))

	mux.Handle("GET /api/users", creatorOnly(http.HandlerFunc(handleListUsers)))
}

// notice is the uniform JSON envelope for command outcomes.
type notice struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err)
	}
}

func respondNotice(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, notice{OK: status < 400, Message: msg})
}

// respondError maps command errors onto one user-facing notice each.
// Unrecognized errors are logged and surfaced as a generic 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrMissingInput):
		respondNotice(w, http.StatusBadRequest, "Please fill in all required fields.")
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		respondNotice(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, orchestrators.ErrAlreadyMember):
		respondNotice(w, http.StatusConflict, "You are already a member of this club!")
	case errors.Is(err, orchestrators.ErrNotMember):
		respondNotice(w, http.StatusConflict, "Not a member of this club.")
	case errors.Is(err, orchestrators.ErrNotFound):
		respondNotice(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, orchestrators.ErrForbidden):
		respondNotice(w, http.StatusForbidden, "You do not have permission to do that.")
	default:
		slog.Error("request_failed", "error", err)
		respondNotice(w, http.StatusInternalServerError, "Something went wrong.")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondNotice(w, http.StatusBadRequest, "Malformed request body.")
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// identityPayload is the session view returned by login and session
// endpoints.
type identityPayload struct {
	Ref   string  `json:"ref"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Clubs []int64 `json:"clubs"`
	Theme string  `json:"theme"`
}

func identityFor(r *http.Request, snap session.Snapshot) identityPayload {
	theme, err := orchestrators.ThemeForOwner(r.Context(), snap, orchestrators.SetThemeDeps{ThemeStore: stores.ThemeStore})
	if err != nil {
		slog.Warn("theme_lookup_failed", "ref", snap.Ref.String(), "error", err)
	}
	clubs := snap.Clubs
	if clubs == nil {
		clubs = []int64{}
	}
	return identityPayload{
		Ref:   snap.Ref.String(),
		Email: snap.Email,
		Role:  snap.Role,
		Clubs: clubs,
		Theme: theme,
	}
}

// handleLogin authenticates and sets the session cookie.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	}, orchestrators.LoginDeps{
		UserStore:       stores.UserStore,
		MembershipStore: stores.MembershipStore,
		SessionStore:    stores.SessionStore,
		GenerateToken:   middleware.GenerateToken,
		Now:             time.Now,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.SetSessionCookie(w, res.Token)
	respondJSON(w, http.StatusOK, identityFor(r, res.Snapshot))
}

// handleQuickAccounts lists the demo credentials shown on the login page.
func handleQuickAccounts(w http.ResponseWriter, _ *http.Request) {
	type qa struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	var out []qa
	for _, a := range orchestrators.QuickAccounts() {
		out = append(out, qa{Username: a.Username, Password: a.Password, Role: a.Role})
	}
	respondJSON(w, http.StatusOK, out)
}

// handleLogout ends the session and clears the cookie.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())
	if err := orchestrators.ExecuteLogout(r.Context(), token, restoreDeps()); err != nil {
		respondError(w, err)
		return
	}
	middleware.ClearSessionCookie(w)
	respondNotice(w, http.StatusOK, "Logged out.")
}

// handleSession returns the restored identity for the current cookie.
func handleSession(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	respondJSON(w, http.StatusOK, identityFor(r, snap))
}

// handleGetTheme returns the saved theme preference.
func handleGetTheme(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	theme, err := orchestrators.ThemeForOwner(r.Context(), snap, orchestrators.SetThemeDeps{ThemeStore: stores.ThemeStore})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// handleSetTheme saves a theme preference.
func handleSetTheme(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		Theme string `json:"theme"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := orchestrators.ExecuteSetTheme(r.Context(), orchestrators.SetThemeInput{
		Theme: req.Theme,
		Owner: snap,
	}, orchestrators.SetThemeDeps{ThemeStore: stores.ThemeStore})
	if err != nil {
		respondNotice(w, http.StatusBadRequest, "Unknown theme.")
		return
	}
	respondNotice(w, http.StatusOK, "Theme saved.")
}

// handlePayment records a mock GCash payment.
func handlePayment(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		Amount string `json:"amount"` // decimal pesos, e.g. "150.00"
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || amount <= 0 {
		respondNotice(w, http.StatusBadRequest, "Please enter a valid amount.")
		return
	}
	p, err := orchestrators.ExecuteProcessPayment(r.Context(), orchestrators.ProcessPaymentInput{
		AmountCents: int64(math.Round(amount * 100)),
		Payer:       snap,
	}, orchestrators.ProcessPaymentDeps{
		PaymentStore: stores.PaymentStore,
		GenerateID:   uuid.NewString,
		Now:          time.Now,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"payment_id": p.ID,
		"status":     p.Status,
		"message":    "Payment submitted for verification.",
	})
}

type paymentPayload struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// handleListPayments returns the viewer's payment history, newest first.
func handleListPayments(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	list, err := stores.PaymentStore.ListByPayer(r.Context(), snap.Ref.String())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]paymentPayload, 0, len(list))
	for _, p := range list {
		out = append(out, paymentPayload{
			ID:          p.ID,
			AmountCents: p.AmountCents,
			Method:      p.Method,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// handleVerifyPayment marks a payment as verified by staff.
func handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	id := r.PathValue("id")
	if id == "" {
		respondNotice(w, http.StatusBadRequest, "Missing payment id.")
		return
	}
	p, err := orchestrators.ExecuteVerifyPayment(r.Context(), orchestrators.VerifyPaymentInput{
		PaymentID: id,
		Actor:     snap,
	}, orchestrators.VerifyPaymentDeps{PaymentStore: stores.PaymentStore})
	if errors.Is(err, payment.ErrNotAwaiting) {
		respondNotice(w, http.StatusConflict, "Payment has already been verified.")
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"id":     p.ID,
		"status": p.Status,
	})
}

// handleListUsers returns the full user directory for platform oversight.
func handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := stores.UserStore.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	type entry struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	out := make([]entry, 0, len(users))
	for _, u := range users {
		out = append(out, entry{ID: u.ID, Email: u.Email, Role: u.Role})
	}
	respondJSON(w, http.StatusOK, out)
}
