package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"clubhub/internal/adapters/http/middleware"
	"clubhub/internal/application/orchestrators"
	"clubhub/internal/application/projections"
	"clubhub/internal/domain/announcement"
	"clubhub/internal/domain/event"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// renderMarkdown converts announcement text to HTML. On a render failure
// the raw text is returned so the board still displays.
func renderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		slog.Warn("markdown_render_failed", "error", err)
		return text
	}
	return buf.String()
}

type announcementPayload struct {
	ID     string `json:"id"`
	ClubID int64  `json:"club_id"`
	Date   string `json:"date"`
	Text   string `json:"text"`
	HTML   string `json:"html"`
}

func announcementsFor(list []announcement.Announcement) []announcementPayload {
	out := make([]announcementPayload, 0, len(list))
	for _, a := range list {
		out = append(out, announcementPayload{
			ID:     a.ID,
			ClubID: a.ClubID,
			Date:   a.Date,
			Text:   a.Text,
			HTML:   renderMarkdown(a.Text),
		})
	}
	return out
}

type eventPayload struct {
	ID          string `json:"id"`
	ClubID      int64  `json:"club_id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func eventsFor(list []event.Event) []eventPayload {
	out := make([]eventPayload, 0, len(list))
	for _, e := range list {
		out = append(out, eventPayload{
			ID:          e.ID,
			ClubID:      e.ClubID,
			Title:       e.Title,
			Date:        e.Date,
			Description: e.Description,
		})
	}
	return out
}

func dashboardDeps() projections.DashboardDeps {
	return projections.DashboardDeps{
		UserStore:         stores.UserStore,
		ClubStore:         stores.ClubStore,
		MembershipStore:   stores.MembershipStore,
		AnnouncementStore: stores.AnnouncementStore,
		EventStore:        stores.EventStore,
	}
}

// handleDashboard returns the role-dependent landing view.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	d, err := projections.QueryDashboard(r.Context(), snap, dashboardDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	out := map[string]any{"role": d.Role}
	switch {
	case d.Creator != nil:
		out["creator"] = map[string]any{
			"total_clubs": d.Creator.TotalClubs,
			"total_users": d.Creator.TotalUsers,
		}
	case d.Admin != nil:
		section := map[string]any{
			"member_count":  d.Admin.MemberCount,
			"event_count":   d.Admin.EventCount,
			"announcements": announcementsFor(d.Admin.Announcements),
		}
		if d.Admin.Club != nil {
			section["club"] = clubFor(*d.Admin.Club, d.Admin.MemberCount, true)
		}
		out["admin"] = section
	case d.Member != nil:
		out["member"] = map[string]any{
			"club_ids":      d.Member.ClubIDs,
			"announcements": announcementsFor(d.Member.Announcements),
			"events":        eventsFor(d.Member.Events),
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// handleProfile returns the account view.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	p, err := projections.QueryProfile(r.Context(), snap, projections.ProfileDeps{ClubStore: stores.ClubStore})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"name":       p.Name,
		"email":      p.Email,
		"role_text":  p.RoleText,
		"club_names": p.ClubNames,
	})
}

// handleListAnnouncements returns a board. ?club=N selects a club board;
// the default is the general board, newest first.
func handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	var (
		list []announcement.Announcement
		err  error
	)
	if raw := r.URL.Query().Get("club"); raw != "" {
		clubID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || clubID <= 0 {
			respondNotice(w, http.StatusBadRequest, "Invalid club id.")
			return
		}
		list, err = stores.AnnouncementStore.ListByClub(r.Context(), clubID)
	} else {
		list, err = stores.AnnouncementStore.ListGeneral(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, announcementsFor(list))
}

// handlePostAnnouncement appends to the general or a club board.
func handlePostAnnouncement(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		ClubID int64  `json:"club_id"`
		Text   string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := orchestrators.ExecutePostAnnouncement(r.Context(), orchestrators.PostAnnouncementInput{
		ClubID: req.ClubID,
		Text:   req.Text,
		Actor:  snap,
	}, orchestrators.PostAnnouncementDeps{
		AnnouncementStore: stores.AnnouncementStore,
		ClubStore:         stores.ClubStore,
		GenerateID:        uuid.NewString,
		Now:               time.Now,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, announcementsFor([]announcement.Announcement{a})[0])
}

// handleListEvents returns the viewer's merged event feed.
func handleListEvents(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	feed, err := projections.QueryEventFeed(r.Context(), snap.Clubs, projections.EventFeedDeps{
		EventStore: stores.EventStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eventsFor(feed))
}

// handlePostEvent appends to the general or a club event sequence.
func handlePostEvent(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		ClubID      int64  `json:"club_id"`
		Title       string `json:"title"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := orchestrators.ExecutePostEvent(r.Context(), orchestrators.PostEventInput{
		ClubID:      req.ClubID,
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Actor:       snap,
	}, orchestrators.PostEventDeps{
		EventStore: stores.EventStore,
		ClubStore:  stores.ClubStore,
		GenerateID: uuid.NewString,
		Now:        time.Now,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, eventsFor([]event.Event{e})[0])
}

// handleCalendar returns the month grid. Defaults to the current month.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1970 || y > 9999 {
			respondNotice(w, http.StatusBadRequest, "Invalid year.")
			return
		}
		year = y
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			respondNotice(w, http.StatusBadRequest, "Invalid month.")
			return
		}
		month = time.Month(m)
	}
	cm, err := projections.QueryCalendarMonth(r.Context(), year, month, projections.CalendarDeps{
		EventStore: stores.EventStore,
		Now:        time.Now,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	type dayPayload struct {
		Day    int            `json:"day"`
		Today  bool           `json:"today"`
		Events []eventPayload `json:"events,omitempty"`
	}
	weeks := make([][]dayPayload, len(cm.Weeks))
	for i, week := range cm.Weeks {
		weeks[i] = make([]dayPayload, len(week))
		for j, day := range week {
			weeks[i][j] = dayPayload{Day: day.Day, Today: day.Today, Events: eventsFor(day.Events)}
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"year":  cm.Year,
		"month": int(cm.Month),
		"label": cm.Label,
		"weeks": weeks,
	})
}
