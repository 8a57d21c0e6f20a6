package web

import (
	"net/http"
	"time"

	"clubhub/internal/adapters/http/middleware"
	"clubhub/internal/application/orchestrators"
	"clubhub/internal/application/projections"
	"clubhub/internal/domain/club"
	"clubhub/internal/domain/user"
)

type clubPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	MemberCount int    `json:"member_count"`
	Joined      bool   `json:"joined"`
}

func clubFor(c club.Club, memberCount int, joined bool) clubPayload {
	return clubPayload{
		ID:          c.ID,
		Name:        c.Name,
		ImageURL:    c.ImageURL,
		Description: c.Description,
		MemberCount: memberCount,
		Joined:      joined,
	}
}

// handleClubDirectory lists every club with the viewer's joined flags.
func handleClubDirectory(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	entries, err := projections.QueryClubDirectory(r.Context(), snap, projections.ClubDirectoryDeps{
		ClubStore:       stores.ClubStore,
		MembershipStore: stores.MembershipStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]clubPayload, 0, len(entries))
	for _, e := range entries {
		out = append(out, clubFor(e.Club, e.MemberCount, e.Joined))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleClubDetail returns one club with its boards rendered.
func handleClubDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondNotice(w, http.StatusBadRequest, "Invalid club id.")
		return
	}
	snap, _ := middleware.IdentityFromContext(r.Context())

	c, err := stores.ClubStore.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, orchestrators.ErrNotFound)
		return
	}
	n, err := stores.MembershipStore.CountByClub(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	joined, err := stores.MembershipStore.Exists(r.Context(), id, snap.Ref)
	if err != nil {
		respondError(w, err)
		return
	}
	anns, err := stores.AnnouncementStore.ListByClub(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	events, err := stores.EventStore.ListByClub(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"club":          clubFor(c, n, joined),
		"announcements": announcementsFor(anns),
		"events":        events,
	})
}

// handleCreateClub registers a new club.
func handleCreateClub(w http.ResponseWriter, r *http.Request) {
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		Name        string `json:"name"`
		ImageURL    string `json:"image_url"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := orchestrators.ExecuteCreateClub(r.Context(), orchestrators.CreateClubInput{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Actor:       snap,
	}, orchestrators.CreateClubDeps{ClubStore: stores.ClubStore})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, clubFor(c, 0, false))
}

// handleJoinClub adds the viewer to a club.
func handleJoinClub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondNotice(w, http.StatusBadRequest, "Invalid club id.")
		return
	}
	snap, _ := middleware.IdentityFromContext(r.Context())
	token, _ := middleware.TokenFromContext(r.Context())

	c, err := orchestrators.ExecuteJoinClub(r.Context(), orchestrators.JoinClubInput{
		ClubID: id,
		Joiner: snap,
		Token:  token,
	}, orchestrators.JoinClubDeps{
		ClubStore:       stores.ClubStore,
		MembershipStore: stores.MembershipStore,
		SessionStore:    stores.SessionStore,
		UserStore:       stores.UserStore,
		EmailSender:     emailSender,
		Now:             time.Now,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondNotice(w, http.StatusOK, "Successfully joined the "+c.Name+"!")
}

// handleRoster returns the member-management view for a club.
func handleRoster(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondNotice(w, http.StatusBadRequest, "Invalid club id.")
		return
	}
	roster, err := projections.QueryRoster(r.Context(), id, projections.RosterDeps{
		ClubStore:       stores.ClubStore,
		MembershipStore: stores.MembershipStore,
		UserStore:       stores.UserStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	type member struct {
		Ref     string `json:"ref"`
		Name    string `json:"name"`
		IsAdmin bool   `json:"is_admin"`
	}
	type pick struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	members := make([]member, 0, len(roster.Members))
	for _, m := range roster.Members {
		members = append(members, member{Ref: m.Ref.String(), Name: m.Name, IsAdmin: m.IsAdmin})
	}
	unassigned := make([]pick, 0, len(roster.Unassigned))
	for _, u := range roster.Unassigned {
		unassigned = append(unassigned, pick{ID: u.ID, Email: u.Email})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"club":       clubFor(roster.Club, len(roster.Members), false),
		"members":    members,
		"unassigned": unassigned,
	})
}

// handleAddMember performs an admin-assisted add.
func handleAddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondNotice(w, http.StatusBadRequest, "Invalid club id.")
		return
	}
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		UserID int64 `json:"user_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := orchestrators.ExecuteAddMember(r.Context(), orchestrators.AddMemberInput{
		ClubID:       id,
		TargetUserID: req.UserID,
		Actor:        snap,
	}, orchestrators.AddMemberDeps{
		UserStore:       stores.UserStore,
		ClubStore:       stores.ClubStore,
		MembershipStore: stores.MembershipStore,
		Now:             time.Now,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondNotice(w, http.StatusOK, "Member added.")
}

// handleRemoveMember removes a member from a club.
func handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondNotice(w, http.StatusBadRequest, "Invalid club id.")
		return
	}
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		Ref string `json:"ref"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Ref == "" {
		respondNotice(w, http.StatusBadRequest, "Missing member ref.")
		return
	}
	err := orchestrators.ExecuteRemoveMember(r.Context(), orchestrators.RemoveMemberInput{
		ClubID: id,
		Member: user.ParseRef(req.Ref),
		Actor:  snap,
	}, orchestrators.RemoveMemberDeps{
		UserStore:       stores.UserStore,
		ClubStore:       stores.ClubStore,
		MembershipStore: stores.MembershipStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondNotice(w, http.StatusOK, "Member removed.")
}

// handleAssignAdmin hands a club's admin seat to a member.
func handleAssignAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondNotice(w, http.StatusBadRequest, "Invalid club id.")
		return
	}
	snap, _ := middleware.IdentityFromContext(r.Context())
	var req struct {
		UserID int64 `json:"user_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := orchestrators.ExecuteAssignAdmin(r.Context(), orchestrators.AssignAdminInput{
		ClubID:       id,
		TargetUserID: req.UserID,
		Actor:        snap,
	}, orchestrators.AssignAdminDeps{
		UserStore:       stores.UserStore,
		ClubStore:       stores.ClubStore,
		MembershipStore: stores.MembershipStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondNotice(w, http.StatusOK, "Admin assigned.")
}
