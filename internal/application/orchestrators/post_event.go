package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"clubhub/internal/domain/event"
	"clubhub/internal/domain/session"
)

// EventWriter persists events.
type EventWriter interface {
	Save(ctx context.Context, value event.Event) error
}

// PostEventInput contains the data needed to post an event.
// ClubID 0 targets the general board.
type PostEventInput struct {
	ClubID      int64
	Title       string
	Date        string // "2006-01-02"
	Description string
	Actor       session.Snapshot
}

// PostEventDeps contains the dependencies for ExecutePostEvent.
type PostEventDeps struct {
	EventStore EventWriter
	ClubStore  ClubReader
	GenerateID func() string
	Now        func() time.Time
}

// ExecutePostEvent appends an event to the general board or a club's board.
// PRE: Actor holds the Creator or Admin role
// POST: the event is persisted with its caller-supplied date
func ExecutePostEvent(ctx context.Context, input PostEventInput, deps PostEventDeps) (event.Event, error) {
	if !canManageMembers(input.Actor) {
		return event.Event{}, ErrForbidden
	}
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Date) == "" ||
		strings.TrimSpace(input.Description) == "" {
		return event.Event{}, ErrMissingInput
	}
	if input.ClubID != 0 {
		if _, err := deps.ClubStore.GetByID(ctx, input.ClubID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return event.Event{}, ErrNotFound
			}
			return event.Event{}, err
		}
	}

	e := event.Event{
		ID:          deps.GenerateID(),
		ClubID:      input.ClubID,
		Title:       input.Title,
		Date:        input.Date,
		Description: input.Description,
		CreatedAt:   deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}
	slog.Info("event_posted", "id", e.ID, "club_id", e.ClubID, "date", e.Date)
	return e, nil
}
