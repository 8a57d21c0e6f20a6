package projections

import (
	"context"
	"sort"

	"clubhub/internal/domain/event"
)

// EventReader is the subset of the event store needed by feed queries.
type EventReader interface {
	ListGeneral(ctx context.Context) ([]event.Event, error)
	ListByClub(ctx context.Context, clubID int64) ([]event.Event, error)
}

// EventFeedDeps contains the dependencies for QueryEventFeed.
type EventFeedDeps struct {
	EventStore EventReader
}

// QueryEventFeed merges general events with the given clubs' events and
// sorts the result by date, soonest first. The sort is stable: events on
// the same day keep their insertion order.
// PRE: clubIDs is the viewer's club list, in join order
func QueryEventFeed(ctx context.Context, clubIDs []int64, deps EventFeedDeps) ([]event.Event, error) {
	feed, err := deps.EventStore.ListGeneral(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range clubIDs {
		clubEvents, err := deps.EventStore.ListByClub(ctx, id)
		if err != nil {
			return nil, err
		}
		feed = append(feed, clubEvents...)
	}
	// ISO dates compare correctly as strings.
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date < feed[j].Date
	})
	return feed, nil
}
