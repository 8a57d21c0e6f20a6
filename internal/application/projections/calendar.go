package projections

import (
	"context"
	"time"

	"clubhub/internal/domain/event"
)

// EventLister lists every stored event, for calendar markers.
type EventLister interface {
	ListAll(ctx context.Context) ([]event.Event, error)
}

// CalendarDay is one cell in the month grid. Day 0 marks a padding cell
// outside the month.
type CalendarDay struct {
	Day    int
	Today  bool
	Events []event.Event
}

// CalendarMonth is a 6-week month grid, weeks starting on Sunday.
type CalendarMonth struct {
	Year  int
	Month time.Month
	Label string // e.g. "October 2025"
	Weeks [6][7]CalendarDay
}

// CalendarDeps contains the dependencies for QueryCalendarMonth.
type CalendarDeps struct {
	EventStore EventLister
	Now        func() time.Time
}

// QueryCalendarMonth builds the month grid with per-day event markers and
// a today flag.
// PRE: month is a valid time.Month
// POST: every stored event dated inside the month appears on its day
func QueryCalendarMonth(ctx context.Context, year int, month time.Month, deps CalendarDeps) (CalendarMonth, error) {
	all, err := deps.EventStore.ListAll(ctx)
	if err != nil {
		return CalendarMonth{}, err
	}
	byDay := make(map[string][]event.Event, len(all))
	for _, e := range all {
		byDay[e.Date] = append(byDay[e.Date], e)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday()) // Sunday-first grid

	now := deps.Now()
	today := 0
	if now.Year() == year && now.Month() == month {
		today = now.Day()
	}

	cm := CalendarMonth{
		Year:  year,
		Month: month,
		Label: first.Format("January 2006"),
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := offset + day - 1
		week, col := cell/7, cell%7
		if week >= len(cm.Weeks) {
			// A 6-row grid holds any month regardless of starting weekday.
			break
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(event.DateLayout)
		cm.Weeks[week][col] = CalendarDay{
			Day:    day,
			Today:  day == today,
			Events: byDay[date],
		}
	}
	return cm, nil
}
