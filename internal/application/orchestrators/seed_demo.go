package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubhub/internal/domain/announcement"
	"clubhub/internal/domain/club"
	"clubhub/internal/domain/event"
	"clubhub/internal/domain/user"
)

// UserStoreForSeed is the subset of the user store needed by seeding.
type UserStoreForSeed interface {
	Create(ctx context.Context, value user.User) (int64, error)
	Count(ctx context.Context) (int, error)
}

// ClubStoreForSeed is the subset of the club store needed by seeding.
type ClubStoreForSeed interface {
	Create(ctx context.Context, value club.Club) (int64, error)
	SetAdmin(ctx context.Context, clubID int64, adminID int64) error
}

// MembershipAdder appends membership rows.
type MembershipAdder interface {
	Add(ctx context.Context, clubID int64, ref user.Ref, joinedAt time.Time) error
}

// SeedDemoDeps contains the dependencies for ExecuteSeedDemo.
type SeedDemoDeps struct {
	UserStore         UserStoreForSeed
	ClubStore         ClubStoreForSeed
	MembershipStore   MembershipAdder
	AnnouncementStore AnnouncementWriter
	EventStore        EventWriter
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteSeedDemo loads the demo fixture: four directory users, three
// clubs, their memberships, and starter announcements and events. Seeding
// is skipped entirely once any user exists, so restarts never duplicate
// the fixture.
// POST: either the fixture exists or the store already had data
func ExecuteSeedDemo(ctx context.Context, deps SeedDemoDeps) error {
	n, err := deps.UserStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("seed_skipped", "users", n)
		return nil
	}

	users := []user.User{
		{Email: "creator@example.com", Role: user.RoleCreator},
		{Email: "leader@example.com", Role: user.RoleAdmin},
		{Email: "mary@example.com", Role: user.RoleAdmin},
		{Email: "john@example.com", Role: user.RoleMember},
	}
	ids := make([]int64, len(users))
	for i := range users {
		if err := users[i].SetPassword("123"); err != nil {
			return err
		}
		id, err := deps.UserStore.Create(ctx, users[i])
		if err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Email, err)
		}
		ids[i] = id
	}
	leaderID, maryID := ids[1], ids[2]

	clubs := []club.Club{
		{
			Name:        "Robotics Club",
			ImageURL:    "https://placehold.co/400x200?text=Robotics",
			Description: "Build and program robots for regional competitions.",
		},
		{
			Name:        "Art Guild",
			ImageURL:    "https://placehold.co/400x200?text=Art+Guild",
			Description: "Weekly studio sessions, from watercolor to digital art.",
		},
		{
			Name:        "Photography Society",
			ImageURL:    "https://placehold.co/400x200?text=Photography",
			Description: "Photo walks, critique nights, and an annual exhibit.",
		},
	}
	clubIDs := make([]int64, len(clubs))
	for i, c := range clubs {
		id, err := deps.ClubStore.Create(ctx, c)
		if err != nil {
			return fmt.Errorf("seed club %s: %w", c.Name, err)
		}
		clubIDs[i] = id
	}
	roboticsID, artID := clubIDs[0], clubIDs[1]

	now := deps.Now()
	memberships := []struct {
		clubID int64
		ref    user.Ref
	}{
		{roboticsID, user.NumericRef(leaderID)},
		{roboticsID, user.NumericRef(maryID)},
		{artID, user.NumericRef(maryID)},
	}
	for _, m := range memberships {
		if err := deps.MembershipStore.Add(ctx, m.clubID, m.ref, now); err != nil {
			return err
		}
	}
	// Admin seats point into the member lists built above.
	if err := deps.ClubStore.SetAdmin(ctx, roboticsID, leaderID); err != nil {
		return err
	}
	if err := deps.ClubStore.SetAdmin(ctx, artID, maryID); err != nil {
		return err
	}

	announcements := []announcement.Announcement{
		{ClubID: 0, Date: "2025-10-25", Text: "**Welcome to ClubHub!** Browse the club directory and join a club to get started."},
		{ClubID: roboticsID, Date: "2025-10-20", Text: "Kickoff meeting this Friday in Lab 2. Bring your laptops."},
		{ClubID: roboticsID, Date: "2025-10-22", Text: "Parts order arrived. Pick up your servo kits from the storeroom."},
		{ClubID: artID, Date: "2025-10-21", Text: "Studio night moves to Thursdays starting next week."},
	}
	for _, a := range announcements {
		a.ID = deps.GenerateID()
		a.CreatedAt = now
		if err := deps.AnnouncementStore.Save(ctx, a); err != nil {
			return err
		}
	}

	events := []event.Event{
		{ClubID: 0, Title: "Student Orientation", Date: "2025-10-26", Description: "Campus-wide orientation for all new members."},
		{ClubID: roboticsID, Title: "Line-Follower Derby", Date: "2025-11-15", Description: "Intramural line-follower race, Lab 2."},
		{ClubID: artID, Title: "Autumn Exhibit", Date: "2025-11-20", Description: "Member works on display in the main hall."},
	}
	for _, e := range events {
		e.ID = deps.GenerateID()
		e.CreatedAt = now
		if err := deps.EventStore.Save(ctx, e); err != nil {
			return err
		}
	}

	slog.Info("seed_completed", "users", len(users), "clubs", len(clubs))
	return nil
}
