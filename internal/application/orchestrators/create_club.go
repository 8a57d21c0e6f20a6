package orchestrators

import (
	"context"
	"log/slog"

	"clubhub/internal/domain/club"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// ClubCreator persists new clubs.
type ClubCreator interface {
	Create(ctx context.Context, value club.Club) (int64, error)
}

// CreateClubInput contains the data needed to create a club.
type CreateClubInput struct {
	Name        string
	ImageURL    string
	Description string
	Actor       session.Snapshot
}

// CreateClubDeps contains the dependencies for ExecuteCreateClub.
type CreateClubDeps struct {
	ClubStore ClubCreator
}

// ExecuteCreateClub registers a new club with an empty member list and a
// vacant admin seat.
// PRE: Actor holds the Creator role
// POST: the club exists and is listed in the directory
func ExecuteCreateClub(ctx context.Context, input CreateClubInput, deps CreateClubDeps) (club.Club, error) {
	if input.Actor.Role != user.RoleCreator {
		return club.Club{}, ErrForbidden
	}

	c := club.Club{
		Name:        input.Name,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	}
	if err := c.Validate(); err != nil {
		if err == club.ErrEmptyName {
			return club.Club{}, ErrMissingInput
		}
		return club.Club{}, err
	}

	id, err := deps.ClubStore.Create(ctx, c)
	if err != nil {
		return club.Club{}, err
	}
	c.ID = id
	slog.Info("club_created", "club_id", id, "name", c.Name)
	return c, nil
}
