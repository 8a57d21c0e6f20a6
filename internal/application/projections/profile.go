package projections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// Profile is the account view: display name, role text, and club names.
type Profile struct {
	Name      string
	Email     string
	RoleText  string // e.g. "Admin (Robotics Club)"
	ClubNames []string
}

// ProfileDeps contains the dependencies for QueryProfile.
type ProfileDeps struct {
	ClubStore ClubReader
}

// QueryProfile assembles the account view for the given identity. The
// display name is the email's local part, matching how members appear in
// club rosters.
func QueryProfile(ctx context.Context, snap session.Snapshot, deps ProfileDeps) (Profile, error) {
	p := Profile{
		Name:     localPart(snap.Email),
		Email:    snap.Email,
		RoleText: snap.Role,
	}

	if snap.Role == user.RoleAdmin && snap.Ref.IsNumeric() {
		c, err := deps.ClubStore.FindByAdmin(ctx, snap.Ref.Numeric())
		switch {
		case err == nil:
			p.RoleText = fmt.Sprintf("%s (%s)", user.RoleAdmin, c.Name)
		case !errors.Is(err, sql.ErrNoRows):
			return Profile{}, err
		}
	}

	for _, id := range snap.Clubs {
		c, err := deps.ClubStore.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return Profile{}, err
		}
		p.ClubNames = append(p.ClubNames, c.Name)
	}
	return p, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
