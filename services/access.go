package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

// JoinableScope builds the visibility predicate for applications and
// invitations.
//
// team is the resolved `team` query parameter (nil when absent or not
// resolvable) and playerID the parsed `player` parameter. A team only
// narrows the set when the actor captains it; otherwise the parameter is
// ignored and the staff/own-player rules apply.
func JoinableScope(actor models.Actor, team *models.Team, playerID *int) models.JoinableFilter {
	if actor.Captains(team) {
		id := team.ID
		return models.JoinableFilter{TeamID: &id}
	}
	if actor.IsStaff {
		return models.JoinableFilter{PlayerID: playerID}
	}
	if actor.PlayerID == nil {
		return models.JoinableFilter{MatchNone: true}
	}
	id := *actor.PlayerID
	return models.JoinableFilter{PlayerID: &id}
}

// EmailPreferencesScope returns the user the actor may see preferences of;
// nil means every record is visible.
func EmailPreferencesScope(actor models.Actor) *int {
	if !actor.IsAuthenticated() || actor.IsStaff {
		return nil
	}
	id := actor.UserID
	return &id
}

// ListParams are the raw `team` and `player` query parameters.
type ListParams struct {
	Team   string
	Player string
}

// parseID parses an optional id query parameter. An empty value yields nil.
func parseID(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s %q is not a valid id", ErrInvalidFilter, name, raw)
	}
	return &id, nil
}

// lookupTeamParam resolves the `team` parameter. Malformed ids and unknown
// teams resolve to nil without an error.
func lookupTeamParam(ctx context.Context, teams repositories.TeamRepository, raw string) (*models.Team, error) {
	id, err := parseID("team", raw)
	if err != nil || id == nil {
		return nil, nil
	}
	team, err := teams.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team %d: %w", *id, err)
	}
	return team, nil
}
