package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CaptainID int       `json:"captain" db:"captain_id"`
	LogoURL   *string   `json:"logo_url,omitempty" db:"logo_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Members []TeamMember `json:"team_members,omitempty" db:"-"`
}

// TeamSummary is the nested team representation used by read-only views.
type TeamSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Captain int    `json:"captain"`
}

// TeamMember is a player's membership of a team. Team and player never
// change after creation; only the position may be edited, by the captain.
type TeamMember struct {
	ID         int       `json:"id" db:"id"`
	PlayerID   int       `json:"player" db:"player_id"`
	TeamID     int       `json:"team" db:"team_id"`
	PositionID *int      `json:"position" db:"position_id"`
	CreatedAt  time.Time `json:"created" db:"created_at"`

	Team *Team `json:"-" db:"-"`
}

// MembershipFilter narrows membership listings. Nil fields are not applied.
type MembershipFilter struct {
	PlayerID *int
	TeamID   *int
}

func (f MembershipFilter) Matches(m TeamMember) bool {
	if f.PlayerID != nil && m.PlayerID != *f.PlayerID {
		return false
	}
	if f.TeamID != nil && m.TeamID != *f.TeamID {
		return false
	}
	return true
}

// MembershipRemoval records who removed a membership.
type MembershipRemoval struct {
	ID                int       `json:"id" db:"id"`
	MembershipID      int       `json:"membership" db:"membership_id"`
	TeamID            int       `json:"team" db:"team_id"`
	PlayerID          int       `json:"player" db:"player_id"`
	RemovedByPlayerID *int      `json:"removed_by" db:"removed_by_player_id"`
	RemovedAt         time.Time `json:"removed_at" db:"removed_at"`
}
