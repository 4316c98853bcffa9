package models

import "time"

// JoinableKind distinguishes the two request-to-join record types.
type JoinableKind string

const (
	KindApplication JoinableKind = "application"
	KindInvitation  JoinableKind = "invitation"
)

type JoinableStatus string

const (
	JoinableStatusPending  JoinableStatus = "pending"
	JoinableStatusAccepted JoinableStatus = "accepted"
	JoinableStatusDeclined JoinableStatus = "declined"
)

func (s JoinableStatus) Valid() bool {
	switch s {
	case JoinableStatusPending, JoinableStatusAccepted, JoinableStatusDeclined:
		return true
	}
	return false
}

// JoinableEvent is an Application (player-initiated) or an Invitation
// (team-initiated, CreatedByID set to the inviting player).
type JoinableEvent struct {
	ID          int            `json:"id" db:"id"`
	Kind        JoinableKind   `json:"-" db:"-"`
	PlayerID    int            `json:"player" db:"player_id"`
	TeamID      int            `json:"team" db:"team_id"`
	CreatedByID *int           `json:"created_by,omitempty" db:"created_by_id"`
	Status      JoinableStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created" db:"created_at"`
	UpdatedAt   time.Time      `json:"modified" db:"updated_at"`

	Player *PlayerSummary `json:"-" db:"-"`
	Team   *TeamSummary   `json:"-" db:"-"`
}

// JoinableFilter is the visibility predicate for joinable events.
// MatchNone wins over every other field.
type JoinableFilter struct {
	TeamID    *int
	PlayerID  *int
	MatchNone bool
}

func (f JoinableFilter) Matches(e JoinableEvent) bool {
	if f.MatchNone {
		return false
	}
	if f.TeamID != nil && e.TeamID != *f.TeamID {
		return false
	}
	if f.PlayerID != nil && e.PlayerID != *f.PlayerID {
		return false
	}
	return true
}

// Apply returns the events of items visible under f, preserving order.
func (f JoinableFilter) Apply(items []JoinableEvent) []JoinableEvent {
	out := make([]JoinableEvent, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
