package models

import "time"

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Actor is the caller of a request, resolved once by the authentication
// middleware. The zero value is the anonymous actor.
type Actor struct {
	UserID   int
	PlayerID *int
	IsStaff  bool
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID > 0
}

// IsPlayer reports whether the actor's player identity is playerID.
// Actors without a player identity never match.
func (a Actor) IsPlayer(playerID int) bool {
	return a.PlayerID != nil && *a.PlayerID == playerID
}

// Captains reports whether the actor is the captain of team.
func (a Actor) Captains(team *Team) bool {
	return team != nil && a.IsPlayer(team.CaptainID)
}
