package models

import "time"

type Player struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"-" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlayerSummary is the nested player representation used by read-only views.
type PlayerSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
