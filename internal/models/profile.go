package models

import "time"

// Profile is a local user of the application. Decks are always owned by
// exactly one profile.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
