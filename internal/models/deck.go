package models

import "time"

// Deck is a named collection of cards owned by one profile.
type Deck struct {
	ID          int64     `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckWithCards is a deck together with all of its cards, as read in one
// shot when a study session opens.
type DeckWithCards struct {
	Deck
	Cards []Card `json:"cards"`
}

// DeckFilter narrows and orders deck listings.
type DeckFilter struct {
	ProfileID int64
	Search    string // matches against deck name
	OrderBy   string // "name", "created_at" or "updated_at"
	OrderDir  string // "ASC" or "DESC"
	Limit     int
	Offset    int
}
