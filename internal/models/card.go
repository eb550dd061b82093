package models

import "time"

// Card is a front/back text pair belonging to a deck. Its lifetime is
// bounded by the deck's lifetime: deleting a deck cascades to its cards.
type Card struct {
	ID        int64     `json:"id"`
	DeckID    int64     `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
