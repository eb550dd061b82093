package study

import (
	"errors"
	"math/rand"

	"github.com/tcardoso/deckstudy/internal/models"
)

// ErrEmptyDeck is returned when a session or sequence is requested for a
// deck with no cards.
var ErrEmptyDeck = errors.New("deck has no cards")

// Shuffle returns a uniformly-random permutation of the given cards. The
// input slice is never modified, and every invocation produces an
// independent order, so "study again" can simply call it again.
func Shuffle(cards []models.Card) ([]models.Card, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	out := make([]models.Card, len(cards))
	copy(out, cards)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out, nil
}
