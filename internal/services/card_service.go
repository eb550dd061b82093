package services

import (
	"context"
	"strings"

	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/logger"
	"github.com/tcardoso/deckstudy/internal/models"
	"github.com/tcardoso/deckstudy/internal/repository"
)

// UpdateCardInput carries the optional fields of a card update. Nil means
// "leave unchanged".
type UpdateCardInput struct {
	Front *string
	Back  *string
}

// CardService handles card-related business logic. Deck ownership is
// checked on every operation.
type CardService interface {
	CreateCard(ctx context.Context, deckID, profileID int64, front, back string) (*models.Card, error)
	ListCards(ctx context.Context, deckID, profileID int64) ([]models.Card, error)
	UpdateCard(ctx context.Context, id, profileID int64, input UpdateCardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, id, profileID int64) error
}

type cardService struct {
	cardRepo repository.CardRepository
	deckRepo repository.DeckRepository
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, deckRepo repository.DeckRepository) CardService {
	return &cardService{cardRepo: cardRepo, deckRepo: deckRepo}
}

func validateCardSide(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(field, "cannot be empty")
	}
	return nil
}

func (s *cardService) checkDeckOwned(ctx context.Context, deckID, profileID int64) error {
	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		return apperr.Internal(err)
	}
	if deck == nil || deck.ProfileID != profileID {
		return apperr.NotFound("deck", deckID)
	}
	return nil
}

func (s *cardService) CreateCard(ctx context.Context, deckID, profileID int64, front, back string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d", deckID)

	if err := s.checkDeckOwned(ctx, deckID, profileID); err != nil {
		return nil, err
	}
	if err := validateCardSide("front", front); err != nil {
		return nil, err
	}
	if err := validateCardSide("back", back); err != nil {
		return nil, err
	}

	card := models.Card{DeckID: deckID, Front: front, Back: back}
	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, apperr.Internal(err)
	}

	created, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to read back card: %v", err)
		return nil, apperr.Internal(err)
	}
	log.Info("card created: id=%d, deck_id=%d", id, deckID)
	return created, nil
}

func (s *cardService) ListCards(ctx context.Context, deckID, profileID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: deck_id=%d", deckID)

	if err := s.checkDeckOwned(ctx, deckID, profileID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, apperr.Internal(err)
	}
	return cards, nil
}

// getOwned loads a card and verifies the owning deck belongs to the profile.
func (s *cardService) getOwned(ctx context.Context, id, profileID int64) (*models.Card, error) {
	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if card == nil {
		return nil, apperr.NotFound("card", id)
	}
	if err := s.checkDeckOwned(ctx, card.DeckID, profileID); err != nil {
		return nil, apperr.NotFound("card", id)
	}
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id, profileID int64, input UpdateCardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	card, err := s.getOwned(ctx, id, profileID)
	if err != nil {
		return nil, err
	}

	if input.Front != nil {
		if err := validateCardSide("front", *input.Front); err != nil {
			return nil, err
		}
		card.Front = *input.Front
	}
	if input.Back != nil {
		if err := validateCardSide("back", *input.Back); err != nil {
			return nil, err
		}
		card.Back = *input.Back
	}

	if err := s.cardRepo.Update(ctx, *card); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, apperr.Internal(err)
	}

	updated, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to read back card: %v", err)
		return nil, apperr.Internal(err)
	}
	log.Info("card updated: id=%d", id)
	return updated, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	if _, err := s.getOwned(ctx, id, profileID); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return apperr.Internal(err)
	}
	log.Info("card deleted: id=%d", id)
	return nil
}
