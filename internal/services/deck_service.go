package services

import (
	"context"
	"strings"

	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/logger"
	"github.com/tcardoso/deckstudy/internal/models"
	"github.com/tcardoso/deckstudy/internal/repository"
)

const (
	maxDeckNameLen        = 255
	maxDeckDescriptionLen = 1000
)

// UpdateDeckInput carries the optional fields of a deck update. Nil means
// "leave unchanged".
type UpdateDeckInput struct {
	Name        *string
	Description *string
}

// DeckService handles deck-related business logic. Every operation is
// scoped to the owning profile; decks belonging to other profiles are
// reported as not found.
type DeckService interface {
	CreateDeck(ctx context.Context, profileID int64, name, description string) (*models.Deck, error)
	GetDeck(ctx context.Context, id, profileID int64) (*models.Deck, error)
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, int, error)
	UpdateDeck(ctx context.Context, id, profileID int64, input UpdateDeckInput) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id, profileID int64) error
}

type deckService struct {
	deckRepo repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository) DeckService {
	return &deckService{deckRepo: deckRepo}
}

func validateDeckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name", "cannot be empty")
	}
	if len(name) > maxDeckNameLen {
		return apperr.Validation("name", "must be at most 255 characters")
	}
	return nil
}

func validateDeckDescription(description string) error {
	if len(description) > maxDeckDescriptionLen {
		return apperr.Validation("description", "must be at most 1000 characters")
	}
	return nil
}

func (s *deckService) CreateDeck(ctx context.Context, profileID int64, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: profile_id=%d, name=%s", profileID, name)

	if err := validateDeckName(name); err != nil {
		return nil, err
	}
	if err := validateDeckDescription(description); err != nil {
		return nil, err
	}

	deck := models.Deck{
		ProfileID:   profileID,
		Name:        strings.TrimSpace(name),
		Description: description,
	}
	id, err := s.deckRepo.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, apperr.Internal(err)
	}

	created, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to read back deck: %v", err)
		return nil, apperr.Internal(err)
	}
	log.Info("deck created: id=%d, name=%s", id, created.Name)
	return created, nil
}

// getOwned loads a deck and enforces ownership; other profiles' decks are
// indistinguishable from missing ones.
func (s *deckService) getOwned(ctx context.Context, id, profileID int64) (*models.Deck, error) {
	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if deck == nil || deck.ProfileID != profileID {
		return nil, apperr.NotFound("deck", id)
	}
	return deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id, profileID int64) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%d, profile_id=%d", id, profileID)
	return s.getOwned(ctx, id, profileID)
}

func (s *deckService) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: profile_id=%d", filter.ProfileID)

	decks, err := s.deckRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	total, err := s.deckRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count decks: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return decks, total, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id, profileID int64, input UpdateDeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: id=%d, profile_id=%d", id, profileID)

	deck, err := s.getOwned(ctx, id, profileID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validateDeckName(*input.Name); err != nil {
			return nil, err
		}
		deck.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		if err := validateDeckDescription(*input.Description); err != nil {
			return nil, err
		}
		deck.Description = *input.Description
	}

	if err := s.deckRepo.Update(ctx, *deck); err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, apperr.Internal(err)
	}

	updated, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to read back deck: %v", err)
		return nil, apperr.Internal(err)
	}
	log.Info("deck updated: id=%d", id)
	return updated, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d, profile_id=%d", id, profileID)

	if _, err := s.getOwned(ctx, id, profileID); err != nil {
		return err
	}
	if err := s.deckRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return apperr.Internal(err)
	}
	log.Info("deck deleted: id=%d", id)
	return nil
}
