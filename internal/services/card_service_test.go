package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/models"
	"github.com/tcardoso/deckstudy/internal/services"
	"github.com/tcardoso/deckstudy/internal/testutil/mocks"
)

func newCardService() (services.CardService, *mocks.MockCardRepository, *mocks.MockDeckRepository) {
	cardRepo := new(mocks.MockCardRepository)
	deckRepo := new(mocks.MockDeckRepository)
	return services.NewCardService(cardRepo, deckRepo), cardRepo, deckRepo
}

func TestCreateCard(t *testing.T) {
	svc, cardRepo, deckRepo := newCardService()
	ctx := context.Background()

	deckRepo.On("Get", ctx, int64(1)).
		Return(&models.Deck{ID: 1, ProfileID: 10, Name: "Capitals"}, nil)
	cardRepo.On("Insert", ctx, models.Card{DeckID: 1, Front: "France", Back: "Paris"}).
		Return(int64(7), nil)
	cardRepo.On("Get", ctx, int64(7)).
		Return(&models.Card{ID: 7, DeckID: 1, Front: "France", Back: "Paris"}, nil)

	card, err := svc.CreateCard(ctx, 1, 10, "France", "Paris")
	require.NoError(t, err)
	assert.Equal(t, int64(7), card.ID)
	cardRepo.AssertExpectations(t)
}

func TestCreateCard_EmptySides(t *testing.T) {
	svc, cardRepo, deckRepo := newCardService()
	ctx := context.Background()

	deckRepo.On("Get", ctx, int64(1)).
		Return(&models.Deck{ID: 1, ProfileID: 10, Name: "Capitals"}, nil)

	_, err := svc.CreateCard(ctx, 1, 10, "  ", "Paris")
	assertAppError(t, err, apperr.CodeValidation)

	_, err = svc.CreateCard(ctx, 1, 10, "France", "")
	assertAppError(t, err, apperr.CodeValidation)

	cardRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateCard_DeckNotOwned(t *testing.T) {
	svc, cardRepo, deckRepo := newCardService()
	ctx := context.Background()

	deckRepo.On("Get", ctx, int64(1)).
		Return(&models.Deck{ID: 1, ProfileID: 99, Name: "Someone else's"}, nil)

	_, err := svc.CreateCard(ctx, 1, 10, "France", "Paris")
	assertAppError(t, err, apperr.CodeNotFound)
	cardRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestListCards(t *testing.T) {
	svc, cardRepo, deckRepo := newCardService()
	ctx := context.Background()

	deckRepo.On("Get", ctx, int64(1)).
		Return(&models.Deck{ID: 1, ProfileID: 10, Name: "Capitals"}, nil)
	cardRepo.On("ListByDeck", ctx, int64(1)).
		Return([]models.Card{{ID: 1, Front: "France", Back: "Paris"}}, nil)

	cards, err := svc.ListCards(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestUpdateCard_PartialUpdate(t *testing.T) {
	svc, cardRepo, deckRepo := newCardService()
	ctx := context.Background()

	cardRepo.On("Get", ctx, int64(7)).
		Return(&models.Card{ID: 7, DeckID: 1, Front: "Frnace", Back: "Paris"}, nil)
	deckRepo.On("Get", ctx, int64(1)).
		Return(&models.Deck{ID: 1, ProfileID: 10, Name: "Capitals"}, nil)

	// Only the front changes.
	cardRepo.On("Update", ctx, mock.MatchedBy(func(c models.Card) bool {
		return c.ID == 7 && c.Front == "France" && c.Back == "Paris"
	})).Return(nil)

	front := "France"
	_, err := svc.UpdateCard(ctx, 7, 10, services.UpdateCardInput{Front: &front})
	require.NoError(t, err)
	cardRepo.AssertExpectations(t)
}

func TestUpdateCard_NotOwned(t *testing.T) {
	svc, cardRepo, deckRepo := newCardService()
	ctx := context.Background()

	cardRepo.On("Get", ctx, int64(7)).
		Return(&models.Card{ID: 7, DeckID: 1, Front: "France", Back: "Paris"}, nil)
	deckRepo.On("Get", ctx, int64(1)).
		Return(&models.Deck{ID: 1, ProfileID: 99, Name: "Not yours"}, nil)

	front := "New"
	_, err := svc.UpdateCard(ctx, 7, 10, services.UpdateCardInput{Front: &front})
	assertAppError(t, err, apperr.CodeNotFound)
	cardRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteCard(t *testing.T) {
	svc, cardRepo, deckRepo := newCardService()
	ctx := context.Background()

	cardRepo.On("Get", ctx, int64(7)).
		Return(&models.Card{ID: 7, DeckID: 1, Front: "France", Back: "Paris"}, nil)
	deckRepo.On("Get", ctx, int64(1)).
		Return(&models.Deck{ID: 1, ProfileID: 10, Name: "Capitals"}, nil)
	cardRepo.On("Delete", ctx, int64(7)).Return(nil)

	err := svc.DeleteCard(ctx, 7, 10)
	require.NoError(t, err)
	cardRepo.AssertExpectations(t)
}

func TestDeleteCard_Missing(t *testing.T) {
	svc, cardRepo, _ := newCardService()
	ctx := context.Background()

	cardRepo.On("Get", ctx, int64(7)).Return(nil, nil)

	err := svc.DeleteCard(ctx, 7, 10)
	assertAppError(t, err, apperr.CodeNotFound)
}
