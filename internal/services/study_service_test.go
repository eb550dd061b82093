package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/models"
	"github.com/tcardoso/deckstudy/internal/services"
	"github.com/tcardoso/deckstudy/internal/study"
	"github.com/tcardoso/deckstudy/internal/testutil/mocks"
)

var testStudyCfg = study.Config{
	FlipDelay:    5 * time.Millisecond,
	AdvanceDelay: 15 * time.Millisecond,
	TickInterval: 10 * time.Millisecond,
}

func newStudyService(repo *mocks.MockDeckRepository) services.StudyService {
	return services.NewStudyService(repo, testStudyCfg, time.Hour, time.Minute)
}

func deckWithCards(id, profileID int64, n int) *models.DeckWithCards {
	dwc := &models.DeckWithCards{
		Deck: models.Deck{ID: id, ProfileID: profileID, Name: "Capitals"},
	}
	for i := 0; i < n; i++ {
		dwc.Cards = append(dwc.Cards, models.Card{
			ID:     int64(i + 1),
			DeckID: id,
			Front:  "front",
			Back:   "back",
		})
	}
	dwc.CardCount = n
	return dwc
}

func TestOpenSession(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	defer svc.CloseAll()
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 3), nil)

	session, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, session)

	st := session.State()
	assert.Equal(t, study.StatusSetup, st.Status)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, "Capitals", st.Deck.Name)

	got, err := svc.GetSession(ctx, session.ID(), 10)
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestOpenSession_DeckNotFound(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(nil, nil)

	_, err := svc.OpenSession(ctx, 1, 10)
	assertAppError(t, err, apperr.CodeNotFound)
}

func TestOpenSession_EmptyDeck(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 0), nil)

	_, err := svc.OpenSession(ctx, 1, 10)
	assertAppError(t, err, apperr.CodeEmptyDeck)
}

func TestOpenSession_ReplacesExistingForSameDeck(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	defer svc.CloseAll()
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 3), nil)

	first, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)
	first.Start()

	second, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())

	// The replaced session is gone from the registry and fully inert.
	_, err = svc.GetSession(ctx, first.ID(), 10)
	assertAppError(t, err, apperr.CodeNotFound)
	assert.False(t, first.Submit("anything"))

	got, err := svc.GetSession(ctx, second.ID(), 10)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestGetSession_WrongProfile(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	defer svc.CloseAll()
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 3), nil)

	session, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, session.ID(), 99)
	assertAppError(t, err, apperr.CodeNotFound)
}

func TestGetSession_UnknownID(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)

	_, err := svc.GetSession(context.Background(), uuid.New(), 10)
	assertAppError(t, err, apperr.CodeNotFound)
}

func TestDiscardSession(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 3), nil)

	session, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)
	session.Start()

	err = svc.DiscardSession(ctx, session.ID(), 10)
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, session.ID(), 10)
	assertAppError(t, err, apperr.CodeNotFound)
	assert.False(t, session.Submit("anything"))

	// A new session for the same deck can open after the discard.
	again, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)
	assert.NotEqual(t, session.ID(), again.ID())
	svc.CloseAll()
}

func TestDiscardSession_WrongProfile(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	defer svc.CloseAll()
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 3), nil)

	session, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)

	err = svc.DiscardSession(ctx, session.ID(), 99)
	assertAppError(t, err, apperr.CodeNotFound)

	// Still reachable by its owner.
	_, err = svc.GetSession(ctx, session.ID(), 10)
	require.NoError(t, err)
}

func TestRunJanitor_EvictsIdleSessions(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := services.NewStudyService(repo, testStudyCfg, 30*time.Millisecond, 10*time.Millisecond)
	defer svc.CloseAll()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 3), nil)

	session, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)

	go svc.RunJanitor(ctx)

	require.Eventually(t, func() bool {
		_, err := svc.GetSession(ctx, session.ID(), 10)
		return err != nil
	}, time.Second, 5*time.Millisecond, "idle session is eventually evicted")
	assert.False(t, session.Submit("anything"))
}

func TestCloseAll(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := newStudyService(repo)
	ctx := context.Background()

	repo.On("GetWithCards", ctx, int64(1), int64(10)).Return(deckWithCards(1, 10, 3), nil)
	repo.On("GetWithCards", ctx, int64(2), int64(10)).Return(deckWithCards(2, 10, 3), nil)

	first, err := svc.OpenSession(ctx, 1, 10)
	require.NoError(t, err)
	second, err := svc.OpenSession(ctx, 2, 10)
	require.NoError(t, err)
	first.Start()
	second.Start()

	svc.CloseAll()

	_, err = svc.GetSession(ctx, first.ID(), 10)
	assertAppError(t, err, apperr.CodeNotFound)
	assert.False(t, first.Submit("x"))
	assert.False(t, second.Submit("x"))
}
