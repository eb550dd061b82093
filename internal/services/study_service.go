package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/logger"
	"github.com/tcardoso/deckstudy/internal/repository"
	"github.com/tcardoso/deckstudy/internal/study"
)

// StudyService owns the in-memory registry of live study sessions. A
// session is created when a profile opens a non-empty deck for study and
// discarded on exit, replacement or idle eviction; session results are
// never written back to storage.
type StudyService interface {
	OpenSession(ctx context.Context, deckID, profileID int64) (*study.Session, error)
	GetSession(ctx context.Context, id uuid.UUID, profileID int64) (*study.Session, error)
	DiscardSession(ctx context.Context, id uuid.UUID, profileID int64) error
	// RunJanitor sweeps idle sessions until the context is cancelled.
	// Intended to run as a goroutine for the life of the process.
	RunJanitor(ctx context.Context)
	// CloseAll tears down every live session; used on shutdown so no
	// timer keeps ticking after disposal.
	CloseAll()
}

type sessionEntry struct {
	session   *study.Session
	profileID int64
	deckID    int64
}

type deckKey struct {
	profileID int64
	deckID    int64
}

type studyService struct {
	deckRepo        repository.DeckRepository
	cfg             study.Config
	idleTimeout     time.Duration
	janitorInterval time.Duration
	log             *logger.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
	byDeck   map[deckKey]uuid.UUID
}

// NewStudyService creates a new StudyService
func NewStudyService(deckRepo repository.DeckRepository, cfg study.Config, idleTimeout, janitorInterval time.Duration) StudyService {
	return &studyService{
		deckRepo:        deckRepo,
		cfg:             cfg,
		idleTimeout:     idleTimeout,
		janitorInterval: janitorInterval,
		log:             logger.Default().WithPrefix("study-registry"),
		sessions:        make(map[uuid.UUID]*sessionEntry),
		byDeck:          make(map[deckKey]uuid.UUID),
	}
}

func (s *studyService) OpenSession(ctx context.Context, deckID, profileID int64) (*study.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("opening study session: deck_id=%d, profile_id=%d", deckID, profileID)

	deck, err := s.deckRepo.GetWithCards(ctx, deckID, profileID)
	if err != nil {
		log.Error("failed to fetch deck with cards: %v", err)
		return nil, apperr.Internal(err)
	}
	if deck == nil {
		return nil, apperr.NotFound("deck", deckID)
	}
	if len(deck.Cards) == 0 {
		// The session core is never instantiated over an empty deck; the
		// caller renders an "add cards first" flow instead.
		return nil, apperr.EmptyDeck(deckID)
	}

	info := study.DeckInfo{
		ID:          deck.ID,
		Name:        deck.Name,
		Description: deck.Description,
	}
	session, err := study.NewSession(info, deck.Cards, s.cfg)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-entering study for a deck starts over: any previous session for
	// the same deck and profile is torn down and replaced.
	key := deckKey{profileID: profileID, deckID: deckID}
	if oldID, ok := s.byDeck[key]; ok {
		if old, ok := s.sessions[oldID]; ok {
			old.session.Close()
			delete(s.sessions, oldID)
		}
		delete(s.byDeck, key)
		log.Debug("replaced existing study session: deck_id=%d", deckID)
	}

	s.sessions[session.ID()] = &sessionEntry{session: session, profileID: profileID, deckID: deckID}
	s.byDeck[key] = session.ID()
	log.Info("study session opened: id=%s, deck_id=%d, cards=%d", session.ID(), deckID, len(deck.Cards))
	return session, nil
}

func (s *studyService) GetSession(ctx context.Context, id uuid.UUID, profileID int64) (*study.Session, error) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok || entry.profileID != profileID {
		return nil, apperr.NotFound("study session", id)
	}
	return entry.session, nil
}

func (s *studyService) DiscardSession(ctx context.Context, id uuid.UUID, profileID int64) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || entry.profileID != profileID {
		return apperr.NotFound("study session", id)
	}
	entry.session.Close()
	delete(s.sessions, id)
	delete(s.byDeck, deckKey{profileID: entry.profileID, deckID: entry.deckID})
	log.Info("study session discarded: id=%s", id)
	return nil
}

func (s *studyService) RunJanitor(ctx context.Context) {
	s.log.Debug("janitor started: interval=%s, idle_timeout=%s", s.janitorInterval, s.idleTimeout)
	t := time.NewTicker(s.janitorInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("janitor stopped")
			return
		case <-t.C:
			s.sweep()
		}
	}
}

func (s *studyService) sweep() {
	cutoff := time.Now().Add(-s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		if entry.session.LastEvent().After(cutoff) {
			continue
		}
		entry.session.Close()
		delete(s.sessions, id)
		delete(s.byDeck, deckKey{profileID: entry.profileID, deckID: entry.deckID})
		s.log.Info("evicted idle study session: id=%s", id)
	}
}

func (s *studyService) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		entry.session.Close()
		delete(s.sessions, id)
	}
	s.byDeck = make(map[deckKey]uuid.UUID)
	s.log.Info("all study sessions closed")
}
