package study

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tcardoso/deckstudy/internal/logger"
	"github.com/tcardoso/deckstudy/internal/models"
)

// Status is the lifecycle state of a study session.
type Status string

const (
	StatusSetup     Status = "setup"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Face is the side of the current card being shown.
type Face string

const (
	FaceFront Face = "front"
	FaceBack  Face = "back"
)

// Config holds the timing parameters of a session. The delays are UX
// parameters, not correctness constraints, but every card in a session
// sees the same values.
type Config struct {
	// FlipDelay is how long after a submission the card face flips to back.
	FlipDelay time.Duration
	// AdvanceDelay is how long after a submission the session moves to the
	// next card. Measured from the submission, so it must exceed FlipDelay.
	AdvanceDelay time.Duration
	// TickInterval is the timer resolution. One tick adds one elapsed
	// second regardless of the interval, which lets tests run fast.
	TickInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.FlipDelay <= 0 {
		c.FlipDelay = 300 * time.Millisecond
	}
	if c.AdvanceDelay <= 0 {
		c.AdvanceDelay = 2500 * time.Millisecond
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	return c
}

// DeckInfo is the immutable deck snapshot captured when a session opens.
type DeckInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Feedback is the verdict shown while the card back is visible.
type Feedback struct {
	Correct bool `json:"correct"`
}

// Session is one in-memory study attempt over a deck's cards. Nothing a
// session does is ever written back to storage: it is created when a
// profile opens a non-empty deck for study and discarded on exit,
// navigation away, or completion acknowledgment.
//
// All transitions are applied atomically under one mutex. Out-of-order
// events (resume while active, submit while feedback is showing, and so
// on) are silently ignored rather than raising errors.
type Session struct {
	mu   sync.Mutex
	id   uuid.UUID
	deck DeckInfo
	// cards is the deck's full card set at open time; sequence is the
	// per-attempt permutation of it produced by the sequencer.
	cards    []models.Card
	sequence []models.Card
	cfg      Config
	log      *logger.Logger

	status        Status
	cursor        int
	face          Face
	feedback      *Feedback
	answered      int
	correct       int
	elapsed       int
	exitRequested bool

	// epoch invalidates scheduled one-shots: every reset bumps it, and a
	// flip/advance callback that wakes up with a stale epoch is a no-op.
	epoch        uint64
	tickStop     chan struct{}
	flipTimer    *time.Timer
	advanceTimer *time.Timer
	closed       bool
	lastEvent    time.Time
}

// State is a consistent snapshot of a session for rendering.
type State struct {
	ID            uuid.UUID
	Deck          DeckInfo
	Status        Status
	Cursor        int
	Total         int
	Face          Face
	Card          *models.Card
	Feedback      *Feedback
	Answered      int
	Correct       int
	Elapsed       int
	ExitRequested bool
	Accuracy      int
	Tier          Tier
}

// NewSession creates a session in the setup state over the given deck
// snapshot and card set. Returns ErrEmptyDeck for a deck with no cards;
// an empty sequence must never reach the active state.
func NewSession(deck DeckInfo, cards []models.Card, cfg Config) (*Session, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	id := uuid.New()
	owned := make([]models.Card, len(cards))
	copy(owned, cards)
	return &Session{
		id:        id,
		deck:      deck,
		cards:     owned,
		cfg:       cfg.withDefaults(),
		log:       logger.Default().WithPrefix("study").WithField("session_id", id.String()),
		status:    StatusSetup,
		face:      FaceFront,
		lastEvent: time.Now(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Deck returns the deck snapshot the session was opened with.
func (s *Session) Deck() DeckInfo {
	return s.deck
}

// Start begins the attempt: shuffles a fresh sequence, zeroes cursor,
// counters and elapsed time, and starts the timer. Ignored outside setup.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.closed || s.status != StatusSetup {
		return
	}
	seq, err := Shuffle(s.cards)
	if err != nil {
		// Unreachable: NewSession rejects empty card sets.
		return
	}
	s.sequence = seq
	s.cursor = 0
	s.answered = 0
	s.correct = 0
	s.elapsed = 0
	s.face = FaceFront
	s.feedback = nil
	s.exitRequested = false
	s.status = StatusActive
	s.startTimerLocked()
	s.log.Debug("session started: cards=%d", len(s.sequence))
}

// Pause freezes the timer without touching cursor, face or counters.
// Ignored unless the session is active.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.closed || s.status != StatusActive {
		return
	}
	s.status = StatusPaused
	s.stopTimerLocked()
	s.log.Debug("session paused: elapsed=%ds", s.elapsed)
}

// Resume restarts the timer exactly where it left off. Ignored unless the
// session is paused.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.closed || s.status != StatusPaused {
		return
	}
	s.status = StatusActive
	s.startTimerLocked()
	s.log.Debug("session resumed: elapsed=%ds", s.elapsed)
}

// Submit evaluates an answer for the current card. Blank (whitespace-only)
// input is a no-op, as is any submission while the session is not active
// or feedback is already showing. Returns true when the answer was
// accepted and evaluated.
//
// An accepted answer schedules two one-shots: the face flip after
// FlipDelay, and the advance to the next card after AdvanceDelay. Both
// are keyed to the current epoch so they can never mutate a session that
// has since been reset or discarded.
func (s *Session) Submit(answer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.closed || s.status != StatusActive || s.feedback != nil {
		return false
	}
	if strings.TrimSpace(answer) == "" {
		return false
	}

	card := s.sequence[s.cursor]
	correct := Evaluate(answer, card.Back)
	s.answered++
	if correct {
		s.correct++
	}
	s.feedback = &Feedback{Correct: correct}

	epoch := s.epoch
	s.flipTimer = time.AfterFunc(s.cfg.FlipDelay, func() { s.flip(epoch) })
	s.advanceTimer = time.AfterFunc(s.cfg.AdvanceDelay, func() { s.advance(epoch) })

	s.log.Debug("answer submitted: card=%d, correct=%t, score=%d/%d", s.cursor, correct, s.correct, s.answered)
	return true
}

func (s *Session) flip(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch || s.feedback == nil {
		return
	}
	s.face = FaceBack
}

func (s *Session) advance(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch || s.feedback == nil {
		return
	}
	s.feedback = nil
	if s.cursor < len(s.sequence)-1 {
		s.cursor++
		s.face = FaceFront
		return
	}
	s.status = StatusCompleted
	s.stopTimerLocked()
	s.log.Info("session completed: score=%d/%d, elapsed=%s", s.correct, s.answered, FormatElapsed(s.elapsed))
}

// RequestExit arms the destructive exit; ConfirmExit must follow before
// anything is discarded. Ignored unless the session is active or paused.
func (s *Session) RequestExit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.closed || (s.status != StatusActive && s.status != StatusPaused) {
		return
	}
	s.exitRequested = true
}

// CancelExit disarms a pending exit request.
func (s *Session) CancelExit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.exitRequested = false
}

// ConfirmExit discards in-progress cursor and counters and returns the
// session to setup. Only fires after RequestExit.
func (s *Session) ConfirmExit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.closed || !s.exitRequested {
		return
	}
	if s.status != StatusActive && s.status != StatusPaused {
		return
	}
	s.resetLocked()
	s.status = StatusSetup
	s.log.Debug("session exited, progress discarded")
}

// StudyAgain restarts the cycle after completion: fresh random order, all
// counters and elapsed time zeroed. Unlike exit it needs no confirmation,
// because a completed attempt has nothing left to lose.
func (s *Session) StudyAgain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.closed || s.status != StatusCompleted {
		return
	}
	s.resetLocked()
	s.sequence, _ = Shuffle(s.cards)
	s.status = StatusSetup
	s.log.Debug("session reset for another attempt")
}

// Close tears the session down: cancels the timer and any scheduled
// one-shots. Every method is a no-op afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.resetLocked()
	s.closed = true
	s.log.Debug("session closed")
}

// resetLocked zeroes all attempt state and invalidates pending timers.
// Callers must hold s.mu.
func (s *Session) resetLocked() {
	s.epoch++
	if s.flipTimer != nil {
		s.flipTimer.Stop()
		s.flipTimer = nil
	}
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
	s.stopTimerLocked()
	s.sequence = nil
	s.cursor = 0
	s.answered = 0
	s.correct = 0
	s.elapsed = 0
	s.face = FaceFront
	s.feedback = nil
	s.exitRequested = false
}

func (s *Session) startTimerLocked() {
	if s.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	s.tickStop = stop
	interval := s.cfg.TickInterval
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				s.tick()
			}
		}
	}()
}

func (s *Session) stopTimerLocked() {
	if s.tickStop == nil {
		return
	}
	close(s.tickStop)
	s.tickStop = nil
}

func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A tick already in flight when the timer stops lands here after the
	// status changed; the active check drops it.
	if s.closed || s.status != StatusActive {
		return
	}
	s.elapsed++
}

func (s *Session) touch() {
	s.lastEvent = time.Now()
}

// LastEvent reports when the session last saw a user-triggered event,
// for idle eviction.
func (s *Session) LastEvent() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEvent
}

// State returns a consistent snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:            s.id,
		Deck:          s.deck,
		Status:        s.status,
		Cursor:        s.cursor,
		Total:         len(s.cards),
		Face:          s.face,
		Answered:      s.answered,
		Correct:       s.correct,
		Elapsed:       s.elapsed,
		ExitRequested: s.exitRequested,
		Accuracy:      Accuracy(s.correct, s.answered),
	}
	if s.feedback != nil {
		f := *s.feedback
		st.Feedback = &f
	}
	if (s.status == StatusActive || s.status == StatusPaused) && s.cursor < len(s.sequence) {
		c := s.sequence[s.cursor]
		st.Card = &c
	}
	if s.status == StatusCompleted {
		st.Tier = TierFor(st.Accuracy)
	}
	return st
}
