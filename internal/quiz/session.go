package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aliskhannn/picktoss-bot/internal/clock"
	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

const (
	DefaultIntroDuration = 1500 * time.Millisecond
	DefaultRevealDelay   = 600 * time.Millisecond
)

// Option configures a Session.
type Option func(*Session)

func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithIntroDuration(d time.Duration) Option {
	return func(s *Session) { s.introDuration = d }
}

func WithRevealDelay(d time.Duration) Option {
	return func(s *Session) { s.revealDelay = d }
}

func WithTickResolution(d time.Duration) Option {
	return func(s *Session) { s.tickResolution = d }
}


func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// Session drives one playthrough of a quiz set:
// intro, then idle/chosen/revealed for every question, then the final submission.
type Session struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	id        string
	items     []entities.QuizItem
	submitter Submitter
	listener  Listener
	clock     clock.Clock
	timer     *Timer

	introDuration  time.Duration
	revealDelay    time.Duration
	tickResolution time.Duration

	phase      Phase
	index      int
	progress   Progress
	selected   entities.Answer
	results    []entities.QuestionResult
	pending    *entities.QuestionResult // final result awaiting a successful submission
	submitting bool
	started    bool
	closed     bool

	introTimer  clock.Timer
	revealTimer clock.Timer
}

// New creates a session in the intro phase. The items are copied and never change.
func New(sessionID string, items []entities.QuizItem, submitter Submitter, opts ...Option) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrEmptyQuizSet
	}
	if submitter == nil {
		return nil, ErrNoSubmitter
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrInvalidQuizItem, i, err)
		}
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidQuizItem, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	s := &Session{
		id:             sessionID,
		items:          append([]entities.QuizItem(nil), items...),
		submitter:      submitter,
		listener:       NopListener{},
		clock:          clock.System(),
		introDuration:  DefaultIntroDuration,
		revealDelay:    DefaultRevealDelay,
		tickResolution: DefaultTickResolution,
		phase:          PhaseIntro,
		progress:       ProgressIdle,
		results:        make([]entities.QuestionResult, 0, len(items)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.timer = NewTimer(s.clock, s.tickResolution, nil)

	return s, nil
}

// ID returns the quiz set ID the session reports results for.
func (s *Session) ID() string {
	return s.id
}

// Start schedules the end of the intro. It can be called once.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.started {
		return ErrInvalidTransition
	}

	s.started = true
	s.introTimer = s.clock.AfterFunc(s.introDuration, s.finishIntro)

	return nil
}

func (s *Session) finishIntro() {
	s.mu.Lock()
	if s.closed || s.phase != PhaseIntro {
		s.mu.Unlock()
		return
	}

	s.introTimer = nil
	s.phase = PhaseSolving
	s.progress = ProgressIdle
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(func(l Listener) {
		l.OnSolving(snap)
		l.OnQuestion(snap)
	})
}

// Presented signals that the options of the question at index are on screen.
// It starts the timer for that question; repeated calls are harmless.
func (s *Session) Presented(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.phase != PhaseSolving || s.progress != ProgressIdle || index != s.index {
		return ErrInvalidTransition
	}

	s.timer.Start()
	return nil
}

// SelectAnswer records the answer of the current question and stops its timer.
// Only one selection per question is accepted; later ones are rejected with
// ErrInvalidTransition and change nothing.
func (s *Session) SelectAnswer(a entities.Answer) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.phase != PhaseSolving || s.progress != ProgressIdle {
		s.mu.Unlock()
		return ErrInvalidTransition
	}
	if err := s.items[s.index].Accepts(a); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrInvalidAnswer, err)
	}

	s.timer.Stop()
	s.selected = a
	s.progress = ProgressChosen

	index := s.index
	s.revealTimer = s.clock.AfterFunc(s.revealDelay, func() { s.reveal(index) })
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(func(l Listener) { l.OnChosen(snap) })
	return nil
}

func (s *Session) reveal(index int) {
	s.mu.Lock()
	if s.closed || s.phase != PhaseSolving || s.progress != ProgressChosen || s.index != index {
		s.mu.Unlock()
		return
	}

	s.revealTimer = nil
	s.progress = ProgressRevealed
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(func(l Listener) { l.OnRevealed(snap) })
}

// Next records the revealed question and moves on. After the last question it
// submits all results; the session ends only when the submission succeeds.
// A failed submission returns a *SubmissionError and can be retried with Next.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.phase != PhaseSolving || s.progress != ProgressRevealed || s.submitting {
		s.mu.Unlock()
		return ErrInvalidTransition
	}

	if s.index < len(s.items)-1 {
		s.results = append(s.results, s.resultLocked())
		s.timer.Reset()
		s.index++
		s.progress = ProgressIdle
		s.selected = entities.Answer{}
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.notify(func(l Listener) { l.OnQuestion(snap) })
		return nil
	}

	if s.pending == nil {
		r := s.resultLocked()
		s.pending = &r
		s.timer.Reset()
	}

	submission := entities.Submission{
		QuizSetID: s.id,
		Results:   append(cloneResults(s.results), *s.pending),
	}
	s.submitting = true
	s.mu.Unlock()

	err := s.submitter.Submit(ctx, submission)

	s.mu.Lock()
	s.submitting = false

	if err != nil {
		closed := s.closed
		snap := s.snapshotLocked()
		s.mu.Unlock()

		subErr := &SubmissionError{Err: err, Results: submission.Results}
		if closed {
			return fmt.Errorf("%w: %w", ErrSessionClosed, subErr)
		}

		s.notify(func(l Listener) { l.OnSubmissionFailed(snap, subErr) })
		return subErr
	}

	s.results = append(s.results, *s.pending)
	s.pending = nil
	s.phase = PhaseEnded
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(func(l Listener) { l.OnEnded(snap) })
	return nil
}

// Close tears the session down: pending timed transitions are cancelled and no
// listener callback runs after Close returns. Every later call fails with
// ErrSessionClosed. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.closed = true
	if s.introTimer != nil {
		s.introTimer.Stop()
		s.introTimer = nil
	}
	if s.revealTimer != nil {
		s.revealTimer.Stop()
		s.revealTimer = nil
	}
	s.timer.Stop()
	s.mu.Unlock()

	// Wait for an in-flight notification to finish.
	s.notifyMu.Lock()
	s.notifyMu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	item := s.items[s.index]

	snap := Snapshot{
		SessionID:  s.id,
		Phase:      s.phase,
		Index:      s.index,
		Total:      len(s.items),
		Progress:   s.progress,
		Selected:   s.selected,
		Item:       item,
		Results:    cloneResults(s.results),
		Elapsed:    s.timer.Elapsed(),
		Submitting: s.submitting,
	}
	if s.progress == ProgressRevealed {
		snap.Correct, _ = item.Evaluate(s.selected)
	}

	return snap
}

func (s *Session) resultLocked() entities.QuestionResult {
	item := s.items[s.index]
	correct, _ := item.Evaluate(s.selected)

	return entities.QuestionResult{
		QuizID:        item.ID,
		Correct:       correct,
		ElapsedMillis: s.timer.ElapsedMillis(),
	}
}

func (s *Session) notify(fn func(l Listener)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return
	}
	fn(s.listener)
}

func cloneResults(rs []entities.QuestionResult) []entities.QuestionResult {
	return append([]entities.QuestionResult(nil), rs...)
}
