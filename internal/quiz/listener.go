package quiz

import (
	"context"
	"time"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

// Phase is the session-level state.
type Phase string

const (
	PhaseIntro   Phase = "intro"
	PhaseSolving Phase = "solving"
	PhaseEnded   Phase = "ended"
)

// Progress is the sub-state of the current question while solving.
type Progress string

const (
	ProgressIdle     Progress = "idle"
	ProgressChosen   Progress = "chosen"
	ProgressRevealed Progress = "revealed"
)

// Submitter delivers the results of a finished quiz set.
type Submitter interface {
	Submit(ctx context.Context, s entities.Submission) error
}

// SubmitFunc adapts a function to Submitter.
type SubmitFunc func(ctx context.Context, s entities.Submission) error

func (f SubmitFunc) Submit(ctx context.Context, s entities.Submission) error {
	return f(ctx, s)
}

// Listener observes session transitions. Callbacks run outside the session
// lock and may call Snapshot or Presented, but must not call Close.
type Listener interface {
	OnSolving(s Snapshot)
	OnQuestion(s Snapshot)
	OnChosen(s Snapshot)
	OnRevealed(s Snapshot)
	OnEnded(s Snapshot)
	OnSubmissionFailed(s Snapshot, err error)
}

// NopListener ignores every transition. Embed it to observe only some of them.
type NopListener struct{}

func (NopListener) OnSolving(Snapshot)                 {}
func (NopListener) OnQuestion(Snapshot)                {}
func (NopListener) OnChosen(Snapshot)                  {}
func (NopListener) OnRevealed(Snapshot)                {}
func (NopListener) OnEnded(Snapshot)                   {}
func (NopListener) OnSubmissionFailed(Snapshot, error) {}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	SessionID  string
	Phase      Phase
	Index      int
	Total      int
	Progress   Progress
	Selected   entities.Answer // zero while idle
	Item       entities.QuizItem
	Correct    bool // meaningful once revealed
	Results    []entities.QuestionResult
	Elapsed    time.Duration
	Submitting bool
}

// IsLast reports whether the snapshot is at the last question.
func (s Snapshot) IsLast() bool {
	return s.Index == s.Total-1
}
