package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/infra/cache"
)

type fakeQuizAPI struct {
	mu        sync.Mutex
	today     *entities.TodayQuiz
	sets      map[string]*entities.QuizSet
	patchErrs []error
	patched   []entities.Submission
}

func (f *fakeQuizAPI) GetTodayQuizSet(context.Context) (*entities.TodayQuiz, error) {
	if f.today == nil {
		return nil, errors.New("no today quiz")
	}
	return f.today, nil
}

func (f *fakeQuizAPI) GetQuizSet(_ context.Context, id string) (*entities.QuizSet, error) {
	set, ok := f.sets[id]
	if !ok {
		return nil, errors.New("quiz set not found")
	}
	return set, nil
}

func (f *fakeQuizAPI) PatchQuizResult(_ context.Context, s entities.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.patched = append(f.patched, s)
	if len(f.patchErrs) == 0 {
		return nil
	}
	err := f.patchErrs[0]
	f.patchErrs = f.patchErrs[1:]
	return err
}

func (f *fakeQuizAPI) Patched() []entities.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.Submission(nil), f.patched...)
}

type fakeJournal struct {
	mu    sync.Mutex
	err   error
	plays []*entities.Play
}

func (f *fakeJournal) Record(_ context.Context, p *entities.Play) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays = append(f.plays, p)
	return f.err
}

type fakeCache[T any] struct {
	mu      sync.Mutex
	data    map[string]T
	readErr error
	sets    int
}

func newFakeCache[T any]() *fakeCache[T] {
	return &fakeCache[T]{data: make(map[string]T)}
}

func (f *fakeCache[T]) Get(_ context.Context, key string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var zero T
	if f.readErr != nil {
		return zero, f.readErr
	}
	v, ok := f.data[key]
	if !ok {
		return zero, cache.ErrMiss
	}
	return v, nil
}

func (f *fakeCache[T]) Set(_ context.Context, key string, v T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = v
	f.sets++
	return nil
}

func (f *fakeCache[T]) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

type fakeDocumentAPI struct {
	mu         sync.Mutex
	steps      []*entities.KeyPoints // returned in order, the last one repeats
	getCalls   int
	picks      []int64
	categories []entities.Category
	catCalls   int
}

func (f *fakeDocumentAPI) GetKeyPoints(_ context.Context, documentID int64) (*entities.KeyPoints, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if len(f.steps) == 0 {
		return nil, errors.New("document not found")
	}
	kp := *f.steps[0]
	if len(f.steps) > 1 {
		f.steps = f.steps[1:]
	}
	kp.DocumentID = documentID
	return &kp, nil
}

func (f *fakeDocumentAPI) CreateAIPick(_ context.Context, documentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.picks = append(f.picks, documentID)
	return nil
}

func (f *fakeDocumentAPI) GetCategories(context.Context) ([]entities.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catCalls++
	return f.categories, nil
}

type fakeSubscriptions struct {
	mu      sync.Mutex
	chatIDs []int64
	calls   int
}

func (f *fakeSubscriptions) Subscribe(context.Context, int64) (bool, error)    { return true, nil }
func (f *fakeSubscriptions) Unsubscribe(context.Context, int64) (bool, error)  { return true, nil }
func (f *fakeSubscriptions) IsSubscribed(context.Context, int64) (bool, error) { return true, nil }

func (f *fakeSubscriptions) ListChatIDsBatch(_ context.Context, limit, offset int) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if offset >= len(f.chatIDs) {
		return nil, nil
	}
	end := min(offset+limit, len(f.chatIDs))
	return f.chatIDs[offset:end], nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	fail map[int64]bool
	sent []int64
}

func (f *fakeNotifier) AnnounceTodayQuiz(_ context.Context, chatID int64, _ *entities.TodayQuiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail[chatID] {
		return errors.New("bot was blocked by the user")
	}
	f.sent = append(f.sent, chatID)
	return nil
}
