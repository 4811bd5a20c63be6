package progresscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	return s.data[key], nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("store down")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("store down")
}

func (brokenStore) Del(context.Context, ...string) error {
	return errors.New("store down")
}

func newTestCache(store Store) *Cache {
	return New(store, zerolog.Nop())
}

func TestRecordAnswerAndReadAll(t *testing.T) {
	cache := newTestCache(newMemStore())
	ctx := context.Background()

	cache.RecordAnswer(ctx, "user-1", "exam-1", 1, "A")
	cache.RecordAnswer(ctx, "user-1", "exam-1", 2, "B")
	cache.RecordAnswer(ctx, "user-1", "exam-1", 1, "C") // overwrite

	state := cache.ReadAll(ctx, "user-1", "exam-1")
	if state.Answers[1] != "C" {
		t.Errorf("answer 1 = %q, want C", state.Answers[1])
	}
	if state.Answers[2] != "B" {
		t.Errorf("answer 2 = %q, want B", state.Answers[2])
	}
	if len(state.Answers) != 2 {
		t.Errorf("answers = %d, want 2", len(state.Answers))
	}
}

func TestStateIsScopedPerExam(t *testing.T) {
	cache := newTestCache(newMemStore())
	ctx := context.Background()

	cache.RecordAnswer(ctx, "user-1", "exam-1", 1, "A")

	other := cache.ReadAll(ctx, "user-1", "exam-2")
	if len(other.Answers) != 0 {
		t.Errorf("exam-2 answers = %d, want 0", len(other.Answers))
	}
}

func TestStateIsScopedPerOwner(t *testing.T) {
	cache := newTestCache(newMemStore())
	ctx := context.Background()

	cache.RecordAnswer(ctx, "user-1", "exam-1", 1, "A")
	cache.ToggleMark(ctx, "user-1", "exam-1", 1)

	// A second user on the same exam starts from nothing.
	other := cache.ReadAll(ctx, "user-2", "exam-1")
	if len(other.Answers) != 0 || len(other.Marked) != 0 {
		t.Errorf("user-2 state = %+v, want empty", other)
	}

	// And their writes never leak back.
	cache.RecordAnswer(ctx, "user-2", "exam-1", 1, "D")
	cache.Clear(ctx, "user-2", "exam-1")

	state := cache.ReadAll(ctx, "user-1", "exam-1")
	if state.Answers[1] != "A" {
		t.Errorf("user-1 answer 1 = %q, want A", state.Answers[1])
	}
	if !state.Marked[1] {
		t.Error("user-1 mark on position 1 should survive user-2 activity")
	}
}

func TestToggleMark(t *testing.T) {
	cache := newTestCache(newMemStore())
	ctx := context.Background()

	cache.ToggleMark(ctx, "user-1", "exam-1", 5)
	if !cache.ReadAll(ctx, "user-1", "exam-1").Marked[5] {
		t.Error("position 5 should be marked")
	}

	cache.ToggleMark(ctx, "user-1", "exam-1", 5)
	if cache.ReadAll(ctx, "user-1", "exam-1").Marked[5] {
		t.Error("second toggle should unmark position 5")
	}
}

func TestClear(t *testing.T) {
	store := newMemStore()
	cache := newTestCache(store)
	ctx := context.Background()

	cache.RecordAnswer(ctx, "user-1", "exam-1", 1, "A")
	cache.StartTime(ctx, "user-1", "exam-1")
	cache.Clear(ctx, "user-1", "exam-1")

	if len(store.data) != 0 {
		t.Errorf("store still holds %d keys after clear", len(store.data))
	}
	if len(cache.ReadAll(ctx, "user-1", "exam-1").Answers) != 0 {
		t.Error("answers should be empty after clear")
	}
}

func TestStartTimeIsStable(t *testing.T) {
	cache := newTestCache(newMemStore())
	ctx := context.Background()

	first := cache.StartTime(ctx, "user-1", "exam-1")
	second := cache.StartTime(ctx, "user-1", "exam-1")
	if !first.Equal(second) {
		t.Errorf("start time changed between reads: %v vs %v", first, second)
	}
}

func TestCorruptStateDegradesToEmpty(t *testing.T) {
	store := newMemStore()
	cache := newTestCache(store)
	ctx := context.Background()

	cache.RecordAnswer(ctx, "user-1", "exam-1", 1, "A")
	for k := range store.data {
		store.data[k] = "{not json"
	}

	state := cache.ReadAll(ctx, "user-1", "exam-1")
	if len(state.Answers) != 0 {
		t.Error("corrupt blob must read as empty state")
	}
}

func TestBrokenStoreDegrades(t *testing.T) {
	cache := newTestCache(brokenStore{})
	ctx := context.Background()

	// Writes are best-effort no-ops.
	cache.RecordAnswer(ctx, "user-1", "exam-1", 1, "A")
	cache.ToggleMark(ctx, "user-1", "exam-1", 1)
	cache.Clear(ctx, "user-1", "exam-1")

	// Reads yield empty state, never an error or nil.
	state := cache.ReadAll(ctx, "user-1", "exam-1")
	if state == nil || len(state.Answers) != 0 || len(state.Marked) != 0 {
		t.Errorf("broken store must read as empty state, got %+v", state)
	}

	// Timers still run off the wall clock.
	start := cache.StartTime(ctx, "user-1", "exam-1")
	if time.Since(start) > time.Minute {
		t.Errorf("start time %v is not recent", start)
	}
}
