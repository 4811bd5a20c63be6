// Package progresscache keeps a per-user scratch copy of in-flight exam
// state in Redis. It mirrors what a browser would keep locally between
// navigations: the answer map, the marked set, and the attempt start time.
//
// The cache is strictly best-effort. The durable snapshot in PostgreSQL is
// the source of truth; every failure here degrades to "no cached state"
// rather than surfacing an error to the caller.
package progresscache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/prepdesk/prepdesk-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store is the minimal key-value surface the cache needs. Implementations
// must return ("", nil) for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// stateTTL bounds how long abandoned attempt state lingers.
const stateTTL = 24 * time.Hour

// RedisStore backs Store with a Redis client. Keys are prefixed with a
// caller-supplied namespace so attempt state can never collide with other
// Redis users of the same database.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStore creates a namespaced Redis-backed store.
func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	return &RedisStore{rdb: rdb, namespace: namespace}
}

func (s *RedisStore) key(key string) string {
	return s.namespace + ":" + key
}

// Get returns the value for key, or "" when the key does not exist.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set writes key with the store TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.key(key), value, stateTTL).Err()
}

// Del removes the given keys.
func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = s.key(k)
	}
	return s.rdb.Del(ctx, namespaced...).Err()
}

// State is the cached scratch copy of one in-flight attempt.
type State struct {
	Answers map[int]string `json:"answers"`
	Marked  map[int]bool   `json:"marked"`
}

// newState returns an empty, non-nil state.
func newState() *State {
	return &State{
		Answers: make(map[int]string),
		Marked:  make(map[int]bool),
	}
}

// Cache reads and writes per-exam attempt state through a Store. Every
// operation is scoped by owner: two users working the same exam never share
// a key, matching the per-browser scope the state originally had.
type Cache struct {
	store Store
	log   zerolog.Logger
}

// New creates a Cache over the given store.
func New(store Store, log zerolog.Logger) *Cache {
	return &Cache{
		store: store,
		log:   log.With().Str("component", "progress_cache").Logger(),
	}
}

func stateKey(ownerID, examID string) string {
	return ownerID + ":" + config.CacheKey.ExamStateKey(examID)
}

func startTimeKey(ownerID, examID string) string {
	return ownerID + ":" + config.CacheKey.ExamStartTimeKey(examID)
}

// ReadAll returns the owner's cached state for an exam. A missing key, an
// unreachable store, or a corrupt blob all yield an empty state.
func (c *Cache) ReadAll(ctx context.Context, ownerID, examID string) *State {
	raw, err := c.store.Get(ctx, stateKey(ownerID, examID))
	if err != nil {
		c.log.Debug().Err(err).Str("exam_id", examID).Msg("State read failed")
		return newState()
	}
	if raw == "" {
		return newState()
	}

	state := newState()
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		c.log.Debug().Err(err).Str("exam_id", examID).Msg("Discarding corrupt cached state")
		return newState()
	}
	if state.Answers == nil {
		state.Answers = make(map[int]string)
	}
	if state.Marked == nil {
		state.Marked = make(map[int]bool)
	}
	return state
}

// RecordAnswer stores the selected option for a position. Best effort.
func (c *Cache) RecordAnswer(ctx context.Context, ownerID, examID string, position int, option string) {
	state := c.ReadAll(ctx, ownerID, examID)
	state.Answers[position] = option
	c.write(ctx, ownerID, examID, state)
}

// ToggleMark flips the marked-for-review flag on a position. Best effort.
func (c *Cache) ToggleMark(ctx context.Context, ownerID, examID string, position int) {
	state := c.ReadAll(ctx, ownerID, examID)
	if state.Marked[position] {
		delete(state.Marked, position)
	} else {
		state.Marked[position] = true
	}
	c.write(ctx, ownerID, examID, state)
}

// StartTime returns the attempt's recorded start, establishing one now when
// none exists. A store failure returns the current time so timers still run.
func (c *Cache) StartTime(ctx context.Context, ownerID, examID string) time.Time {
	key := startTimeKey(ownerID, examID)

	raw, err := c.store.Get(ctx, key)
	if err == nil && raw != "" {
		if unix, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
			return time.Unix(unix, 0)
		}
		c.log.Debug().Str("exam_id", examID).Msg("Discarding corrupt cached start time")
	}

	now := time.Now()
	if err := c.store.Set(ctx, key, strconv.FormatInt(now.Unix(), 10)); err != nil {
		c.log.Debug().Err(err).Str("exam_id", examID).Msg("Start time write failed")
	}
	return now
}

// Clear drops the owner's cached state for an exam, including the timer
// marker, e.g. after a submission.
func (c *Cache) Clear(ctx context.Context, ownerID, examID string) {
	err := c.store.Del(ctx,
		stateKey(ownerID, examID),
		startTimeKey(ownerID, examID),
	)
	if err != nil {
		c.log.Debug().Err(err).Str("exam_id", examID).Msg("State clear failed")
	}
}

func (c *Cache) write(ctx context.Context, ownerID, examID string, state *State) {
	blob, err := json.Marshal(state)
	if err != nil {
		c.log.Debug().Err(err).Str("exam_id", examID).Msg("State marshal failed")
		return
	}
	if err := c.store.Set(ctx, stateKey(ownerID, examID), string(blob)); err != nil {
		c.log.Debug().Err(err).Str("exam_id", examID).Msg("State write failed")
	}
}
