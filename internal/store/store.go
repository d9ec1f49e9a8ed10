// Package store is the in-memory owner of gardens, friends, interactions and
// plant appearances. Every mutation keeps the invariants scoring relies on:
// friends belong to exactly one garden, tier history is append-only, and a
// plant's species always fits its friend's tier.
//
// Mutations given an unknown id do nothing and report NotFound rather than
// failing, so callers holding stale references need not check first.
package store

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

var (
	// ErrNoActiveGarden is returned when a friend is added without a valid garden.
	ErrNoActiveGarden = errors.New("no active garden")

	// ErrSpeciesNotAllowed is returned when restyling a plant with a species
	// that does not belong to the friend's tier.
	ErrSpeciesNotAllowed = errors.New("species not allowed for tier")

	// ErrInvalidInput wraps validation failures on mutation inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSnapshot is returned by Restore for inconsistent state.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Outcome reports what a mutation did.
type Outcome int

const (
	// Applied means state changed.
	Applied Outcome = iota + 1
	// Unchanged means the target exists but the mutation was a no-op.
	Unchanged
	// NotFound means the target id is unknown; nothing happened.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// DefaultRecentLimit is used by RecentInteractions when limit <= 0.
const DefaultRecentLimit = 10

// Store holds all entity collections. It is safe for concurrent use; each
// mutation is applied atomically.
type Store struct {
	mu sync.RWMutex

	gardens        []model.Garden
	activeGardenID string
	friends        []model.Friend
	interactions   []model.Interaction
	appearances    map[string]model.Appearance

	now      func() time.Time
	rng      *rand.Rand // guarded by mu
	newID    func() string
	log      *zap.Logger
	validate *validator.Validate
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRand sets the random source used for plant appearances.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDs sets the id generator. Defaults to random UUIDs.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		appearances: make(map[string]model.Appearance),
		now:         time.Now,
		newID:       uuid.NewString,
		log:         zap.NewNop(),
		validate:    newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return s
}

func (s *Store) gardenIndex(id string) int {
	for i := range s.gardens {
		if s.gardens[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) friendIndex(id string) int {
	for i := range s.friends {
		if s.friends[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) interactionIndex(id string) int {
	for i := range s.interactions {
		if s.interactions[i].ID == id {
			return i
		}
	}
	return -1
}

// removeFriends drops the given friends with their interactions and plants.
func (s *Store) removeFriends(ids map[string]bool) {
	if len(ids) == 0 {
		return
	}
	kept := s.friends[:0]
	for _, f := range s.friends {
		if !ids[f.ID] {
			kept = append(kept, f)
		}
	}
	s.friends = kept

	keptLog := s.interactions[:0]
	for _, i := range s.interactions {
		if !ids[i.FriendID] {
			keptLog = append(keptLog, i)
		}
	}
	s.interactions = keptLog

	for id := range ids {
		delete(s.appearances, id)
	}
}
