package graph

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	"social-demo/backend/internal/state"
	"social-demo/backend/pkg/logger"
)

// Repository is the in-memory friend graph: an undirected, accumulating relation
// over directory emails. Friendships are never removed.
type Repository struct {
	mu          sync.RWMutex
	friendships []state.Friendship         // creation order
	pairs       map[state.PairKey]struct{} // canonical pair set
	adjacency   map[string][]int           // email -> indexes into friendships

	directory ProfileLookup
	now       func() time.Time
	logger    *zap.Logger
}

// Option customises a Repository
type Option func(*Repository)

// WithClock overrides the timestamp source for new friendships
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates an empty friend graph validating identities against directory
func NewRepository(directory ProfileLookup, log *zap.Logger, opts ...Option) *Repository {
	r := &Repository{
		pairs:     make(map[state.PairKey]struct{}),
		adjacency: make(map[string][]int),
		directory: directory,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.Named(log, constants.ComponentGraph),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Count returns the number of stored friendships
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.friendships)
}
