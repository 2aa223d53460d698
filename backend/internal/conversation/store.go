package conversation

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	"social-demo/backend/internal/state"
	apperrors "social-demo/backend/pkg/errors"
	"social-demo/backend/pkg/logger"
)

// FriendChecker answers whether two users may talk to each other
type FriendChecker interface {
	AreFriends(userA, userB string) bool
}

// Store keeps every message sent between friends, in send order.
// Messages are immutable and live for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	messages []state.Message
	lastID   int64

	friends FriendChecker
	now     func() time.Time
	logger  *zap.Logger
}

// Option customises a Store
type Option func(*Store)

// WithClock overrides the timestamp source for new messages
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty conversation store gated by friends
func NewStore(friends FriendChecker, log *zap.Logger, opts ...Option) *Store {
	s := &Store{
		friends: friends,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.Named(log, constants.ComponentConversation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendMessage appends a message from one friend to another.
// The friend graph is consulted before the message list is locked.
func (s *Store) SendMessage(from, to, body string) (state.Message, error) {
	if !s.friends.AreFriends(from, to) {
		s.logger.Debug("Message rejected, users are not friends",
			zap.String("from", from),
			zap.String("to", to),
		)
		return state.Message{}, apperrors.NewNotFriends(from, to)
	}

	s.mu.Lock()
	s.lastID++
	msg := state.Message{
		ID:        s.lastID,
		From:      from,
		To:        to,
		Body:      body,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	s.logger.Debug("Message stored",
		zap.Int64("id", msg.ID),
		zap.String("from", from),
		zap.String("to", to),
	)
	return msg, nil
}

// GetConversation returns every message between userA and userB in either direction,
// ascending by timestamp with ties kept in send order. Never nil.
func (s *Store) GetConversation(userA, userB string) []state.Message {
	s.mu.RLock()
	conv := lo.Filter(s.messages, func(m state.Message, _ int) bool {
		return m.Between(userA, userB)
	})
	s.mu.RUnlock()

	slices.SortStableFunc(conv, func(a, b state.Message) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		// ids grow with insertion
		return cmp.Compare(a.ID, b.ID)
	})
	return conv
}

// Len returns the number of stored messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
