package graph

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"social-demo/backend/internal/state"
	apperrors "social-demo/backend/pkg/errors"
)

// ============================================================================
// Friendship Operations
// ============================================================================

// AddFriend links userA and userB. Checks run in order: both must exist,
// they must differ, and the pair must not already be linked in either order.
func (r *Repository) AddFriend(userA, userB string) (state.Friendship, error) {
	if _, ok := r.directory.FindByEmail(userA); !ok {
		return state.Friendship{}, apperrors.NewUserNotFound(userA)
	}
	if _, ok := r.directory.FindByEmail(userB); !ok {
		return state.Friendship{}, apperrors.NewUserNotFound(userB)
	}
	if userA == userB {
		return state.Friendship{}, apperrors.ErrSelfFriendship
	}

	key := state.NewPairKey(userA, userB)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pairs[key]; exists {
		r.logger.Debug("Friendship already exists",
			zap.String("user", userA),
			zap.String("friend", userB),
		)
		return state.Friendship{}, apperrors.NewAlreadyFriends(userA, userB)
	}

	f := state.Friendship{User1: userA, User2: userB, CreatedAt: r.now()}
	idx := len(r.friendships)
	r.friendships = append(r.friendships, f)
	r.pairs[key] = struct{}{}
	r.adjacency[userA] = append(r.adjacency[userA], idx)
	r.adjacency[userB] = append(r.adjacency[userB], idx)

	r.logger.Info("Friendship created",
		zap.String("user", userA),
		zap.String("friend", userB),
	)
	return f, nil
}

// AreFriends reports whether a friendship exists for the unordered pair
func (r *Repository) AreFriends(userA, userB string) bool {
	key := state.NewPairKey(userA, userB)

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.pairs[key]
	return ok
}

// FriendEmails returns the counterparts of user in friendship creation order
func (r *Repository) FriendEmails(user string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.FilterMap(r.adjacency[user], func(idx int, _ int) (string, bool) {
		return r.friendships[idx].Other(user)
	})
}

// ListFriends resolves user's friends to directory profiles. Counterparts that no
// longer resolve are dropped. The directory is consulted after the graph lock is released.
func (r *Repository) ListFriends(user string) []state.Profile {
	emails := r.FriendEmails(user)

	return lo.FilterMap(emails, func(email string, _ int) (state.Profile, bool) {
		return r.directory.FindByEmail(email)
	})
}
