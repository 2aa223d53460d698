package graph

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-demo/backend/internal/state"
	apperrors "social-demo/backend/pkg/errors"
)

type mockDirectory struct {
	mu       sync.RWMutex
	profiles map[string]state.Profile
}

func newMockDirectory(emails ...string) *mockDirectory {
	d := &mockDirectory{profiles: make(map[string]state.Profile)}
	for _, e := range emails {
		d.profiles[e] = state.Profile{Name: e, Email: e, Password: "pw"}
	}
	return d
}

func (m *mockDirectory) FindByEmail(email string) (state.Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[email]
	return p, ok
}

func (m *mockDirectory) remove(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, email)
}

func TestAddFriend_Symmetric(t *testing.T) {
	repo := NewRepository(newMockDirectory("a@x.com", "b@x.com"), nil)

	_, err := repo.AddFriend("a@x.com", "b@x.com")
	require.NoError(t, err)

	assert.True(t, repo.AreFriends("a@x.com", "b@x.com"))
	assert.True(t, repo.AreFriends("b@x.com", "a@x.com"))
	assert.False(t, repo.AreFriends("a@x.com", "a@x.com"))
}

func TestAddFriend_RecordsCreation(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewRepository(newMockDirectory("a@x.com", "b@x.com"), nil, WithClock(func() time.Time { return fixed }))

	f, err := repo.AddFriend("a@x.com", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", f.User1)
	assert.Equal(t, "b@x.com", f.User2)
	assert.Equal(t, fixed, f.CreatedAt)
}

func TestAddFriend_Errors(t *testing.T) {
	tests := []struct {
		name    string
		userA   string
		userB   string
		errType apperrors.ErrorType
		message string
	}{
		{"unknown friend", "a@x.com", "c@x.com", apperrors.ErrorTypeNotFound, "User not found"},
		{"unknown user", "c@x.com", "a@x.com", apperrors.ErrorTypeNotFound, "User not found"},
		{"both unknown and equal", "c@x.com", "c@x.com", apperrors.ErrorTypeNotFound, "User not found"},
		{"self", "a@x.com", "a@x.com", apperrors.ErrorTypeInvalidRequest, "Cannot add yourself as friend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(newMockDirectory("a@x.com", "b@x.com"), nil)

			_, err := repo.AddFriend(tt.userA, tt.userB)
			require.Error(t, err)
			assert.True(t, apperrors.IsErrorType(err, tt.errType))
			assert.Equal(t, tt.message, apperrors.PublicMessage(err, ""))
			assert.Zero(t, repo.Count())
		})
	}
}

func TestAddFriend_DuplicateEitherOrder(t *testing.T) {
	for _, second := range [][2]string{{"a@x.com", "b@x.com"}, {"b@x.com", "a@x.com"}} {
		t.Run(second[0]+"->"+second[1], func(t *testing.T) {
			repo := NewRepository(newMockDirectory("a@x.com", "b@x.com"), nil)

			_, err := repo.AddFriend("a@x.com", "b@x.com")
			require.NoError(t, err)

			_, err = repo.AddFriend(second[0], second[1])
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConflict))
			assert.Equal(t, "Already friends", apperrors.PublicMessage(err, ""))
			assert.Equal(t, 1, repo.Count())
		})
	}
}

func TestListFriends(t *testing.T) {
	repo := NewRepository(newMockDirectory("a@x.com", "b@x.com", "c@x.com", "d@x.com"), nil)

	_, err := repo.AddFriend("a@x.com", "c@x.com")
	require.NoError(t, err)
	_, err = repo.AddFriend("b@x.com", "a@x.com")
	require.NoError(t, err)
	_, err = repo.AddFriend("c@x.com", "d@x.com")
	require.NoError(t, err)

	friends := repo.ListFriends("a@x.com")
	require.Len(t, friends, 2)
	assert.Equal(t, "c@x.com", friends[0].Email)
	assert.Equal(t, "b@x.com", friends[1].Email)

	assert.Equal(t, []string{"a@x.com", "d@x.com"}, repo.FriendEmails("c@x.com"))
}

func TestListFriends_UnknownUserIsEmpty(t *testing.T) {
	repo := NewRepository(newMockDirectory("a@x.com"), nil)

	friends := repo.ListFriends("ghost@x.com")
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestListFriends_DropsUnresolvableCounterparts(t *testing.T) {
	dir := newMockDirectory("a@x.com", "b@x.com", "c@x.com")
	repo := NewRepository(dir, nil)

	_, err := repo.AddFriend("a@x.com", "b@x.com")
	require.NoError(t, err)
	_, err = repo.AddFriend("a@x.com", "c@x.com")
	require.NoError(t, err)

	dir.remove("b@x.com")

	friends := repo.ListFriends("a@x.com")
	require.Len(t, friends, 1)
	assert.Equal(t, "c@x.com", friends[0].Email)
	assert.True(t, repo.AreFriends("a@x.com", "b@x.com"))
}

func TestAddFriend_ConcurrentSamePair(t *testing.T) {
	repo := NewRepository(newMockDirectory("a@x.com", "b@x.com"), nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := "a@x.com", "b@x.com"
			if i%2 == 1 {
				a, b = b, a
			}
			if _, err := repo.AddFriend(a, b); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, repo.Count())
}

func TestAddFriend_ManyPairs(t *testing.T) {
	var emails []string
	for i := 0; i < 10; i++ {
		emails = append(emails, fmt.Sprintf("u%d@x.com", i))
	}
	repo := NewRepository(newMockDirectory(emails...), nil)

	for i := 0; i < len(emails); i++ {
		for j := i + 1; j < len(emails); j++ {
			_, err := repo.AddFriend(emails[i], emails[j])
			require.NoError(t, err)
		}
	}

	assert.Equal(t, 45, repo.Count())
	for _, e := range emails {
		assert.Len(t, repo.ListFriends(e), 9)
	}
}
