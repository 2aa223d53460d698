package conversation

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

type mockFriends struct {
	pairs map[state.PairKey]bool
}

func newMockFriends(pairs ...[2]string) *mockFriends {
	m := &mockFriends{pairs: make(map[state.PairKey]bool)}
	for _, p := range pairs {
		m.pairs[state.NewPairKey(p[0], p[1])] = true
	}
	return m
}

func (m *mockFriends) AreFriends(a, b string) bool {
	return m.pairs[state.NewPairKey(a, b)]
}

// stepClock returns t0, t0+step, t0+2*step, ...
func stepClock(t0 time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

func bodies(msgs []state.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Body)
	}
	return out
}

func TestSendMessage_RequiresFriendship(t *testing.T) {
	store := NewStore(newMockFriends(), nil)

	_, err := store.SendMessage("a@x.com", "b@x.com", "hi")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeForbidden))
	assert.Equal(t, "Can only message friends", apperrors.PublicMessage(err, ""))
	assert.Zero(t, store.Len())
}

func TestSendMessage_AssignsIDsAndTimestamps(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(newMockFriends([2]string{"a@x.com", "b@x.com"}), nil, WithClock(stepClock(t0, time.Second)))

	m1, err := store.SendMessage("a@x.com", "b@x.com", "hi")
	require.NoError(t, err)
	m2, err := store.SendMessage("b@x.com", "a@x.com", "yo")
	require.NoError(t, err)

	assert.Equal(t, int64(1), m1.ID)
	assert.Equal(t, int64(2), m2.ID)
	assert.Equal(t, t0, m1.Timestamp)
	assert.Equal(t, t0.Add(time.Second), m2.Timestamp)
	assert.Equal(t, "a@x.com", m1.From)
	assert.Equal(t, "b@x.com", m1.To)
}

func TestGetConversation_BothDirectionsInSendOrder(t *testing.T) {
	store := NewStore(newMockFriends([2]string{"a@x.com", "b@x.com"}), nil)

	_, err := store.SendMessage("a@x.com", "b@x.com", "hi")
	require.NoError(t, err)
	_, err = store.SendMessage("b@x.com", "a@x.com", "yo")
	require.NoError(t, err)

	ab := store.GetConversation("a@x.com", "b@x.com")
	ba := store.GetConversation("b@x.com", "a@x.com")

	assert.Equal(t, []string{"hi", "yo"}, bodies(ab))
	assert.Equal(t, ab, ba)
}

func TestGetConversation_TiesKeepSendOrder(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(newMockFriends([2]string{"a@x.com", "b@x.com"}), nil,
		WithClock(func() time.Time { return frozen }))

	var want []string
	for i := 0; i < 20; i++ {
		from, to := "a@x.com", "b@x.com"
		if i%3 == 0 {
			from, to = to, from
		}
		body := fmt.Sprintf("m%02d", i)
		want = append(want, body)
		_, err := store.SendMessage(from, to, body)
		require.NoError(t, err)
	}

	assert.Equal(t, want, bodies(store.GetConversation("a@x.com", "b@x.com")))
	assert.Equal(t, want, bodies(store.GetConversation("b@x.com", "a@x.com")))
}

func TestGetConversation_SortsByTimestamp(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{t0.Add(2 * time.Second), t0, t0.Add(time.Second)}
	i := 0
	clock := func() time.Time {
		t := times[i]
		i++
		return t
	}
	store := NewStore(newMockFriends([2]string{"a@x.com", "b@x.com"}), nil, WithClock(clock))

	for _, body := range []string{"late", "early", "middle"} {
		_, err := store.SendMessage("a@x.com", "b@x.com", body)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"early", "middle", "late"}, bodies(store.GetConversation("a@x.com", "b@x.com")))
}

func TestGetConversation_FiltersOtherPairs(t *testing.T) {
	store := NewStore(newMockFriends(
		[2]string{"a@x.com", "b@x.com"},
		[2]string{"a@x.com", "c@x.com"},
	), nil)

	_, err := store.SendMessage("a@x.com", "b@x.com", "to b")
	require.NoError(t, err)
	_, err = store.SendMessage("c@x.com", "a@x.com", "from c")
	require.NoError(t, err)

	assert.Equal(t, []string{"to b"}, bodies(store.GetConversation("a@x.com", "b@x.com")))
	assert.Equal(t, []string{"from c"}, bodies(store.GetConversation("c@x.com", "a@x.com")))
	assert.Empty(t, store.GetConversation("b@x.com", "c@x.com"))
}

func TestGetConversation_EmptyNeverNil(t *testing.T) {
	store := NewStore(newMockFriends(), nil)

	conv := store.GetConversation("nobody@x.com", "ghost@x.com")
	assert.NotNil(t, conv)
	assert.Empty(t, conv)
}

func TestGetConversation_ReturnsCopy(t *testing.T) {
	store := NewStore(newMockFriends([2]string{"a@x.com", "b@x.com"}), nil)
	_, err := store.SendMessage("a@x.com", "b@x.com", "hi")
	require.NoError(t, err)

	conv := store.GetConversation("a@x.com", "b@x.com")
	conv[0].Body = "tampered"

	assert.Equal(t, "hi", store.GetConversation("a@x.com", "b@x.com")[0].Body)
}

func TestSendMessage_ConcurrentUniqueIDs(t *testing.T) {
	store := NewStore(newMockFriends([2]string{"a@x.com", "b@x.com"}), nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.SendMessage("a@x.com", "b@x.com", fmt.Sprint(i))
		}(i)
	}
	wg.Wait()

	conv := store.GetConversation("a@x.com", "b@x.com")
	require.Len(t, conv, 100)

	seen := make(map[int64]bool)
	for _, m := range conv {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
}
