package state

import "time"

// Profile is a User Directory record. Email is the identity used everywhere else.
type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"-"` // plaintext, never rendered
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Friendship is an unordered pair of emails. User1 and User2 keep the order of the
// request that created it; lookups go through PairKey.
type Friendship struct {
	User1     string    `json:"user1"`
	User2     string    `json:"user2"`
	CreatedAt time.Time `json:"createdAt"`
}

// Other returns the counterpart of user, and false if user is not part of the pair
func (f Friendship) Other(user string) (string, bool) {
	switch user {
	case f.User1:
		return f.User2, true
	case f.User2:
		return f.User1, true
	}
	return "", false
}

// PairKey is the canonical, order-independent key of a friendship
type PairKey struct {
	Low  string
	High string
}

// NewPairKey orders a and b so that NewPairKey(a, b) == NewPairKey(b, a)
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// Message is one direct message between two friends
type Message struct {
	ID        int64     `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Body      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Between reports whether m belongs to the conversation of a and b, in either direction
func (m Message) Between(a, b string) bool {
	return (m.From == a && m.To == b) || (m.From == b && m.To == a)
}

// Video is an uploaded video's registry entry
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Path         string    `json:"path"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
