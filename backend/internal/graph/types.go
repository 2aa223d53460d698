package graph

import "social-demo/backend/internal/state"

// ProfileLookup is the slice of the User Directory the friend graph needs
type ProfileLookup interface {
	FindByEmail(email string) (state.Profile, bool)
}
