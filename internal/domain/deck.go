package domain

import "time"

// Deck is a named, user-owned collection of movies. MovieCount is derived
// from the association table when listing.
type Deck struct {
	ID         string
	Name       string
	MovieCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
