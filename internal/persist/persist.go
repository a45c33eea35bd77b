// Package persist is the adapter that carries committed scores to the
// backend. The board fires commits without waiting on them; failures are
// surfaced to the caller and never roll back in-memory state.
package persist

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the backend no longer knows the movie.
var ErrNotFound = errors.New("persist: movie not found")

// Update is one committed placement. Title always travels with the scores
// so a partial backend write can never clear it.
type Update struct {
	DeckID  string
	MovieID string
	Title   string
	Fun     float64
	Good    float64
}

// Committer accepts final committed scores.
type Committer interface {
	Commit(ctx context.Context, u Update) error
}
