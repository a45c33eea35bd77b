package domain

import "time"

// Movie is the canonical movie entity. Identity is global; the (fun, good)
// placement is deck-scoped and lives on the deck association, so the scores
// here always reflect one particular deck's view of the movie.
type Movie struct {
	ID        string
	Title     string
	Fun       float64
	Good      float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
