package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/moviegrid/moviegrid/internal/repository"
)

// RepoCommitter commits placements straight into the repository layer.
// It is the in-process counterpart of HTTPClient, used when the board host
// runs inside the server itself.
type RepoCommitter struct {
	Repo *repository.Repository
}

// Commit writes the placement through MoviesRepository.
func (c *RepoCommitter) Commit(ctx context.Context, u Update) error {
	if u.Title == "" {
		return fmt.Errorf("persist: refusing to commit %s without a title", u.MovieID)
	}
	_, err := c.Repo.Movies.UpdateScores(ctx, u.DeckID, u.MovieID, repository.UpdateScoresParams{
		Title: u.Title,
		Fun:   u.Fun,
		Good:  u.Good,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
