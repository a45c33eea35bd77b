package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviegrid/moviegrid/internal/domain"
	"github.com/moviegrid/moviegrid/internal/score"
)

// MoviesRepository provides persistence helpers for movies and their
// deck-scoped placements. Movie identity is global; the (fun, good) pair
// lives on the deck association, so every read and write here is keyed by
// (deck, movie).
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const placedMovieColumns = `
    m.id,
    m.title,
    dm.fun,
    dm.good,
    m.created_at,
    dm.updated_at
`

// MovieAddParams bundles the fields required to place a movie in a deck.
type MovieAddParams struct {
	Title string
	Fun   float64
	Good  float64
}

// AddToDeck creates a movie and its placement in one transaction. The
// title is normalized through TitleCase (this is the one commit of a
// newly typed title); scores are clamped and rounded.
func (r *MoviesRepository) AddToDeck(ctx context.Context, deckID string, params MovieAddParams) (domain.Movie, error) {
	title := score.TitleCase(params.Title)
	if title == "" {
		return domain.Movie{}, fmt.Errorf("movie title must not be empty")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Movie{}, err
	}
	defer tx.Rollback(ctx)

	var movie domain.Movie
	err = tx.QueryRow(ctx, `
        INSERT INTO movies (id, title)
        VALUES ($1, $2)
        RETURNING id, title, created_at
    `, uuid.NewString(), title).Scan(&movie.ID, &movie.Title, &movie.CreatedAt)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("insert movie: %w", err)
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO deck_movies (deck_id, movie_id, fun, good)
        VALUES ($1, $2, $3, $4)
        RETURNING fun, good, updated_at
    `, deckID, movie.ID, score.Normalize(params.Fun), score.Normalize(params.Good)).Scan(
		&movie.Fun, &movie.Good, &movie.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, fmt.Errorf("place movie in deck: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

// ListByDeck returns the deck's movies with their deck-scoped scores,
// ordered by title for stable rendering.
func (r *MoviesRepository) ListByDeck(ctx context.Context, deckID string) ([]domain.Movie, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM deck_movies dm
        JOIN movies m ON m.id = dm.movie_id
        WHERE dm.deck_id = $1
        ORDER BY lower(m.title), m.id
    `, placedMovieColumns)

	rows, err := r.pool.Query(ctx, query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Fun, &m.Good, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetInDeck fetches one movie's placement in a deck.
func (r *MoviesRepository) GetInDeck(ctx context.Context, deckID, movieID string) (domain.Movie, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM deck_movies dm
        JOIN movies m ON m.id = dm.movie_id
        WHERE dm.deck_id = $1 AND dm.movie_id = $2
    `, placedMovieColumns)

	var m domain.Movie
	err := r.pool.QueryRow(ctx, query, deckID, movieID).Scan(
		&m.ID, &m.Title, &m.Fun, &m.Good, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return m, nil
}

// UpdateScoresParams carries a placement update. Title is required so a
// score commit can never clear it; it is stored as sent, without re-casing.
type UpdateScoresParams struct {
	Title string
	Fun   float64
	Good  float64
}

// UpdateScores writes the movie's title and deck-scoped scores.
func (r *MoviesRepository) UpdateScores(ctx context.Context, deckID, movieID string, params UpdateScoresParams) (domain.Movie, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return domain.Movie{}, fmt.Errorf("movie title must not be empty")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Movie{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE movies SET title = $2, updated_at = now() WHERE id = $1
    `, movieID, title)
	if err != nil {
		return domain.Movie{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Movie{}, ErrNotFound
	}

	var m domain.Movie
	err = tx.QueryRow(ctx, `
        UPDATE deck_movies
        SET fun = $3, good = $4, updated_at = now()
        WHERE deck_id = $1 AND movie_id = $2
        RETURNING movie_id, fun, good, updated_at
    `, deckID, movieID, score.Normalize(params.Fun), score.Normalize(params.Good)).Scan(
		&m.ID, &m.Fun, &m.Good, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	m.Title = title

	if err := tx.Commit(ctx); err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}

// RemoveFromDeck deletes the placement, and the movie itself once no deck
// references it.
func (r *MoviesRepository) RemoveFromDeck(ctx context.Context, deckID, movieID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        DELETE FROM deck_movies WHERE deck_id = $1 AND movie_id = $2
    `, deckID, movieID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
        DELETE FROM movies m
        WHERE m.id = $1
          AND NOT EXISTS (SELECT 1 FROM deck_movies dm WHERE dm.movie_id = m.id)
    `, movieID); err != nil {
		return fmt.Errorf("delete orphaned movie: %w", err)
	}

	return tx.Commit(ctx)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
