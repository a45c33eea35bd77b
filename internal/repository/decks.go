package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviegrid/moviegrid/internal/domain"
)

// DecksRepository provides persistence helpers for decks.
type DecksRepository struct {
	pool *pgxpool.Pool
}

const deckColumns = `
    d.id,
    d.name,
    COALESCE(c.movie_count, 0),
    d.created_at,
    d.updated_at
`

const deckCountJoin = `
    LEFT JOIN (
        SELECT deck_id, COUNT(*) AS movie_count
        FROM deck_movies
        GROUP BY deck_id
    ) c ON c.deck_id = d.id
`

// Create inserts a new deck and returns it.
func (r *DecksRepository) Create(ctx context.Context, name string) (domain.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Deck{}, fmt.Errorf("deck name must not be empty")
	}

	const query = `
        INSERT INTO decks (id, name)
        VALUES ($1, $2)
        RETURNING id, name, created_at, updated_at
    `
	var deck domain.Deck
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), name).Scan(
		&deck.ID,
		&deck.Name,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("create deck: %w", err)
	}
	return deck, nil
}

// GetByID fetches a deck with its movie count.
func (r *DecksRepository) GetByID(ctx context.Context, id string) (domain.Deck, error) {
	query := fmt.Sprintf(`SELECT %s FROM decks d %s WHERE d.id = $1`, deckColumns, deckCountJoin)

	var deck domain.Deck
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&deck.ID,
		&deck.Name,
		&deck.MovieCount,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Deck{}, ErrNotFound
		}
		return domain.Deck{}, err
	}
	return deck, nil
}

// List returns all decks, most recently updated first.
func (r *DecksRepository) List(ctx context.Context) ([]domain.Deck, error) {
	query := fmt.Sprintf(`SELECT %s FROM decks d %s ORDER BY d.updated_at DESC, d.id DESC`, deckColumns, deckCountJoin)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	decks := make([]domain.Deck, 0)
	for rows.Next() {
		var deck domain.Deck
		if err := rows.Scan(&deck.ID, &deck.Name, &deck.MovieCount, &deck.CreatedAt, &deck.UpdatedAt); err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decks, nil
}

// Rename updates a deck's name.
func (r *DecksRepository) Rename(ctx context.Context, id, name string) (domain.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Deck{}, fmt.Errorf("deck name must not be empty")
	}

	const query = `
        UPDATE decks
        SET name = $2, updated_at = now()
        WHERE id = $1
        RETURNING id, name, created_at, updated_at
    `
	var deck domain.Deck
	err := r.pool.QueryRow(ctx, query, id, name).Scan(
		&deck.ID,
		&deck.Name,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Deck{}, ErrNotFound
		}
		return domain.Deck{}, err
	}
	return deck, nil
}

// Delete removes a deck. Associations cascade via the schema; movies left
// without any deck are cleaned up in the same transaction.
func (r *DecksRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
        DELETE FROM movies m
        WHERE NOT EXISTS (SELECT 1 FROM deck_movies dm WHERE dm.movie_id = m.id)
    `); err != nil {
		return fmt.Errorf("delete orphaned movies: %w", err)
	}

	return tx.Commit(ctx)
}
