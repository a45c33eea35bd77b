// Package board hosts the placement engine for one deck: it owns the
// in-memory movie list, the live drag session, and the measured layout,
// and hands committed scores to the persistence adapter on release.
package board

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/moviegrid/moviegrid/internal/domain"
	"github.com/moviegrid/moviegrid/internal/grid"
	"github.com/moviegrid/moviegrid/internal/metrics"
	"github.com/moviegrid/moviegrid/internal/persist"
)

// Board errors.
var (
	// ErrDragActive rejects a second gesture while one is captured.
	ErrDragActive = errors.New("board: drag session already active")
	// ErrNoSuchGroup means no rendered group occupies the given cell.
	ErrNoSuchGroup = errors.New("board: no group at cell")
	// ErrNoSuchMovie means the id is not on the board.
	ErrNoSuchMovie = errors.New("board: no such movie")
)

// Board is safe for use from one host event loop; its mutex only guards
// against the background commit goroutine observing torn state.
type Board struct {
	mu sync.Mutex

	deckID string
	movies []domain.Movie

	bounds  grid.Rect
	layout  grid.Layout
	session *grid.Session

	committer persist.Committer
	metrics   *metrics.Metrics
	logger    *log.Logger

	// onCommitErr, when set, receives persistence failures so the host
	// can surface a notice. Never blocks a subsequent drag.
	onCommitErr func(id string, err error)
}

// New constructs a board for one deck. committer and m may be nil for
// hosts that do not persist or observe.
func New(deckID string, committer persist.Committer, m *metrics.Metrics, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Board{
		deckID:    deckID,
		committer: committer,
		metrics:   m,
		logger:    logger,
		layout:    grid.Layout{},
	}
}

// OnCommitError registers the host's failure callback.
func (b *Board) OnCommitError(fn func(id string, err error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onCommitErr = fn
}

// SetMovies replaces the board's movie list from the backend. Scores of
// ids covered by a live session are preserved: the session is the sole
// authority over them until it terminates.
func (b *Board) SetMovies(movies []domain.Movie) {
	b.mu.Lock()
	defer b.mu.Unlock()

	held := make(map[string][2]float64)
	for _, m := range b.movies {
		if b.session.Covers(m.ID) {
			held[m.ID] = [2]float64{m.Fun, m.Good}
		}
	}

	b.movies = make([]domain.Movie, len(movies))
	copy(b.movies, movies)
	for i := range b.movies {
		if scores, ok := held[b.movies[i].ID]; ok {
			b.movies[i].Fun = scores[0]
			b.movies[i].Good = scores[1]
		}
	}
}

// Upsert inserts or refreshes a single movie from the backend. Like
// SetMovies, scores of a session-covered id are preserved; the rest of
// the record (title, timestamps) is taken from the argument.
func (b *Board) Upsert(movie domain.Movie) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.movies {
		if b.movies[i].ID == movie.ID {
			if b.session.Covers(movie.ID) {
				movie.Fun = b.movies[i].Fun
				movie.Good = b.movies[i].Good
			}
			b.movies[i] = movie
			return
		}
	}
	b.movies = append(b.movies, movie)
}

// Remove takes a movie off the board. A removed id also leaves the
// active session; a session emptied this way terminates without a
// commit.
func (b *Board) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.movies {
		if b.movies[i].ID == id {
			b.movies = append(b.movies[:i], b.movies[i+1:]...)
			break
		}
	}

	if b.session == nil || !b.session.Covers(id) {
		return
	}
	ids := b.session.IDs[:0:0]
	for _, sid := range b.session.IDs {
		if sid != id {
			ids = append(ids, sid)
		}
	}
	if len(ids) == 0 {
		b.session = nil
		return
	}
	b.session.IDs = ids
}

// Movies returns a copy of the current list.
func (b *Board) Movies() []domain.Movie {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Movie, len(b.movies))
	copy(out, b.movies)
	return out
}

// Groups derives the render-ready groups from the current scores.
func (b *Board) Groups() []grid.Group {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grid.Groups(b.movies)
}

// Session returns a copy of the active drag session, or nil when idle.
func (b *Board) Session() *grid.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return nil
	}
	cp := *b.session
	cp.IDs = append([]string(nil), b.session.IDs...)
	return &cp
}

// SetBounds records the board's rendered bounding box.
func (b *Board) SetBounds(bounds grid.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bounds = bounds
}

// SetLayout replaces the measured group rectangles. The host calls it
// whenever grouping or layout changes; the snap resolver reads it.
func (b *Board) SetLayout(layout grid.Layout) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if layout == nil {
		layout = grid.Layout{}
	}
	b.layout = layout
}

// BeginGroupDrag starts a gesture over every id grouped at cell.
func (b *Board) BeginGroupDrag(cell grid.Key) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session != nil {
		return ErrDragActive
	}

	var ids []string
	for _, g := range grid.Groups(b.movies) {
		if g.Key() == cell {
			ids = g.IDs()
			break
		}
	}
	if len(ids) == 0 {
		return ErrNoSuchGroup
	}

	b.session = &grid.Session{Mode: grid.ModeGroup, Anchor: cell, IDs: ids}
	b.countDragStart(grid.ModeGroup)
	return nil
}

// BeginItemDrag starts a gesture over a single movie, pulling it out of
// whatever group currently contains it.
func (b *Board) BeginItemDrag(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session != nil {
		return ErrDragActive
	}

	for _, m := range b.movies {
		if m.ID == id {
			b.session = &grid.Session{
				Mode:   grid.ModeSingle,
				Anchor: grid.KeyOf(m.Fun, m.Good),
				IDs:    []string{id},
			}
			b.countDragStart(grid.ModeSingle)
			return nil
		}
	}
	return ErrNoSuchMovie
}

// Move recomputes scores from the pointer position and applies them to
// every session id as one rigid body. A move while idle is ignored.
func (b *Board) Move(p grid.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return
	}
	fun, good := grid.ScoreAt(b.bounds, p)
	b.applyToSession(fun, good)
}

// Release terminates the gesture at p: the raw position is applied, the
// snap resolver may override it, the result is committed in the
// background, and the session is destroyed. Cancel is identical; there is
// no path that restores the pre-drag position.
func (b *Board) Release(p grid.Point) {
	b.mu.Lock()
	sess := b.session
	if sess == nil {
		b.mu.Unlock()
		return
	}

	fun, good := grid.ScoreAt(b.bounds, p)
	b.applyToSession(fun, good)

	target, outcome := grid.ResolveSnap(b.movies, sess, b.layout, b.bounds, p)
	if target != nil {
		b.applyToSession(target.Fun, target.Good)
	}
	b.countSnap(outcome)

	updates := make([]persist.Update, 0, len(sess.IDs))
	for _, m := range b.movies {
		if sess.Covers(m.ID) {
			updates = append(updates, persist.Update{
				DeckID:  b.deckID,
				MovieID: m.ID,
				Title:   m.Title,
				Fun:     m.Fun,
				Good:    m.Good,
			})
		}
	}
	b.session = nil
	committer := b.committer
	notify := b.onCommitErr
	b.mu.Unlock()

	if committer == nil {
		return
	}
	// Fire and forget: the board is already idle and the next drag may
	// start while this runs.
	go b.commit(committer, notify, updates)
}

// Cancel handles pointer-cancel; per the interaction contract it commits
// the last known position exactly like Release.
func (b *Board) Cancel(p grid.Point) {
	b.Release(p)
}

func (b *Board) commit(committer persist.Committer, notify func(string, error), updates []persist.Update) {
	for _, u := range updates {
		if b.metrics != nil {
			b.metrics.Commits.Inc()
		}
		if err := committer.Commit(context.Background(), u); err != nil {
			b.logger.Printf("board: commit movie %s failed: %v", u.MovieID, err)
			if b.metrics != nil {
				b.metrics.CommitFailures.Inc()
			}
			if notify != nil {
				notify(u.MovieID, err)
			}
		}
	}
}

func (b *Board) applyToSession(fun, good float64) {
	for i := range b.movies {
		if b.session.Covers(b.movies[i].ID) {
			b.movies[i].Fun = fun
			b.movies[i].Good = good
		}
	}
}

func (b *Board) countDragStart(mode grid.Mode) {
	if b.metrics != nil {
		b.metrics.DragsStarted.WithLabelValues(string(mode)).Inc()
	}
}

func (b *Board) countSnap(outcome grid.Outcome) {
	if b.metrics != nil {
		b.metrics.Snaps.WithLabelValues(string(outcome)).Inc()
	}
}
