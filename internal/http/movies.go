package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moviegrid/moviegrid/internal/domain"
	"github.com/moviegrid/moviegrid/internal/grid"
	"github.com/moviegrid/moviegrid/internal/persist"
	"github.com/moviegrid/moviegrid/internal/repository"
	"github.com/moviegrid/moviegrid/internal/score"
)

type movieAddRequest struct {
	Title string   `json:"title"`
	Fun   *float64 `json:"fun"`
	Good  *float64 `json:"good"`
}

// movieUpdateRequest is the commit payload: title is mandatory so a score
// write can never clear it; absent scores keep their stored values.
type movieUpdateRequest struct {
	Title string   `json:"title"`
	Fun   *float64 `json:"fun"`
	Good  *float64 `json:"good"`
}

type movieResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Fun       float64   `json:"fun"`
	Good      float64   `json:"good"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type movieListResponse struct {
	Items []movieResponse `json:"items"`
}

type groupItemResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type groupResponse struct {
	Fun       float64             `json:"fun"`
	Good      float64             `json:"good"`
	FunLabel  string              `json:"funLabel"`
	GoodLabel string              `json:"goodLabel"`
	Items     []groupItemResponse `json:"items"`
}

type groupListResponse struct {
	Groups []groupResponse `json:"groups"`
}

const defaultScore = 5.0

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if err := s.requireDeck(w, r, deckID); err != nil {
		return
	}

	movies, err := s.repo.Movies.ListByDeck(r.Context(), deckID)
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		items = append(items, toMovieResponse(m))
	}
	s.respondJSON(w, http.StatusOK, movieListResponse{Items: items})
}

func (s *Server) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	var req movieAddRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}

	// Out-of-range scores clamp rather than reject.
	fun, good := defaultScore, defaultScore
	if req.Fun != nil {
		fun = *req.Fun
	}
	if req.Good != nil {
		good = *req.Good
	}

	movie, err := s.repo.Movies.AddToDeck(r.Context(), deckID, repository.MovieAddParams{
		Title: req.Title,
		Fun:   fun,
		Good:  good,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("add movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add movie")
		return
	}
	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	movieID := chi.URLParam(r, "movieID")

	var req movieUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}

	current, err := s.repo.Movies.GetInDeck(r.Context(), deckID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("fetch movie for update error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}

	fun, good := current.Fun, current.Good
	if req.Fun != nil {
		fun = *req.Fun
	}
	if req.Good != nil {
		good = *req.Good
	}

	// Placements route through the persistence adapter.
	err = s.committer.Commit(r.Context(), persist.Update{
		DeckID:  deckID,
		MovieID: movieID,
		Title:   title,
		Fun:     fun,
		Good:    good,
	})
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("update movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}

	movie, err := s.repo.Movies.GetInDeck(r.Context(), deckID, movieID)
	if err != nil {
		s.logger.Printf("fetch movie after update error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleRemoveMovie(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	movieID := chi.URLParam(r, "movieID")

	if err := s.repo.Movies.RemoveFromDeck(r.Context(), deckID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("remove movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetGroups returns the render-ready co-location groups for a deck,
// derived fresh from the stored scores.
func (s *Server) handleGetGroups(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if err := s.requireDeck(w, r, deckID); err != nil {
		return
	}

	movies, err := s.repo.Movies.ListByDeck(r.Context(), deckID)
	if err != nil {
		s.logger.Printf("list movies for groups error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to derive groups")
		return
	}

	groups := grid.Groups(movies)
	resp := groupListResponse{Groups: make([]groupResponse, 0, len(groups))}
	for _, g := range groups {
		gr := groupResponse{
			Fun:       g.Fun,
			Good:      g.Good,
			FunLabel:  score.Format(g.Fun),
			GoodLabel: score.Format(g.Good),
			Items:     make([]groupItemResponse, 0, len(g.Items)),
		}
		for _, it := range g.Items {
			gr.Items = append(gr.Items, groupItemResponse{ID: it.ID, Title: it.Title})
		}
		resp.Groups = append(resp.Groups, gr)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// requireDeck answers 404 when the deck does not exist and reports back
// with a non-nil error so handlers can bail out.
func (s *Server) requireDeck(w http.ResponseWriter, r *http.Request, deckID string) error {
	_, err := s.repo.Decks.GetByID(r.Context(), deckID)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	} else {
		s.logger.Printf("fetch deck error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch deck")
	}
	return err
}

func toMovieResponse(m domain.Movie) movieResponse {
	return movieResponse{
		ID:        m.ID,
		Title:     m.Title,
		Fun:       m.Fun,
		Good:      m.Good,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
