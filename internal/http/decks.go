package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moviegrid/moviegrid/internal/domain"
	"github.com/moviegrid/moviegrid/internal/repository"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type deckRequest struct {
	Name string `json:"name"`
}

type deckResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MovieCount int64     `json:"movieCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type deckListResponse struct {
	Items []deckResponse `json:"items"`
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.repo.Decks.List(r.Context())
	if err != nil {
		s.logger.Printf("list decks error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list decks")
		return
	}

	items := make([]deckResponse, 0, len(decks))
	for _, deck := range decks {
		items = append(items, toDeckResponse(deck))
	}
	s.respondJSON(w, http.StatusOK, deckListResponse{Items: items})
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}

	deck, err := s.repo.Decks.Create(r.Context(), req.Name)
	if err != nil {
		s.logger.Printf("create deck error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create deck")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/decks/%s", deck.ID))
	s.respondJSON(w, http.StatusCreated, toDeckResponse(deck))
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.repo.Decks.GetByID(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("get deck error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch deck")
		return
	}
	s.respondJSON(w, http.StatusOK, toDeckResponse(deck))
}

func (s *Server) handleRenameDeck(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}

	deck, err := s.repo.Decks.Rename(r.Context(), chi.URLParam(r, "deckID"), req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("rename deck error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to rename deck")
		return
	}
	s.respondJSON(w, http.StatusOK, toDeckResponse(deck))
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	err := s.repo.Decks.Delete(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("delete deck error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete deck")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDeckResponse(deck domain.Deck) deckResponse {
	return deckResponse{
		ID:         deck.ID,
		Name:       deck.Name,
		MovieCount: deck.MovieCount,
		CreatedAt:  deck.CreatedAt,
		UpdatedAt:  deck.UpdatedAt,
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}
