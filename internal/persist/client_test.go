package persist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(srv.URL, 2*time.Second, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client
}

func TestCommitSendsPatchWithNormalizedScores(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody commitPayload

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Commit(context.Background(), Update{
		DeckID:  "deck-1",
		MovieID: "movie-1",
		Title:   "Casablanca",
		Fun:     11.04,
		Good:    7.35,
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if want := "/decks/deck-1/movies/movie-1"; gotPath != want {
		t.Errorf("path = %s, want %s", gotPath, want)
	}
	if gotBody.Title != "Casablanca" {
		t.Errorf("title = %q", gotBody.Title)
	}
	if gotBody.Fun != 10 {
		t.Errorf("fun = %v, want clamped 10", gotBody.Fun)
	}
	if gotBody.Good != 7.4 {
		t.Errorf("good = %v, want rounded 7.4", gotBody.Good)
	}
}

func TestCommitNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.Commit(context.Background(), Update{
		DeckID:  "deck-1",
		MovieID: "gone",
		Title:   "Gone",
		Fun:     5,
		Good:    5,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCommitServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.Commit(context.Background(), Update{
		DeckID:  "deck-1",
		MovieID: "movie-1",
		Title:   "Heat",
		Fun:     5,
		Good:    5,
	})
	if err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestCommitRefusesEmptyTitle(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := client.Commit(context.Background(), Update{
		DeckID:  "deck-1",
		MovieID: "movie-1",
		Fun:     5,
		Good:    5,
	})
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	if called {
		t.Fatal("request should not have been sent")
	}
}

func TestCommitHonorsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.Commit(ctx, Update{
		DeckID:  "deck-1",
		MovieID: "movie-1",
		Title:   "Slow",
		Fun:     5,
		Good:    5,
	})
	if err == nil {
		t.Fatal("expected context deadline error")
	}
}
