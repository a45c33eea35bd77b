package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moviegrid/moviegrid/internal/repository"
)

func BenchmarkHandleGetGroups(b *testing.B) {
	srv := buildTestServer(b)

	deck, err := srv.repo.Decks.Create(context.Background(), "Benchmark Deck")
	if err != nil {
		b.Fatalf("create deck: %v", err)
	}
	for i := 0; i < 50; i++ {
		_, err := srv.repo.Movies.AddToDeck(context.Background(), deck.ID, repository.MovieAddParams{
			Title: fmt.Sprintf("Movie %02d", i),
			Fun:   float64(i % 11),
			Good:  float64((i * 3) % 11),
		})
		if err != nil {
			b.Fatalf("add movie: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/decks/"+deck.ID+"/groups", nil)
		rec := httptest.NewRecorder()

		srv.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
