// backend-mock is an in-memory stand-in for the score-commit backend,
// useful for exercising the HTTP persistence adapter without a database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
)

type placement struct {
	Title string  `json:"title"`
	Fun   float64 `json:"fun"`
	Good  float64 `json:"good"`
}

type server struct {
	mu     sync.Mutex
	placed map[string]placement // key: deckID/movieID
	strict bool
}

func main() {
	var (
		port   = flag.String("port", "9099", "port to listen on")
		strict = flag.Bool("strict", false, "404 for movies never committed before")
	)
	flag.Parse()

	srv := &server{placed: make(map[string]placement), strict: *strict}

	mux := http.NewServeMux()
	mux.HandleFunc("/decks/", srv.handle)

	addr := ":" + *port
	log.Printf("mock backend listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func (s *server) handle(w http.ResponseWriter, r *http.Request) {
	// Expected shape: /decks/{deckID}/movies/{movieID}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[0] != "decks" || parts[2] != "movies" {
		http.NotFound(w, r)
		return
	}
	key := fmt.Sprintf("%s/%s", parts[1], parts[3])

	switch r.Method {
	case http.MethodPatch:
		var p placement
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if p.Title == "" {
			http.Error(w, "title is required", http.StatusUnprocessableEntity)
			return
		}
		s.mu.Lock()
		_, known := s.placed[key]
		if s.strict && !known {
			s.mu.Unlock()
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		s.placed[key] = p
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	case http.MethodGet:
		s.mu.Lock()
		p, ok := s.placed[key]
		s.mu.Unlock()
		if !ok {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}
