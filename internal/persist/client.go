package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moviegrid/moviegrid/internal/score"
)

// HTTPClient implements Committer against the REST backend.
type HTTPClient struct {
	baseURL *url.URL
	client  *http.Client
	logger  *log.Logger
}

// NewHTTPClient constructs an HTTP-backed committer.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

type commitPayload struct {
	Title string  `json:"title"`
	Fun   float64 `json:"fun"`
	Good  float64 `json:"good"`
}

// Commit PATCHes the movie's deck-scoped placement. Scores are normalized
// once more at the wire boundary.
func (c *HTTPClient) Commit(ctx context.Context, u Update) error {
	if u.Title == "" {
		return fmt.Errorf("persist: refusing to commit %s without a title", u.MovieID)
	}

	rel := &url.URL{Path: fmt.Sprintf("/decks/%s/movies/%s", url.PathEscape(u.DeckID), url.PathEscape(u.MovieID))}
	endpoint := c.baseURL.ResolveReference(rel)

	payload, err := json.Marshal(commitPayload{
		Title: u.Title,
		Fun:   score.Normalize(u.Fun),
		Good:  score.Normalize(u.Good),
	})
	if err != nil {
		return fmt.Errorf("encode commit payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		c.logger.Printf("persist: unexpected status %d committing movie %s", resp.StatusCode, u.MovieID)
		return fmt.Errorf("persist: backend returned %d", resp.StatusCode)
	}
}
