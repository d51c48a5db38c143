// Package textdb stores the submission blob in a remote key-value text
// service addressed by a bucket key.
//
// The service has two endpoints, both plain GETs:
//
//	GET {base}/{key}                        returns the stored text
//	GET {base}/update/?key={key}&value=...  replaces it
package textdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/survey/internal/logging"
)

// DefaultBaseURL is the public service endpoint.
const DefaultBaseURL = "https://textdb.online"

// maxBlob caps how much of a response is read.
const maxBlob = 8 << 20

// Store implements ports.BlobStore over the text service.
type Store struct {
	baseURL    string
	key        string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Store)

// WithBaseURL points the store at another deployment (or a test server).
func WithBaseURL(u string) Option {
	return func(s *Store) {
		if u != "" {
			s.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store for the bucket identified by key.
// The key is the only credential the service knows.
func New(key string, opts ...Option) (*Store, error) {
	if key == "" {
		return nil, fmt.Errorf("textdb key is required")
	}
	s := &Store{
		baseURL:    DefaultBaseURL,
		key:        key,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get fetches the stored text. An empty body or a 404 is an empty store.
func (s *Store) Get(ctx context.Context) ([]byte, error) {
	endpoint := s.baseURL + "/" + url.PathEscape(s.key)
	body, status, err := s.do(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status/100 != 2 {
		return nil, fmt.Errorf("textdb fetch failed with status %d", status)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	return body, nil
}

// Put replaces the stored text.
func (s *Store) Put(ctx context.Context, data []byte) error {
	q := url.Values{}
	q.Set("key", s.key)
	q.Set("value", string(data))
	endpoint := s.baseURL + "/update/?" + q.Encode()

	_, status, err := s.do(ctx, endpoint)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("textdb update failed with status %d", status)
	}
	s.logger.Debug("textdb blob updated", "bytes", len(data))
	return nil
}

func (s *Store) do(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create textdb request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute textdb request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBlob))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read textdb response: %w", err)
	}
	return body, resp.StatusCode, nil
}
