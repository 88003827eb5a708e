package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

var (
	ErrEmptyWord = errors.New("no word provided")
	// ErrUpstream скрывает детали ответа внешнего API
	ErrUpstream = errors.New("failed to fetch definition")
)

type Looker interface {
	Lookup(ctx context.Context, word string) (json.RawMessage, error)
}

// Client проксирует запросы к публичному словарному API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "dictionary_client"),
	}
}

// Lookup возвращает JSON внешнего API без изменений
func (c *Client) Lookup(ctx context.Context, word string) (json.RawMessage, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Debug("upstream rejected lookup", "word", word, "status", resp.StatusCode)
		return nil, ErrUpstream
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrUpstream)
	}

	return json.RawMessage(body), nil
}
