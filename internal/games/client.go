package games

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrGameNotFound indicates the upstream catalog answered non-OK for the id.
var ErrGameNotFound = errors.New("game not found")

// DefaultBaseURL is the public free-to-play games API.
const DefaultBaseURL = "https://www.freetogame.com/api"

// Client fetches free-to-play game listings from the upstream catalog.
// Responses are relayed as-is; the payload shape belongs to the upstream.
type Client interface {
	ListGames(ctx context.Context) (json.RawMessage, error)
	GetGame(ctx context.Context, id string) (json.RawMessage, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) ListGames(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.get(ctx, c.baseURL+"/games")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return readPayload(resp.Body)
}

func (c *httpClient) GetGame(ctx context.Context, id string) (json.RawMessage, error) {
	resp, err := c.get(ctx, c.baseURL+"/game?id="+url.QueryEscape(id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGameNotFound
	}
	return readPayload(resp.Body)
}

func (c *httpClient) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	return resp, nil
}

func readPayload(body io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(data) {
		return nil, errors.New("upstream returned invalid json")
	}
	return json.RawMessage(data), nil
}
