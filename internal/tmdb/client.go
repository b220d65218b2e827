package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/streamscout/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "streamscout/1.0"

	// appendProviders asks the catalog to inline the watch-providers
	// block on content-by-id responses.
	appendProviders = "watch/providers"
)

// Client implements domain.CatalogClient against the TMDB v3 API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog client. A missing bearer token is a
// configuration error reported here, before any network attempt.
func NewClient(baseURL, token string, logger *slog.Logger) (*Client, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}, nil
}

// doRequest performs one authenticated GET. No retries: a failed round
// trip comes back as a *domain.FetchError and the caller decides.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "error", err)
		return nil, classifyTransportErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FailureOther, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb status error", "status", resp.StatusCode)
		return nil, &domain.FetchError{Kind: domain.FailureStatus, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	return body, nil
}

// classifyTransportErr maps a transport failure to a typed FetchError
func classifyTransportErr(err error) *domain.FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.FetchError{Kind: domain.FailureTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.FetchError{Kind: domain.FailureTimeout, Err: err}
	}
	return &domain.FetchError{Kind: domain.FailureOther, Err: err}
}

// SearchMulti searches movies and TV shows by free text
func (c *Client) SearchMulti(ctx context.Context, query string) ([]domain.CatalogHit, error) {
	params := url.Values{}
	params.Set("query", query)

	body, err := c.doRequest(ctx, "/search/multi", params)
	if err != nil {
		return nil, err
	}

	var resp searchMultiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("tmdb parse error", "error", err, "bodyLen", len(body))
		return nil, &domain.FetchError{Kind: domain.FailureOther, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	return mapHits(resp.Results), nil
}

// GetMovie fetches movie detail with the watch-providers block appended
func (c *Client) GetMovie(ctx context.Context, id int) (*domain.CatalogContent, error) {
	return c.getContent(ctx, fmt.Sprintf("/movie/%d", id))
}

// GetShow fetches TV show detail with the watch-providers block appended
func (c *Client) GetShow(ctx context.Context, id int) (*domain.CatalogContent, error) {
	return c.getContent(ctx, fmt.Sprintf("/tv/%d", id))
}

func (c *Client) getContent(ctx context.Context, path string) (*domain.CatalogContent, error) {
	params := url.Values{}
	params.Set("append_to_response", appendProviders)

	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var resp contentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("tmdb parse error", "error", err, "bodyLen", len(body))
		return nil, &domain.FetchError{Kind: domain.FailureOther, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	return mapContent(&resp), nil
}
