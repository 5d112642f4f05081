package docapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestsPerSecond caps the client-side request rate.
	requestsPerSecond = 5
)

// Ensure Client implements the interface.
var _ driven.DocClient = (*Client)(nil)

// Config holds the remote API endpoint and credentials.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.org".
	BaseURL string

	// TokenURL is the OAuth2 token endpoint. Empty disables auth
	// (useful against local fixtures).
	TokenURL string

	// ClientID and ClientSecret are the OAuth2 client credentials.
	ClientID     string
	ClientSecret string
}

// Client fetches hypermedia documents over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new API client. With a token URL configured, all
// requests carry an OAuth2 client-credentials bearer token.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required: %w", domain.ErrInvalidInput)
	}

	httpClient := &http.Client{Timeout: DefaultTimeout}
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(context.Background())
		httpClient.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}, nil
}

// FetchOne fetches a single document by GUID.
func (c *Client) FetchOne(ctx context.Context, guid string) (*domain.Document, error) {
	var wire wireDoc
	if err := c.get(ctx, c.baseURL+"/docs/"+url.PathEscape(guid), &wire); err != nil {
		return nil, err
	}
	doc := wire.toDomain()
	if doc.GUID == "" {
		return nil, fmt.Errorf("doc %s: empty result: %w", guid, domain.ErrFetchFailed)
	}
	return &doc, nil
}

// FetchMany fetches a batch of documents matching the query.
func (c *Client) FetchMany(ctx context.Context, q domain.Query) ([]domain.Document, error) {
	params := url.Values{}
	if q.Profile != "" {
		params.Set("profile", q.Profile)
	}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}
	if q.Text != "" {
		params.Set("text", q.Text)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := c.baseURL + "/docs"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var wire wireCollection
	if err := c.get(ctx, endpoint, &wire); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(wire.Items))
	for _, item := range wire.Items {
		docs = append(docs, item.toDomain())
	}
	return docs, nil
}

// get performs a rate-limited GET and decodes the JSON body.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrFetchFailed, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", domain.ErrFetchFailed, resp.Status, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrFetchFailed, err)
	}
	return nil
}
