package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client is a typed client for the User Tasks Bridge REST API. All
// requests are scoped to one tenant and authenticated with the bearer
// token supplied at construction; the client never refreshes tokens.
type Client struct {
	baseURL     string
	tenantID    string
	accessToken string
	userAgent   string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewClient creates a new bridge client and eagerly verifies
// connectivity and credentials against the tenant's /init endpoint, so
// a bad URL or token fails at startup rather than at first use.
func NewClient(ctx context.Context, baseURL, tenantID, accessToken string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("bridge URL is required")
	}
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	options := clientOptions{
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tenantID:    tenantID,
		accessToken: accessToken,
		userAgent:   options.userAgent,
		httpClient:  httpClient,
		logger:      logger,
	}

	if _, err := client.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to user tasks bridge: %w", err)
	}

	return client, nil
}

// Init calls the tenant's /init endpoint and returns its configuration
// discovery payload. NewClient calls it once as a connectivity check.
func (c *Client) Init(ctx context.Context) (*InitResponse, error) {
	var info InitResponse
	if err := c.doRequest(ctx, http.MethodGet, "/init", "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// doRequest performs one authenticated HTTP request against
// {baseURL}/{tenantID}{path}. A non-nil body is JSON-encoded; a non-nil
// out has the JSON response decoded into it. 204 responses and
// responses without a JSON content type leave out untouched. Non-2xx
// responses are classified into the package's typed errors.
func (c *Client) doRequest(ctx context.Context, method, path, rawQuery string, body, out any) error {
	requestURL := fmt.Sprintf("%s/%s%s", c.baseURL, c.tenantID, path)
	if rawQuery != "" {
		requestURL += "?" + rawQuery
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making bridge API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read errors degrade to an empty body, which classify turns
		// into an "Unknown error" message of the right kind.
		respBody, _ := io.ReadAll(resp.Body)
		return classify(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
