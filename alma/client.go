package alma

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/mathieugrimault/vufind/cache"
	"github.com/mathieugrimault/vufind/datefmt"
)

// Client wraps the Alma REST/XML API
type Client struct {
	baseURL            string
	apiKey             string
	httpClient         *http.Client
	logger             zerolog.Logger
	itemLimit          int
	fanOutLimit        int
	inventoryTypes     []string
	digitalDeliveryURL string
	dates              *datefmt.Normalizer
	store              cache.Store
}

// NewClient creates a new Alma client
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	options := defaultClientOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		apiKey:             apiKey,
		httpClient:         &http.Client{Timeout: options.timeout},
		logger:             logger,
		itemLimit:          options.itemLimit,
		fanOutLimit:        options.fanOutLimit,
		inventoryTypes:     options.inventoryTypes,
		digitalDeliveryURL: options.digitalDeliveryURL,
		dates:              options.dates,
		store:              options.store,
	}, nil
}

// fetchOptions describes one API call issued through fetch.
type fetchOptions struct {
	method     string
	getParams  url.Values
	postParams url.Values
	rawBody    []byte
	headers    map[string]string
	// allowedStatuses are non-2xx codes the caller treats as
	// non-fatal; the parsed body is returned instead of an error.
	allowedStatuses []int
}

// fetch issues one API call and normalizes the outcome into a parsed
// document or a classified failure. The API key is injected into the
// GET parameters unless the caller already set one. Relative paths are
// joined to the configured base URL; absolute URLs pass through.
//
// The returned status code lets callers that declared allowed error
// statuses distinguish them from real success.
func (c *Client) fetch(ctx context.Context, path string, opts fetchOptions) (*etree.Document, int, error) {
	// Copy the caller's parameters before injecting the API key so the
	// gateway never mutates arguments it does not own.
	params := url.Values{}
	for key, values := range opts.getParams {
		params[key] = values
	}
	if params.Get("apikey") == "" {
		params.Set("apikey", c.apiKey)
	}

	requestURL := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		requestURL = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	query := params.Encode()
	requestURL += "?" + query

	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	contentType := ""
	switch {
	case len(opts.rawBody) > 0:
		body = bytes.NewReader(opts.rawBody)
		contentType = "application/xml"
	case len(opts.postParams) > 0:
		body = strings.NewReader(opts.postParams.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, 0, &TransportError{Path: path, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range opts.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", method).
			Str("path", path).
			Dur("elapsed", elapsed).
			Msg("Alma request failed")
		return nil, 0, &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Path: path, Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Str("query", query).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Int("body_bytes", len(raw)).
		Msg("Alma API request")
	c.logger.Trace().Bytes("body", raw).Msg("Alma API response body")

	if resp.StatusCode >= 500 {
		return nil, resp.StatusCode, &ServerError{Status: resp.StatusCode, Path: path}
	}

	// DELETE and similar calls legitimately return no content.
	if resp.StatusCode == http.StatusNoContent {
		return etree.NewDocument(), resp.StatusCode, nil
	}

	// Alma declares an attribute named "xmlns" on some elements, which
	// collides with the namespace declaration; rename the token before
	// parsing so both survive.
	raw = bytes.ReplaceAll(raw, []byte("xmlns="), []byte("ns="))

	doc := etree.NewDocument()
	if parseErr := doc.ReadFromBytes(raw); parseErr != nil {
		return nil, resp.StatusCode, &ParseError{Path: path, Err: parseErr}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if success || c.statusAllowed(resp.StatusCode, opts.allowedStatuses) {
		if success && doc.Root() == nil {
			c.logger.Error().
				Str("path", path).
				Int("status", resp.StatusCode).
				Msg("Empty response body on success status")
			return nil, resp.StatusCode, &ServerError{Status: resp.StatusCode, Path: path}
		}
		return doc, resp.StatusCode, nil
	}

	message := NoErrorMessage
	if elem := doc.FindElement("//errorList/error/errorMessage"); elem != nil && elem.Text() != "" {
		message = elem.Text()
	}

	c.logger.Error().
		Str("method", method).
		Str("url", requestURL).
		Str("query", query).
		Int("status", resp.StatusCode).
		Str("message", message).
		Msg("Alma API returned an error")

	return nil, resp.StatusCode, &BusinessError{
		Status:  resp.StatusCode,
		Message: message,
		Path:    path,
	}
}

// statusAllowed reports whether status is in the caller's allowed set.
func (c *Client) statusAllowed(status int, allowed []int) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

// TestConnection verifies the configured base URL and API key by
// fetching the general configuration endpoint.
func (c *Client) TestConnection(ctx context.Context) error {
	_, _, err := c.fetch(ctx, "/conf/general", fetchOptions{})
	return err
}
