package dashtec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for failure cases
var (
	ErrInsecureBaseURL   = errors.New("dashtec base URL must use https")
	ErrRequestFailed     = errors.New("request failed")
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrMalformedResponse = errors.New("malformed response")

	errNullBody     = errors.New("body is null")
	errTrailingData = errors.New("unexpected data after the response object")
	errNotAnObject  = errors.New("not an object")
)

const (
	DefaultBaseURL   = "https://dashtec.xyz"
	DefaultUserAgent = "Aztec Validator Stats Collector"
	DefaultTimeout   = 30 * time.Second

	searchPath = "/api/search"
)

// Client represents a dashtec search API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures the Client
type Option func(*Client)

// WithUserAgent overrides the User-Agent sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a dashtec client that talks to baseURL through httpClient.
// Only https base URLs are accepted.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInsecureBaseURL, baseURL)
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Candidate is a single validator entry of a search response.
// Every field is optional; numbers are decoded as json.Number.
type Candidate map[string]any

// SearchResult represents the search endpoint response
type SearchResult struct {
	Validators []Candidate `json:"validators"`
}

// Search looks up a validator address. Exactly one request is made; failures are
// reported as *FetchError.
func (c *Client) Search(ctx context.Context, address string) (SearchResult, error) {
	start := time.Now()

	query := url.Values{"q": {address}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+query.Encode(), nil)
	if err != nil {
		observeSearchErr(err, start)
		return SearchResult{}, newFetchError(ErrRequestFailed, err.Error(), err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observeSearchErr(err, start)
		return SearchResult{}, newFetchError(ErrRequestFailed, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observeSearchCode(resp.StatusCode, start)
		return SearchResult{}, &FetchError{
			kind:       ErrUnexpectedStatus,
			reason:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, reasonPhrase(resp)),
			StatusCode: resp.StatusCode,
		}
	}

	result, err := decodeSearchResult(resp.Body)
	if err != nil {
		observeSearch(statusMalformed, start)
		return SearchResult{}, newFetchError(ErrMalformedResponse, "decoding response: "+err.Error(), err)
	}

	observeSearchCode(resp.StatusCode, start)
	return result, nil
}

// decodeSearchResult accepts exactly one JSON object whose validators are objects
func decodeSearchResult(body io.Reader) (SearchResult, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var result *SearchResult
	if err := dec.Decode(&result); err != nil {
		return SearchResult{}, err
	}
	if result == nil {
		return SearchResult{}, errNullBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return SearchResult{}, errTrailingData
	}

	for i, c := range result.Validators {
		if c == nil {
			return SearchResult{}, fmt.Errorf("validators[%d]: %w", i, errNotAnObject)
		}
	}
	return *result, nil
}

// reasonPhrase returns the phrase of the status line, or the standard text when the server sent none
func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); phrase != "" {
		return phrase
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "status code " + code
}
