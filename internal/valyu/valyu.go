// Package valyu is a minimal client for the Valyu search API, covering the
// /deepsearch and /answer endpoints.
package valyu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultBaseURL = "https://api.valyu.ai/v1"

type SearchType string

const (
	SearchTypeAll         SearchType = "all"
	SearchTypeWeb         SearchType = "web"
	SearchTypeProprietary SearchType = "proprietary"
	SearchTypeNews        SearchType = "news"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("VALYU_API_KEY is required: set it in the environment or pass it in config")
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   120 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type SearchRequest struct {
	Query              string     `json:"query"`
	SearchType         SearchType `json:"search_type,omitempty"`
	MaxNumResults      int        `json:"max_num_results,omitempty"`
	MaxPrice           float64    `json:"max_price,omitempty"`
	RelevanceThreshold float64    `json:"relevance_threshold,omitempty"`
	Category           string     `json:"category,omitempty"`
	IncludedSources    []string   `json:"included_sources,omitempty"`
	ExcludedSources    []string   `json:"excluded_sources,omitempty"`
	ResponseLength     string     `json:"response_length,omitempty"`
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Content any    `json:"content"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`

	// Raw is the unparsed response body. Tools pass it through so the
	// model sees everything the API returned, not just the typed fields.
	Raw []byte `json:"-"`
}

// DeepSearch runs one query against /deepsearch.
func (c *Client) DeepSearch(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	raw, err := c.post(ctx, "/deepsearch", req)
	if err != nil {
		return nil, err
	}
	resp := &SearchResponse{Raw: raw}
	if err := json.Unmarshal(raw, resp); err != nil {
		return nil, fmt.Errorf("parsing deepsearch response: %w", err)
	}
	return resp, nil
}

type AnswerRequest struct {
	Query      string     `json:"query"`
	SearchType SearchType `json:"search_type,omitempty"`
	MaxPrice   float64    `json:"max_price,omitempty"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
	Raw    []byte `json:"-"`
}

// Answer asks /answer for a synthesized response with citations.
func (c *Client) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	raw, err := c.post(ctx, "/answer", req)
	if err != nil {
		return nil, err
	}
	resp := &AnswerResponse{Raw: raw}
	if err := json.Unmarshal(raw, resp); err != nil {
		return nil, fmt.Errorf("parsing answer response: %w", err)
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("valyu request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading valyu response: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		snippet := raw
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, fmt.Errorf("valyu API error %d: %s", httpResp.StatusCode, snippet)
	}
	return raw, nil
}
