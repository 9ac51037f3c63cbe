// Package tools exposes Valyu search domains as agent tools. Each tool is a
// single /deepsearch call pinned to the datasets for its domain.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"valyuagent/internal/valyu"
)

// Options tune a search tool at construction time. Zero values fall back to
// the per-domain defaults.
type Options struct {
	SearchType         valyu.SearchType
	MaxResults         int
	MaxPrice           float64
	RelevanceThreshold float64
	Category           string
	IncludedSources    []string
	ExcludedSources    []string
}

type searchTool struct {
	client      *valyu.Client
	name        string
	description string
	opts        Options

	// web_search additionally accepts per-call source filters; the domain
	// tools keep their catalogs fixed.
	perCallFilters bool
}

func (t *searchTool) Name() string        { return t.name }
func (t *searchTool) Description() string { return t.description }

func (t *searchTool) InputSchema() any {
	props := map[string]any{
		"query": map[string]any{
			"type":        "string",
			"description": "Natural language query. The API handles natural language - use simple, clear queries.",
		},
	}
	required := []string{"query"}
	if t.perCallFilters {
		props["included_sources"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Restrict search to specific domains (e.g. ['nature.com', 'arxiv.org'])",
		}
		props["excluded_sources"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Exclude specific domains from results (e.g. ['reddit.com'])",
		}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func (t *searchTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Query           string   `json:"query"`
		IncludedSources []string `json:"included_sources"`
		ExcludedSources []string `json:"excluded_sources"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing %s input: %w", t.name, err)
	}
	if args.Query == "" {
		return "", fmt.Errorf("query is required")
	}

	req := valyu.SearchRequest{
		Query:              args.Query,
		SearchType:         t.opts.SearchType,
		MaxNumResults:      t.opts.MaxResults,
		MaxPrice:           t.opts.MaxPrice,
		RelevanceThreshold: t.opts.RelevanceThreshold,
		Category:           t.opts.Category,
		IncludedSources:    t.opts.IncludedSources,
		ExcludedSources:    t.opts.ExcludedSources,
	}

	// Per-call filters take priority over construction-time ones.
	if t.perCallFilters {
		if len(args.IncludedSources) > 0 {
			req.IncludedSources = args.IncludedSources
		}
		if len(args.ExcludedSources) > 0 {
			req.ExcludedSources = args.ExcludedSources
		}
	}

	slog.Debug("valyu search", "tool", t.name, "query", args.Query)

	resp, err := t.client.DeepSearch(ctx, req)
	if err != nil {
		return "", err
	}

	slog.Debug("valyu search done", "tool", t.name, "results", len(resp.Results))
	return truncate(resp.Raw), nil
}

func newSearchTool(client *valyu.Client, name, description string, defaults Options, opts Options) *searchTool {
	if opts.SearchType == "" {
		opts.SearchType = defaults.SearchType
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = defaults.MaxResults
	}
	if opts.IncludedSources == nil {
		opts.IncludedSources = defaults.IncludedSources
	}
	return &searchTool{client: client, name: name, description: description, opts: opts}
}

// NewWebSearch searches the web for current information, news, and articles.
func NewWebSearch(client *valyu.Client, opts Options) *searchTool {
	t := newSearchTool(client, "web_search",
		"Search the web for current information, news, and articles. The API handles natural language - use simple, clear queries.",
		Options{SearchType: valyu.SearchTypeAll, MaxResults: 5}, opts)
	t.perCallFilters = true
	return t
}

// NewFinanceSearch searches market data, filings, and economic indicators.
func NewFinanceSearch(client *valyu.Client, opts Options) *searchTool {
	return newSearchTool(client, "finance_search",
		"Search financial data: stock prices, earnings, balance sheets, income statements, cash flows, SEC filings, dividends, insider transactions, crypto, forex, and economic indicators. The API handles natural language - ask your full question in one query per topic.",
		Options{SearchType: valyu.SearchTypeProprietary, MaxResults: 5, IncludedSources: financeSources}, opts)
}

// NewPaperSearch searches academic papers.
func NewPaperSearch(client *valyu.Client, opts Options) *searchTool {
	return newSearchTool(client, "paper_search",
		"Search academic papers from arXiv, PubMed, bioRxiv, and medRxiv. The API handles semantic search - use simple natural language, not keyword stuffing.",
		Options{SearchType: valyu.SearchTypeProprietary, MaxResults: 5, IncludedSources: paperSources}, opts)
}

// NewBioSearch searches biomedical literature and clinical data.
func NewBioSearch(client *valyu.Client, opts Options) *searchTool {
	return newSearchTool(client, "bio_search",
		"Search biomedical literature from PubMed, clinical trials, and FDA drug labels. The API handles natural language - use simple queries.",
		Options{SearchType: valyu.SearchTypeProprietary, MaxResults: 5, IncludedSources: bioSources}, opts)
}

// NewPatentSearch searches patents and intellectual property.
func NewPatentSearch(client *valyu.Client, opts Options) *searchTool {
	return newSearchTool(client, "patent_search",
		"Search patent databases for inventions and intellectual property. The API handles natural language - no need for patent numbers or classification codes.",
		Options{SearchType: valyu.SearchTypeProprietary, MaxResults: 5, IncludedSources: patentSources}, opts)
}

// NewSECSearch searches SEC filings.
func NewSECSearch(client *valyu.Client, opts Options) *searchTool {
	return newSearchTool(client, "sec_search",
		"Search SEC filings (10-K, 10-Q, 8-K, proxy statements). Use simple natural language with company name and filing type - no accession numbers or technical syntax needed.",
		Options{SearchType: valyu.SearchTypeProprietary, MaxResults: 5, IncludedSources: secSources}, opts)
}

// NewEconomicsSearch searches BLS, FRED, and World Bank data.
func NewEconomicsSearch(client *valyu.Client, opts Options) *searchTool {
	return newSearchTool(client, "economics_search",
		"Search economic data from BLS, FRED, World Bank. The API handles natural language - no need for series IDs or technical codes.",
		Options{SearchType: valyu.SearchTypeProprietary, MaxResults: 3, IncludedSources: economicsSources}, opts)
}
