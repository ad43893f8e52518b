// Package search answers general travel questions (visas, transport, local
// customs) with web results.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// ErrorMessage is stored on a degraded response.
const ErrorMessage = "Failed to retrieve search results"

// Provider performs the underlying web search.
type Provider interface {
	Web(ctx context.Context, query string) serpapi.Result[[]travel.WebResult]
}

// Searcher runs web searches against a Provider.
type Searcher struct {
	provider Provider
	logger   *slog.Logger
}

// New creates a Searcher.
func New(provider Provider, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{provider: provider, logger: logger}
}

// SearchWeb runs the query. Provider failures degrade to an empty result.
func (s *Searcher) SearchWeb(ctx context.Context, args SearchWebArgs) (SearchWebResponse, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return SearchWebResponse{}, travel.Invalid("query", "is required")
	}
	s.logger.Info("searching the web", "query", query)

	resp := SearchWebResponse{Results: []travel.WebResult{}}
	res := s.provider.Web(ctx, query)
	switch {
	case !res.OK():
		s.logger.Warn("web search degraded", "query", query, "error", res.Err)
		resp.Error = ErrorMessage
		resp.Message = fmt.Sprintf("Couldn't search for %q right now.", query)
		return resp, nil
	case res.Value != nil:
		resp.Results = res.Value
	}

	if len(resp.Results) == 0 {
		resp.Message = fmt.Sprintf("No results for %q.", query)
		return resp, nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Results for %q:\n", query)
	for i, r := range resp.Results {
		fmt.Fprintf(&sb, "  %d. %s", i+1, r.Title)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, " - %s", r.Snippet)
		}
		sb.WriteString("\n")
	}
	resp.Message = sb.String()
	return resp, nil
}
