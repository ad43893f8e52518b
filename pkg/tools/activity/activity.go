// Package activity implements the activity search operation: one destination
// lookup plus one activity search per category, run concurrently and joined
// before returning.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// Category names used for search partitioning and itinerary theming.
const (
	Attractions = "attractions"
	Food        = "food"
	Outdoor     = "outdoor"
	Museums     = "museums"
	Nightlife   = "nightlife"
	Shopping    = "shopping"
)

// DefaultCategories is searched when no categories are requested.
var DefaultCategories = []string{Attractions, Food, Outdoor, Museums, Nightlife, Shopping}

const (
	// ErrorMessage is recorded per failed category and on a failed location lookup.
	ErrorMessage = "Failed to retrieve activities information"
	// LocationErrorMessage is stored on a degraded LocationInfo.
	LocationErrorMessage = "Failed to retrieve location information"

	maxListed = 3
)

// Provider performs the underlying destination and activity lookups.
type Provider interface {
	Location(ctx context.Context, location string) serpapi.Result[travel.LocationInfo]
	Activities(ctx context.Context, location, category string) serpapi.Result[[]travel.ActivityOption]
}

// Searcher runs activity searches against a Provider.
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

// Categories normalizes requested categories: lower-cased, trimmed, deduplicated,
// falling back to DefaultCategories when nothing usable is left.
func Categories(requested []string) []string {
	cats := lo.Uniq(lo.Compact(lo.Map(requested, func(c string, _ int) string {
		return strings.ToLower(strings.TrimSpace(c))
	})))
	if len(cats) == 0 {
		return append([]string(nil), DefaultCategories...)
	}
	return cats
}

// SearchActivities looks up the destination and searches every category
// concurrently. Each branch writes only its own slot, so no locking is needed;
// a failing branch leaves its category empty.
func (s *Searcher) SearchActivities(ctx context.Context, args SearchActivitiesArgs) (SearchActivitiesResponse, error) {
	location := strings.TrimSpace(args.Location)
	if location == "" {
		return SearchActivitiesResponse{}, travel.Invalid("location", "is required")
	}
	categories := Categories(args.Categories)

	s.logger.Info("searching activities", "location", location, "categories", categories)

	var (
		g       errgroup.Group
		locRes  serpapi.Result[travel.LocationInfo]
		results = make([]serpapi.Result[[]travel.ActivityOption], len(categories))
	)
	g.SetLimit(len(categories) + 1)

	g.Go(func() error {
		locRes = guard(s, func() serpapi.Result[travel.LocationInfo] { return s.provider.Location(ctx, location) }, "location")
		return nil
	})
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			results[i] = guard(s, func() serpapi.Result[[]travel.ActivityOption] {
				return s.provider.Activities(ctx, location, category)
			}, category)
			return nil
		})
	}
	_ = g.Wait()

	info := travel.LocationInfo{Location: location, Title: location, WebResults: []travel.WebResult{}}
	if locRes.OK() {
		info = locRes.Value
		if info.WebResults == nil {
			info.WebResults = []travel.WebResult{}
		}
	} else {
		s.logger.Warn("location lookup degraded", "location", location, "error", locRes.Err)
		info.Error = LocationErrorMessage
	}

	grouped := travel.ActivityResult{
		Location:   location,
		Categories: categories,
		Activities: make(map[string][]travel.ActivityOption, len(categories)),
	}
	for i, category := range categories {
		res := results[i]
		if !res.OK() {
			s.logger.Warn("activity search degraded", "location", location, "category", category, "error", res.Err)
			if grouped.Errors == nil {
				grouped.Errors = make(map[string]string)
			}
			grouped.Errors[category] = ErrorMessage
			grouped.Activities[category] = []travel.ActivityOption{}
			continue
		}
		grouped.Activities[category] = lo.Ternary(res.Value == nil, []travel.ActivityOption{}, res.Value)
	}

	return SearchActivitiesResponse{
		Message:      Format(info, grouped),
		LocationData: info,
		Activities:   grouped,
	}, nil
}

// guard runs one lookup of the fan-out. A provider panic becomes a failed result.
func guard[T any](s *Searcher, lookup func() serpapi.Result[T], what string) (res serpapi.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("activity lookup panicked", "lookup", what, "panic", r)
			res = serpapi.Result[T]{Err: &travel.ProviderError{Message: fmt.Sprintf("panic: %v", r)}}
		}
	}()
	return lookup()
}

// Format renders destination facts and up to three activities per category.
func Format(info travel.LocationInfo, r travel.ActivityResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Things to do in %s\n\n", r.Location)

	if info.Description != "" {
		fmt.Fprintf(&sb, "About %s: %s\n\n", r.Location, info.Description)
	}
	facts := lo.Compact([]string{
		lo.Ternary(info.Weather != "", "Weather: "+info.Weather, ""),
		lo.Ternary(info.Currency != "", "Currency: "+info.Currency, ""),
		lo.Ternary(info.Language != "", "Language: "+info.Language, ""),
	})
	if len(facts) > 0 {
		sb.WriteString(strings.Join(facts, "\n"))
		sb.WriteString("\n\n")
	}

	listed := 0
	for _, category := range r.Categories {
		acts := r.In(category)
		if len(acts) == 0 {
			continue
		}
		listed++
		fmt.Fprintf(&sb, "%s:\n", Title(category))
		for i, a := range lo.Slice(acts, 0, maxListed) {
			fmt.Fprintf(&sb, "   %d. %s", i+1, a.Title)
			if a.Rating > 0 {
				fmt.Fprintf(&sb, " - %.1f stars", a.Rating)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	if listed == 0 {
		fmt.Fprintf(&sb, "No activities found in %s.\n", r.Location)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Title upper-cases the first letter of a category name.
func Title(category string) string {
	if category == "" {
		return category
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
