// Package hotel implements the hotel search operation.
package hotel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

const (
	// DefaultGuests is used when no guest count is given.
	DefaultGuests = 2
	// DefaultCurrency is used when no currency is requested.
	DefaultCurrency = "USD"
	// ErrorMessage is stored on a degraded HotelResult.
	ErrorMessage = "Failed to retrieve hotel information"

	maxAmenities    = 3
	noAmenitiesText = "Amenities information not available"
)

// Provider performs the underlying hotel lookup.
type Provider interface {
	Hotels(ctx context.Context, q travel.HotelQuery) serpapi.Result[[]travel.HotelOption]
}

// Searcher runs hotel searches against a Provider.
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

// Validate checks args without touching the network. A zero guest count means
// the default; negative counts are rejected.
func Validate(args SearchHotelsArgs) (travel.HotelQuery, error) {
	location := strings.TrimSpace(args.Location)
	if location == "" {
		return travel.HotelQuery{}, travel.Invalid("location", "is required")
	}
	r, err := travel.ParseRange("checkIn", args.CheckIn, "checkOut", args.CheckOut)
	if err != nil {
		return travel.HotelQuery{}, err
	}
	if !r.End.After(r.Start) {
		return travel.HotelQuery{}, travel.Invalid("checkOut", "must be after checkIn %s", args.CheckIn)
	}

	guests := args.Guests
	switch {
	case guests == 0:
		guests = DefaultGuests
	case guests < 1:
		return travel.HotelQuery{}, travel.Invalid("guests", "must be at least 1, got %d", guests)
	}

	currency := strings.ToUpper(strings.TrimSpace(args.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return travel.HotelQuery{
		Location: location,
		CheckIn:  args.CheckIn,
		CheckOut: args.CheckOut,
		Guests:   guests,
		Currency: currency,
	}, nil
}

// SearchHotels validates args and searches hotels, degrading provider failures.
func (s *Searcher) SearchHotels(ctx context.Context, args SearchHotelsArgs) (SearchHotelsResponse, error) {
	query, err := Validate(args)
	if err != nil {
		return SearchHotelsResponse{}, err
	}

	s.logger.Info("searching hotels", "location", query.Location, "check_in", query.CheckIn, "check_out", query.CheckOut, "guests", query.Guests)

	result := travel.HotelResult{Query: query, Hotels: []travel.HotelOption{}}
	res := s.provider.Hotels(ctx, query)
	switch {
	case !res.OK():
		s.logger.Warn("hotel search degraded", "location", query.Location, "error", res.Err)
		result.Error = ErrorMessage
	case res.Value != nil:
		result.Hotels = res.Value
	}

	return SearchHotelsResponse{
		Message:   Format(result),
		HotelData: result,
	}, nil
}

// Format renders a human-readable summary of a hotel result.
func Format(r travel.HotelResult) string {
	q := r.Query
	if r.Error != "" {
		return fmt.Sprintf("Couldn't search hotels in %s right now (%s).", q.Location, r.Error)
	}
	if len(r.Hotels) == 0 {
		return fmt.Sprintf("No hotels found in %s for %s to %s.", q.Location, q.CheckIn, q.CheckOut)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d hotels in %s for %d guests (%s to %s):\n", len(r.Hotels), q.Location, q.Guests, q.CheckIn, q.CheckOut)
	for i, h := range r.Hotels {
		fmt.Fprintf(&sb, "  %d. %s", i+1, h.Name)
		if h.Rating > 0 {
			fmt.Fprintf(&sb, " - %.1f stars", h.Rating)
			if h.Reviews > 0 {
				fmt.Fprintf(&sb, " (%d reviews)", h.Reviews)
			}
		}
		if h.Price != "" {
			fmt.Fprintf(&sb, " - %s per night", h.Price)
		}
		sb.WriteString("\n")
		if h.Address != "" {
			fmt.Fprintf(&sb, "     Address: %s\n", h.Address)
		}
		fmt.Fprintf(&sb, "     Amenities: %s\n", Amenities(h))
	}
	return sb.String()
}

// Amenities lists up to three amenities, or a generic phrase when none are known.
func Amenities(h travel.HotelOption) string {
	amenities := lo.Compact(h.Amenities)
	if len(amenities) == 0 {
		return noAmenitiesText
	}
	return strings.Join(lo.Slice(amenities, 0, maxAmenities), ", ")
}
