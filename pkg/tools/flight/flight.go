// Package flight implements the flight search operation.
package flight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// DefaultCurrency is used when no currency is requested.
const DefaultCurrency = "USD"

// ErrorMessage is stored on a degraded FlightResult.
const ErrorMessage = "Failed to retrieve flight information"

// Provider performs the underlying flight lookup.
type Provider interface {
	Flights(ctx context.Context, q travel.FlightQuery) serpapi.Result[[]travel.FlightOption]
}

// Searcher runs flight searches against a Provider.
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

// Validate checks args without touching the network.
func Validate(args SearchFlightsArgs) (travel.FlightQuery, error) {
	origin := strings.TrimSpace(args.Origin)
	destination := strings.TrimSpace(args.Destination)
	if origin == "" {
		return travel.FlightQuery{}, travel.Invalid("origin", "is required")
	}
	if destination == "" {
		return travel.FlightQuery{}, travel.Invalid("destination", "is required")
	}
	if args.ReturnDate == "" {
		if _, err := travel.ParseDate("departureDate", args.DepartureDate); err != nil {
			return travel.FlightQuery{}, err
		}
	} else if _, err := travel.ParseRange("departureDate", args.DepartureDate, "returnDate", args.ReturnDate); err != nil {
		return travel.FlightQuery{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(args.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return travel.FlightQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: args.DepartureDate,
		ReturnDate:    args.ReturnDate,
		Currency:      currency,
	}, nil
}

// SearchFlights validates args and searches flights. A provider failure is
// degraded into a result with Error set; only validation errors are returned.
func (s *Searcher) SearchFlights(ctx context.Context, args SearchFlightsArgs) (SearchFlightsResponse, error) {
	query, err := Validate(args)
	if err != nil {
		return SearchFlightsResponse{}, err
	}

	s.logger.Info("searching flights", "origin", query.Origin, "destination", query.Destination, "departure", query.DepartureDate)

	result := travel.FlightResult{Query: query, Flights: []travel.FlightOption{}}
	res := s.provider.Flights(ctx, query)
	switch {
	case !res.OK():
		s.logger.Warn("flight search degraded", "origin", query.Origin, "destination", query.Destination, "error", res.Err)
		result.Error = ErrorMessage
	case res.Value != nil:
		result.Flights = res.Value
	}

	return SearchFlightsResponse{
		Message:    Format(result),
		FlightData: result,
	}, nil
}

// Format renders a human-readable summary of a flight result.
func Format(r travel.FlightResult) string {
	q := r.Query
	if r.Error != "" {
		return fmt.Sprintf("Couldn't search flights from %s to %s right now (%s). You can still plan around your own travel arrangements.", q.Origin, q.Destination, r.Error)
	}
	if len(r.Flights) == 0 {
		return fmt.Sprintf("No flights found from %s to %s on %s.", q.Origin, q.Destination, q.DepartureDate)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d flights from %s to %s on %s", len(r.Flights), q.Origin, q.Destination, q.DepartureDate)
	if q.ReturnDate != "" {
		fmt.Fprintf(&sb, " (returning %s)", q.ReturnDate)
	}
	sb.WriteString(":\n")
	for i, f := range r.Flights {
		fmt.Fprintf(&sb, "  %d. %s", i+1, Describe(f))
		if f.Price > 0 {
			fmt.Fprintf(&sb, " - %s %.0f", q.Currency, f.Price)
		}
		if f.Duration > 0 {
			fmt.Fprintf(&sb, ", %s", FormatDuration(f.Duration))
		}
		fmt.Fprintf(&sb, ", %s\n", FormatStops(f.Stops))
	}
	return sb.String()
}

// Describe names a flight as "<airline> <flight number>".
func Describe(f travel.FlightOption) string {
	name := strings.TrimSpace(f.Airline + " " + f.FlightNumber)
	if name == "" {
		return "Unnamed flight"
	}
	return name
}

// FormatDuration renders minutes as "7h 30m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// FormatStops renders a stop count.
func FormatStops(stops int) string {
	switch stops {
	case 0:
		return "nonstop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
