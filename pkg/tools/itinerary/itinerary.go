// Package itinerary turns the results of the flight, hotel and activity
// searches into a themed day-by-day plan. Synthesis is pure: the same inputs
// always produce the same text.
package itinerary

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// Planner exposes the create_itinerary operation.
type Planner struct {
	logger *slog.Logger
}

// New creates a Planner.
func New(logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{logger: logger}
}

// Validate checks the destination and the date range, which must span 1 to
// travel.MaxTripDays days.
func Validate(args CreateItineraryArgs) (string, travel.DateRange, error) {
	destination := strings.TrimSpace(args.Destination)
	if destination == "" {
		return "", travel.DateRange{}, travel.Invalid("destination", "is required")
	}
	r, err := travel.ParseRange("startDate", args.StartDate, "endDate", args.EndDate)
	if err != nil {
		return "", travel.DateRange{}, err
	}
	if n := r.Days(); n > travel.MaxTripDays {
		return "", travel.DateRange{}, travel.Invalid("endDate", "trip spans %d days, at most %d are supported", n, travel.MaxTripDays)
	}
	return destination, r, nil
}

// CreateItinerary validates args and synthesizes the itinerary.
func (p *Planner) CreateItinerary(_ context.Context, args CreateItineraryArgs) (CreateItineraryResponse, error) {
	destination, r, err := Validate(args)
	if err != nil {
		return CreateItineraryResponse{}, err
	}

	in := Input{Destination: destination, Range: r}
	if args.FlightData != nil {
		in.Flights = *args.FlightData
	}
	if args.HotelData != nil {
		in.Hotels = *args.HotelData
	}
	if args.LocationData != nil {
		in.Location = *args.LocationData
	}
	if args.Activities != nil {
		in.Activities = *args.Activities
	}

	it := Synthesize(in)
	p.logger.Info("itinerary created", "destination", destination, "days", it.NumberOfDays)

	return CreateItineraryResponse{Message: it.Text, Itinerary: it}, nil
}
