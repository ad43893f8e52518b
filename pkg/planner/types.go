package planner

import (
	"context"

	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/activity"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/flight"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/hotel"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/itinerary"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// Request represents arguments for the create_travel_plan operation.
type Request struct {
	Origin      string `json:"origin" jsonschema:"required,description=The origin city or airport code."`
	Destination string `json:"destination" jsonschema:"required,description=The destination city or airport code."`
	StartDate   string `json:"startDate" jsonschema:"required,description=The start date in YYYY-MM-DD format."`
	EndDate     string `json:"endDate" jsonschema:"required,description=The end date in YYYY-MM-DD format. Trips last at most 10 days."`
	Travelers   int    `json:"travelers,omitempty" jsonschema:"description=Number of travelers. Defaults to 2."`
}

// Result is the outcome of a completed plan.
type Result struct {
	Message string            `json:"message"`
	Summary string            `json:"summary"`
	Plan    travel.TravelPlan `json:"plan"`
}

// Stage names one step of the pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageFlight    Stage = "flight"
	StageHotel     Stage = "hotel"
	StageActivity  Stage = "activity"
	StageItinerary Stage = "itinerary"
	StageComplete  Stage = "complete"
)

// Recorder receives one Invocation per tool call made while planning.
type Recorder func(travel.Invocation)

// FlightSearcher is satisfied by *flight.Searcher.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, args flight.SearchFlightsArgs) (flight.SearchFlightsResponse, error)
}

// HotelSearcher is satisfied by *hotel.Searcher.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, args hotel.SearchHotelsArgs) (hotel.SearchHotelsResponse, error)
}

// ActivitySearcher is satisfied by *activity.Searcher.
type ActivitySearcher interface {
	SearchActivities(ctx context.Context, args activity.SearchActivitiesArgs) (activity.SearchActivitiesResponse, error)
}

// ItineraryBuilder is satisfied by *itinerary.Planner.
type ItineraryBuilder interface {
	CreateItinerary(ctx context.Context, args itinerary.CreateItineraryArgs) (itinerary.CreateItineraryResponse, error)
}
