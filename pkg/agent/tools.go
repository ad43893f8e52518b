package agent

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hamzaessahbaoui/travel-planner/pkg/planner"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/activity"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/flight"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/hotel"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/itinerary"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/response"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/search"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
	"github.com/hamzaessahbaoui/travel-planner/toolkit"
)

// Toolkit, parent and child names as seen by the model.
const (
	ToolkitName     = "travel_toolkit"
	TravelParent    = "travel"
	ResponseParent  = "response"
	ToolCreatePlan  = "create_travel_plan"
	ToolSearchWeb   = "search_web"
	ToolThinking    = "model_thinking"
	ToolResponse    = "model_response"
	codePlanFailed  = "plan_failed"
	codePlanTimeout = "plan_timeout"
)

// Orchestrator is satisfied by *planner.Planner.
type Orchestrator interface {
	Plan(ctx context.Context, req planner.Request, record planner.Recorder) (planner.Result, error)
}

// WebSearcher is satisfied by *search.Searcher.
type WebSearcher interface {
	SearchWeb(ctx context.Context, args search.SearchWebArgs) (search.SearchWebResponse, error)
}

// Services are the operations exposed to the model.
type Services struct {
	Web         WebSearcher
	Flights     planner.FlightSearcher
	Hotels      planner.HotelSearcher
	Activities  planner.ActivitySearcher
	Itineraries planner.ItineraryBuilder
	Planner     Orchestrator
	Reporter    *response.Reporter
}

// NewToolkit wires the services into a toolkit. Invocations made by the
// planner on behalf of create_travel_plan are passed to record. A nil logger
// means slog.Default.
func NewToolkit(s Services, record planner.Recorder, logger *slog.Logger) *toolkit.Toolkit {
	handleFlights := func(ctx context.Context, args flight.SearchFlightsArgs) (interface{}, error) {
		return wrap(s.Flights.SearchFlights(ctx, args))
	}
	handleHotels := func(ctx context.Context, args hotel.SearchHotelsArgs) (interface{}, error) {
		return wrap(s.Hotels.SearchHotels(ctx, args))
	}
	handleActivities := func(ctx context.Context, args activity.SearchActivitiesArgs) (interface{}, error) {
		return wrap(s.Activities.SearchActivities(ctx, args))
	}
	handleItinerary := func(ctx context.Context, args itinerary.CreateItineraryArgs) (interface{}, error) {
		return wrap(s.Itineraries.CreateItinerary(ctx, args))
	}
	handleWeb := func(ctx context.Context, args search.SearchWebArgs) (interface{}, error) {
		return wrap(s.Web.SearchWeb(ctx, args))
	}
	handlePlan := func(ctx context.Context, args planner.Request) (interface{}, error) {
		return wrap(s.Planner.Plan(ctx, args, record))
	}
	handleThinking := func(ctx context.Context, args response.ModelThinkingArgs) (interface{}, error) {
		return wrap(s.Reporter.LogThinking(ctx, args))
	}
	handleResponse := func(ctx context.Context, args response.ModelResponseArgs) (interface{}, error) {
		return wrap(s.Reporter.LogResponse(ctx, args))
	}

	travelParent := toolkit.NewParent(
		TravelParent,
		"Searches flights, hotels and activities, and builds itineraries and complete travel plans.",
		toolkit.NewChild(planner.ToolSearchFlights, "Search flights between two places on given dates.", handleFlights),
		toolkit.NewChild(planner.ToolSearchHotels, "Search hotels in a location for check-in and check-out dates.", handleHotels),
		toolkit.NewChild(planner.ToolSearchActivities, "Find destination facts and things to do, grouped by category.", handleActivities),
		toolkit.NewChild(planner.ToolCreateItinerary, "Create a day-by-day itinerary from earlier search results.", handleItinerary),
		toolkit.NewChild(ToolSearchWeb, "Search the web for general travel questions such as visas or local transport.", handleWeb),
		toolkit.NewChild(ToolCreatePlan, "Create a complete travel plan: flights, hotels, activities and a day-by-day itinerary in one call.", handlePlan),
	)
	respParent := toolkit.NewParent(
		ResponseParent,
		"Handles showing the model thinking and final responses.",
		toolkit.NewChild(ToolThinking, "Log the model's thinking.", handleThinking),
		toolkit.NewChild(ToolResponse, "Give the final reply to the traveler.", handleResponse),
	)
	return toolkit.NewWithLogger(logger, ToolkitName, travelParent, respParent)
}

// wrap maps domain errors onto toolkit error codes.
func wrap[T any](v T, err error) (interface{}, error) {
	if err == nil {
		return v, nil
	}
	var verr *travel.ValidationError
	var failure *travel.OrchestrationFailure
	switch {
	case errors.As(err, &verr):
		return nil, toolkit.NewError("invalid_arguments", verr.Error())
	case errors.As(err, &failure):
		return nil, toolkit.NewError(codePlanFailed, planner.FailureMessage)
	case errors.Is(err, travel.ErrPlanTimeout):
		return nil, toolkit.NewError(codePlanTimeout, err.Error())
	}
	return nil, err
}
