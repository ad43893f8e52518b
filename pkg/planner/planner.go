// Package planner runs the travel plan pipeline: flights, then hotels, then
// activities, then the itinerary. Each stage receives everything the earlier
// stages produced. Degraded stage results never stop the pipeline; only an
// error escaping a stage does.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/activity"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/flight"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/hotel"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/itinerary"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

const (
	// DefaultTravelers is used when the request does not name a traveler count.
	DefaultTravelers = 2
	// DefaultTimeout bounds a whole plan.
	DefaultTimeout = 5 * time.Minute
	// FailureMessage is the only detail shown to callers when a stage fails.
	FailureMessage = "Failed to create travel plan"
)

// Tool names reported to the Recorder.
const (
	ToolSearchFlights    = "search_flights"
	ToolSearchHotels     = "search_hotels"
	ToolSearchActivities = "search_activities"
	ToolCreateItinerary  = "create_itinerary"
)

// planNamespace scopes name-based plan IDs.
var planNamespace = uuid.MustParse("6f1c1d3e-8a4b-4f0e-9a57-2b1d5c7e9f30")

// Planner orchestrates the tool operations.
type Planner struct {
	flights     FlightSearcher
	hotels      HotelSearcher
	activities  ActivitySearcher
	itineraries ItineraryBuilder
	logger      *slog.Logger
	timeout     time.Duration
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTimeout bounds each plan. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Planner) { p.timeout = d }
}

// New creates a Planner.
func New(f FlightSearcher, h HotelSearcher, a ActivitySearcher, i ItineraryBuilder, opts ...Option) *Planner {
	p := &Planner{
		flights:     f,
		hotels:      h,
		activities:  a,
		itineraries: i,
		logger:      slog.Default(),
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Validate normalizes req and checks it before any stage runs.
func Validate(req Request) (Request, travel.DateRange, error) {
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Origin == "" {
		return Request{}, travel.DateRange{}, travel.Invalid("origin", "is required")
	}
	if req.Destination == "" {
		return Request{}, travel.DateRange{}, travel.Invalid("destination", "is required")
	}
	r, err := travel.ParseRange("startDate", req.StartDate, "endDate", req.EndDate)
	if err != nil {
		return Request{}, travel.DateRange{}, err
	}
	if n := r.Days(); n > travel.MaxTripDays {
		return Request{}, travel.DateRange{}, travel.Invalid("endDate", "trip spans %d days, at most %d are supported", n, travel.MaxTripDays)
	}
	switch {
	case req.Travelers == 0:
		req.Travelers = DefaultTravelers
	case req.Travelers < 0:
		return Request{}, travel.DateRange{}, travel.Invalid("travelers", "must be at least 1, got %d", req.Travelers)
	}
	return req, r, nil
}

// Summary is the one-line description of a plan request.
func Summary(req Request) string {
	return fmt.Sprintf("Travel plan created for %s to %s from %s to %s for %d travelers.",
		req.Origin, req.Destination, req.StartDate, req.EndDate, req.Travelers)
}

// PlanID derives a stable identifier from the request, so repeated calls with
// the same input produce the same plan.
func PlanID(req Request) string {
	key := fmt.Sprintf("%s|%s|%s|%s|%d", req.Origin, req.Destination, req.StartDate, req.EndDate, req.Travelers)
	return uuid.NewSHA1(planNamespace, []byte(key)).String()
}

// state is the accumulated pipeline context. Stages take it by value and
// return an extended copy.
type state struct {
	req        Request
	dates      travel.DateRange
	flights    travel.FlightResult
	hotels     travel.HotelResult
	location   travel.LocationInfo
	activities travel.ActivityResult
	itinerary  travel.Itinerary
}

type step struct {
	stage Stage
	run   func(context.Context, state) (state, error)
}

// exec runs the stage, reporting a panic as an error of the stage.
func (s step) exec(ctx context.Context, st state) (next state, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = st, fmt.Errorf("panic: %v", r)
		}
	}()
	return s.run(ctx, st)
}

// Plan runs every stage in order. record may be nil.
//
// Errors: *travel.ValidationError for bad input, travel.ErrPlanTimeout when the
// deadline passes, and *travel.OrchestrationFailure when a stage returns an
// error or panics.
// No partial plan is returned with an error.
func (p *Planner) Plan(ctx context.Context, req Request, record Recorder) (Result, error) {
	req, dates, err := Validate(req)
	if err != nil {
		return Result{}, err
	}
	if record == nil {
		record = func(travel.Invocation) {}
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	logger := p.logger.With("origin", req.Origin, "destination", req.Destination)
	logger.Info("travel plan started", "start_date", req.StartDate, "end_date", req.EndDate, "travelers", req.Travelers)

	steps := []step{
		{StageFlight, p.flightStage(record)},
		{StageHotel, p.hotelStage(record)},
		{StageActivity, p.activityStage(record)},
		{StageItinerary, p.itineraryStage(record)},
	}

	st := state{req: req, dates: dates}
	for _, s := range steps {
		if err := interrupted(ctx); err != nil {
			logger.Warn("travel plan interrupted", "stage", s.stage, "error", err)
			return Result{}, err
		}
		started := time.Now()
		next, err := s.exec(ctx, st)
		if ierr := interrupted(ctx); ierr != nil {
			logger.Warn("travel plan interrupted", "stage", s.stage, "error", ierr)
			return Result{}, ierr
		}
		if err != nil {
			logger.Error("travel plan stage failed", "stage", s.stage, "error", err)
			return Result{}, &travel.OrchestrationFailure{Stage: string(s.stage), Err: err}
		}
		logger.Info("travel plan stage finished", "stage", s.stage, "elapsed", time.Since(started))
		st = next
	}
	logger.Info("travel plan finished", "stage", StageComplete, "days", st.itinerary.NumberOfDays)

	return Result{
		Message: st.itinerary.Text,
		Summary: Summary(req),
		Plan: travel.TravelPlan{
			ID:          PlanID(req),
			Origin:      req.Origin,
			Destination: req.Destination,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Travelers:   req.Travelers,
			Flights:     st.flights,
			Hotels:      st.hotels,
			Location:    st.location,
			Activities:  st.activities,
			Itinerary:   st.itinerary,
		},
	}, nil
}

func interrupted(ctx context.Context) error {
	switch err := ctx.Err(); {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return travel.ErrPlanTimeout
	default:
		return err
	}
}

func (p *Planner) flightStage(record Recorder) func(context.Context, state) (state, error) {
	return func(ctx context.Context, st state) (state, error) {
		args := flight.SearchFlightsArgs{
			Origin:        st.req.Origin,
			Destination:   st.req.Destination,
			DepartureDate: st.req.StartDate,
			ReturnDate:    st.req.EndDate,
		}
		resp, err := p.flights.SearchFlights(ctx, args)
		if err != nil {
			return st, err
		}
		record(travel.Invocation{Tool: ToolSearchFlights, Args: args, Result: resp})
		st.flights = resp.FlightData
		return st, nil
	}
}

func (p *Planner) hotelStage(record Recorder) func(context.Context, state) (state, error) {
	return func(ctx context.Context, st state) (state, error) {
		checkOut := st.req.EndDate
		if st.dates.Days() == 1 {
			checkOut = st.dates.Date(2)
		}
		args := hotel.SearchHotelsArgs{
			Location: st.req.Destination,
			CheckIn:  st.req.StartDate,
			CheckOut: checkOut,
			Guests:   st.req.Travelers,
		}
		resp, err := p.hotels.SearchHotels(ctx, args)
		if err != nil {
			return st, err
		}
		record(travel.Invocation{Tool: ToolSearchHotels, Args: args, Result: resp})
		st.hotels = resp.HotelData
		return st, nil
	}
}

func (p *Planner) activityStage(record Recorder) func(context.Context, state) (state, error) {
	return func(ctx context.Context, st state) (state, error) {
		args := activity.SearchActivitiesArgs{
			Location:   st.req.Destination,
			Categories: append([]string(nil), activity.DefaultCategories...),
		}
		resp, err := p.activities.SearchActivities(ctx, args)
		if err != nil {
			return st, err
		}
		record(travel.Invocation{Tool: ToolSearchActivities, Args: args, Result: resp})
		st.location = resp.LocationData
		st.activities = resp.Activities
		return st, nil
	}
}

func (p *Planner) itineraryStage(record Recorder) func(context.Context, state) (state, error) {
	return func(ctx context.Context, st state) (state, error) {
		args := itinerary.CreateItineraryArgs{
			Destination:  st.req.Destination,
			StartDate:    st.req.StartDate,
			EndDate:      st.req.EndDate,
			FlightData:   &st.flights,
			HotelData:    &st.hotels,
			LocationData: &st.location,
			Activities:   &st.activities,
		}
		resp, err := p.itineraries.CreateItinerary(ctx, args)
		if err != nil {
			return st, err
		}
		record(travel.Invocation{Tool: ToolCreateItinerary, Args: args, Result: resp})
		st.itinerary = resp.Itinerary
		return st, nil
	}
}
