package planner_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/travel-planner/pkg/planner"
	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/activity"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/flight"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/hotel"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/itinerary"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// fakeProvider serves canned data for every lookup. Categories missing from
// activities fail with a provider error.
type fakeProvider struct {
	flights     []travel.FlightOption
	hotels      []travel.HotelOption
	activities  map[string][]travel.ActivityOption
	failAll     bool
	failFlights bool

	mu         sync.Mutex
	hotelQuery travel.HotelQuery
}

func (f *fakeProvider) Flights(_ context.Context, _ travel.FlightQuery) serpapi.Result[[]travel.FlightOption] {
	if f.failAll || f.failFlights {
		return serpapi.Result[[]travel.FlightOption]{Err: &travel.ProviderError{Message: "down"}}
	}
	return serpapi.Result[[]travel.FlightOption]{Value: f.flights}
}

func (f *fakeProvider) Hotels(_ context.Context, q travel.HotelQuery) serpapi.Result[[]travel.HotelOption] {
	f.mu.Lock()
	f.hotelQuery = q
	f.mu.Unlock()
	if f.failAll {
		return serpapi.Result[[]travel.HotelOption]{Err: &travel.ProviderError{Message: "down"}}
	}
	return serpapi.Result[[]travel.HotelOption]{Value: f.hotels}
}

func (f *fakeProvider) Location(_ context.Context, location string) serpapi.Result[travel.LocationInfo] {
	if f.failAll {
		return serpapi.Result[travel.LocationInfo]{Err: &travel.ProviderError{Message: "down"}}
	}
	return serpapi.Result[travel.LocationInfo]{Value: travel.LocationInfo{Location: location, Title: location, Description: "City of light"}}
}

func (f *fakeProvider) Activities(_ context.Context, _ string, category string) serpapi.Result[[]travel.ActivityOption] {
	acts, ok := f.activities[category]
	if f.failAll || !ok {
		return serpapi.Result[[]travel.ActivityOption]{Err: &travel.ProviderError{Status: 500, Message: "no data"}}
	}
	return serpapi.Result[[]travel.ActivityOption]{Value: acts}
}

func newPlanner(p *fakeProvider, opts ...planner.Option) *planner.Planner {
	return planner.New(
		flight.New(p, nil),
		hotel.New(p, nil),
		activity.New(p, nil),
		itinerary.New(nil),
		opts...,
	)
}

func parisProvider() *fakeProvider {
	return &fakeProvider{
		flights: []travel.FlightOption{
			{Airline: "Air France", FlightNumber: "AF 7", Price: 820},
			{Airline: "Delta", FlightNumber: "DL 44", Price: 640},
		},
		hotels: []travel.HotelOption{{Name: "Hotel Lutetia"}, {Name: "Le Meurice"}, {Name: "Ibis Budget"}},
		activities: map[string][]travel.ActivityOption{
			"food":        {{Title: "Le Comptoir"}, {Title: "Septime"}},
			"attractions": {{Title: "Eiffel Tower"}},
		},
	}
}

func parisRequest() planner.Request {
	return planner.Request{Origin: "NYC", Destination: "Paris", StartDate: "2025-06-15", EndDate: "2025-06-19", Travelers: 2}
}

func TestPlan_EndToEnd(t *testing.T) {
	var calls []travel.Invocation
	res, err := newPlanner(parisProvider()).Plan(context.Background(), parisRequest(), func(inv travel.Invocation) {
		calls = append(calls, inv)
	})
	require.NoError(t, err)

	assert.Equal(t, "Travel plan created for NYC to Paris from 2025-06-15 to 2025-06-19 for 2 travelers.", res.Summary)
	assert.Equal(t, res.Plan.Itinerary.Text, res.Message)
	assert.NotEmpty(t, res.Plan.ID)

	plan := res.Plan
	assert.Len(t, plan.Flights.Flights, 2)
	assert.Len(t, plan.Hotels.Hotels, 3)
	assert.Equal(t, "City of light", plan.Location.Description)
	assert.Equal(t, 5, plan.Itinerary.NumberOfDays)
	assert.Contains(t, plan.Itinerary.Days[0].Afternoon, "Hotel Lutetia")
	assert.Contains(t, plan.Itinerary.Days[0].Morning, "Air France AF 7")
	assert.Equal(t, itinerary.ThemeDeparture, plan.Itinerary.Days[4].Theme)
	assert.Equal(t, "Head outdoors for a park or a scenic walk around Paris.", plan.Itinerary.Days[2].Morning)

	tools := make([]string, 0, len(calls))
	for _, c := range calls {
		tools = append(tools, c.Tool)
	}
	assert.Equal(t, []string{
		planner.ToolSearchFlights, planner.ToolSearchHotels, planner.ToolSearchActivities, planner.ToolCreateItinerary,
	}, tools)
}

func TestPlan_Idempotent(t *testing.T) {
	p := newPlanner(parisProvider())

	first, err := p.Plan(context.Background(), parisRequest(), nil)
	require.NoError(t, err)
	second, err := p.Plan(context.Background(), parisRequest(), nil)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, string(a), string(b))
}

func TestPlan_DegradesWhenEveryProviderFails(t *testing.T) {
	res, err := newPlanner(&fakeProvider{failAll: true}).Plan(context.Background(), parisRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, flight.ErrorMessage, res.Plan.Flights.Error)
	assert.Equal(t, hotel.ErrorMessage, res.Plan.Hotels.Error)
	assert.Equal(t, activity.LocationErrorMessage, res.Plan.Location.Error)
	require.Len(t, res.Plan.Itinerary.Days, 5)
	assert.NotEmpty(t, res.Message)
}

func TestPlan_DegradesSingleStage(t *testing.T) {
	provider := parisProvider()
	provider.failFlights = true

	res, err := newPlanner(provider).Plan(context.Background(), parisRequest(), nil)
	require.NoError(t, err)

	plan := res.Plan
	assert.Equal(t, flight.ErrorMessage, plan.Flights.Error)
	assert.Empty(t, plan.Flights.Flights)
	assert.Empty(t, plan.Hotels.Error)
	assert.Len(t, plan.Hotels.Hotels, 3)
	assert.Empty(t, plan.Location.Error)
	assert.Len(t, plan.Activities.Activities["food"], 2)
	assert.Len(t, plan.Activities.Activities["attractions"], 1)

	require.Len(t, plan.Itinerary.Days, 5)
	assert.Equal(t, "Arrive in Paris and make your way to the city center.", plan.Itinerary.Days[0].Morning)
	assert.Contains(t, plan.Itinerary.Days[0].Afternoon, "Hotel Lutetia")
}

func TestPlan_OneDayTripChecksOutNextDay(t *testing.T) {
	provider := parisProvider()
	req := parisRequest()
	req.EndDate = req.StartDate

	res, err := newPlanner(provider).Plan(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-16", provider.hotelQuery.CheckOut)
	require.Len(t, res.Plan.Itinerary.Days, 1)
	assert.Equal(t, itinerary.ThemeArrivalDeparture, res.Plan.Itinerary.Days[0].Theme)
}

func TestPlan_ValidationBeforeAnyStage(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*planner.Request)
		wantField string
	}{
		{name: "end before start", mutate: func(r *planner.Request) { r.EndDate = "2025-06-10" }, wantField: "endDate"},
		{name: "missing origin", mutate: func(r *planner.Request) { r.Origin = " " }, wantField: "origin"},
		{name: "too long", mutate: func(r *planner.Request) { r.EndDate = "2025-06-30" }, wantField: "endDate"},
		{name: "negative travelers", mutate: func(r *planner.Request) { r.Travelers = -3 }, wantField: "travelers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flights := new(mockFlights)
			req := parisRequest()
			tc.mutate(&req)

			_, err := planner.New(flights, nil, nil, nil).Plan(context.Background(), req, nil)
			var verr *travel.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.wantField, verr.Field)
			flights.AssertNotCalled(t, "SearchFlights", mock.Anything, mock.Anything)
		})
	}
}

func TestValidate_DefaultsTravelers(t *testing.T) {
	req := parisRequest()
	req.Travelers = 0

	got, r, err := planner.Validate(req)
	require.NoError(t, err)
	assert.Equal(t, planner.DefaultTravelers, got.Travelers)
	assert.Equal(t, 5, r.Days())
}

type mockFlights struct {
	mock.Mock
}

func (m *mockFlights) SearchFlights(ctx context.Context, args flight.SearchFlightsArgs) (flight.SearchFlightsResponse, error) {
	ret := m.Called(ctx, args)
	return ret.Get(0).(flight.SearchFlightsResponse), ret.Error(1)
}

type mockHotels struct {
	mock.Mock
}

func (m *mockHotels) SearchHotels(ctx context.Context, args hotel.SearchHotelsArgs) (hotel.SearchHotelsResponse, error) {
	ret := m.Called(ctx, args)
	return ret.Get(0).(hotel.SearchHotelsResponse), ret.Error(1)
}

func TestPlan_StageErrorAbortsPipeline(t *testing.T) {
	provider := parisProvider()
	hotels := new(mockHotels)
	hotels.On("SearchHotels", mock.Anything, mock.Anything).
		Return(hotel.SearchHotelsResponse{}, errors.New("unexpected nil pointer"))

	var calls []string
	p := planner.New(flight.New(provider, nil), hotels, activity.New(provider, nil), itinerary.New(nil))
	res, err := p.Plan(context.Background(), parisRequest(), func(inv travel.Invocation) { calls = append(calls, inv.Tool) })

	var failure *travel.OrchestrationFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, string(planner.StageHotel), failure.Stage)
	assert.Empty(t, res.Plan.ID, "no partial plan on failure")
	assert.Equal(t, []string{planner.ToolSearchFlights}, calls)
}

func TestPlan_StagePanicIsOrchestrationFailure(t *testing.T) {
	provider := parisProvider()
	hotels := new(mockHotels)
	hotels.On("SearchHotels", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			var seen map[string]bool
			seen["hotel"] = true
		}).
		Return(hotel.SearchHotelsResponse{}, nil)

	p := planner.New(flight.New(provider, nil), hotels, activity.New(provider, nil), itinerary.New(nil))

	var (
		res planner.Result
		err error
	)
	require.NotPanics(t, func() {
		res, err = p.Plan(context.Background(), parisRequest(), nil)
	})

	var failure *travel.OrchestrationFailure
	require.True(t, errors.As(err, &failure), "expected OrchestrationFailure, got %v", err)
	assert.Equal(t, string(planner.StageHotel), failure.Stage)
	assert.Contains(t, failure.Err.Error(), "panic")
	assert.Empty(t, res.Plan.ID)
}

// slowFlights blocks until the context ends.
type slowFlights struct{}

func (slowFlights) SearchFlights(ctx context.Context, args flight.SearchFlightsArgs) (flight.SearchFlightsResponse, error) {
	<-ctx.Done()
	return flight.SearchFlightsResponse{FlightData: travel.FlightResult{Error: flight.ErrorMessage}}, nil
}

func TestPlan_Timeout(t *testing.T) {
	hotels := new(mockHotels)
	p := planner.New(slowFlights{}, hotels, nil, nil, planner.WithTimeout(20*time.Millisecond))

	res, err := p.Plan(context.Background(), parisRequest(), nil)
	require.ErrorIs(t, err, travel.ErrPlanTimeout)
	assert.Empty(t, res.Plan.ID)
	hotels.AssertNotCalled(t, "SearchHotels", mock.Anything, mock.Anything)
}

func TestPlan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPlanner(parisProvider()).Plan(ctx, parisRequest(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlanID_Stable(t *testing.T) {
	req := parisRequest()
	assert.Equal(t, planner.PlanID(req), planner.PlanID(req))

	other := req
	other.Travelers = 3
	assert.NotEqual(t, planner.PlanID(req), planner.PlanID(other))
}
