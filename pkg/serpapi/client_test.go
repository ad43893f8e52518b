package serpapi_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *serpapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := serpapi.New(serpapi.Config{APIKey: "test-key", BaseURL: srv.URL}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client
}

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := serpapi.New(serpapi.Config{APIKey: "  "}, nil)
	require.Error(t, err)

	var cfgErr *travel.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "SERPAPI_API_KEY", cfgErr.Key)
}

func TestSearch_SendsEngineAndCredential(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_flights", q.Get("engine"))
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "JFK", q.Get("departure_id"))
		assert.False(t, q.Has("return_date"), "empty params are not sent")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	data, err := client.Search(context.Background(), serpapi.EngineFlights, map[string]string{
		"departure_id": "JFK",
		"return_date":  "",
	})
	require.NoError(t, err)
	assert.True(t, data.Get("ok").Bool())
}

func TestSearch_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid API key."}`))
	})

	_, err := client.Search(context.Background(), serpapi.EngineHotels, nil)
	require.Error(t, err)

	var perr *travel.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusUnauthorized, perr.Status)
	assert.Equal(t, "Invalid API key.", perr.Message)
}

func TestSearch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := serpapi.New(serpapi.Config{APIKey: "k", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	res := client.Flights(context.Background(), travel.FlightQuery{Origin: "JFK", Destination: "CDG", DepartureDate: "2025-06-15"})
	require.False(t, res.OK())
	assert.Zero(t, res.Err.Status)
	assert.Empty(t, res.Value)
}

func TestFlights_BestFlightsShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{
			"best_flights": [
				{"flights": [
					{"airline": "Air France", "flight_number": "AF 7", "departure_airport": {"time": "2025-06-15 18:00"}, "arrival_airport": {"time": "2025-06-16 07:30"}}
				], "total_duration": 450, "price": 820},
				{"flights": [
					{"airline": "Delta", "flight_number": "DL 44", "departure_airport": {"time": "2025-06-15 10:00"}},
					{"airline": "Delta", "flight_number": "DL 8", "arrival_airport": {"time": "2025-06-16 09:00"}}
				], "total_duration": 780, "price": 640}
			],
			"other_flights": [
				{"flights": [{"airline": "United", "flight_number": "UA 57"}], "price": 900}
			]
		}`))
	})

	res := client.Flights(context.Background(), travel.FlightQuery{
		Origin: "NYC", Destination: "CDG", DepartureDate: "2025-06-15", ReturnDate: "2025-06-19",
	})
	require.True(t, res.OK())
	require.Len(t, res.Value, 3)

	assert.Equal(t, travel.FlightOption{
		Airline:       "Air France",
		FlightNumber:  "AF 7",
		DepartureTime: "2025-06-15 18:00",
		ArrivalTime:   "2025-06-16 07:30",
		Duration:      450,
		Price:         820,
		Stops:         0,
	}, res.Value[0])
	assert.Equal(t, 1, res.Value[1].Stops)
	assert.Equal(t, "2025-06-16 09:00", res.Value[1].ArrivalTime)
	assert.Equal(t, "United", res.Value[2].Airline)
}

func TestFlights_CapsAtFive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"flights": [
			{"airline":"A"},{"airline":"B"},{"airline":"C"},{"airline":"D"},{"airline":"E"},{"airline":"F"},{"airline":"G"}
		]}`))
	})

	res := client.Flights(context.Background(), travel.FlightQuery{Origin: "A", Destination: "B", DepartureDate: "2025-01-01"})
	require.True(t, res.OK())
	require.Len(t, res.Value, 5)
	assert.Equal(t, "E", res.Value[4].Airline)
}

func TestHotels_DefensiveFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hotels in Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("adults"))
		_, _ = w.Write([]byte(`{"properties": [
			{"name": "Hotel Lutetia", "overall_rating": 4.6, "reviews": 1200,
			 "rate_per_night": {"lowest": "$540"},
			 "amenities": ["Spa", "Pool", "Bar", "Wi-Fi"],
			 "images": [{"thumbnail": "a.jpg"}, {"thumbnail": "b.jpg"}, {"thumbnail": "c.jpg"}]},
			{"name": "Ibis Budget"}
		]}`))
	})

	res := client.Hotels(context.Background(), travel.HotelQuery{Location: "Paris", CheckIn: "2025-06-15", CheckOut: "2025-06-19", Guests: 3})
	require.True(t, res.OK())
	require.Len(t, res.Value, 2)

	lutetia := res.Value[0]
	assert.Equal(t, "$540", lutetia.Price)
	assert.InDelta(t, 4.6, lutetia.Rating, 0.001)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, lutetia.Images)
	assert.Len(t, lutetia.Amenities, 4)

	ibis := res.Value[1]
	assert.Empty(t, ibis.Amenities)
	assert.Empty(t, ibis.Images)
	assert.NotNil(t, ibis.Amenities)
}

func TestLocation_DefaultsTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris travel information", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{
			"knowledge_graph": {"description": "Capital of France", "currency": "Euro"},
			"organic_results": [
				{"title":"1","link":"l1","snippet":"s1"},{"title":"2"},{"title":"3"},{"title":"4"},{"title":"5"},{"title":"6"}
			]
		}`))
	})

	res := client.Location(context.Background(), "Paris")
	require.True(t, res.OK())
	assert.Equal(t, "Paris", res.Value.Title)
	assert.Equal(t, "Capital of France", res.Value.Description)
	assert.Equal(t, "Euro", res.Value.Currency)
	assert.Len(t, res.Value.WebResults, 5)
	assert.Equal(t, travel.WebResult{Title: "1", Link: "l1", Snippet: "s1"}, res.Value.WebResults[0])
}

func TestActivities_LocalResultsThenFallback(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
		wantFirst travel.ActivityOption
	}{
		{
			name:      "local places",
			body:      `{"local_results": {"places": [{"title": "Louvre", "rating": 4.7, "reviews": 300, "website": "https://louvre.fr"}]}}`,
			wantCount: 1,
			wantFirst: travel.ActivityOption{Title: "Louvre", Rating: 4.7, Reviews: 300, Website: "https://louvre.fr", Category: "museums"},
		},
		{
			name:      "local array",
			body:      `{"local_results": [{"title": "Musée d'Orsay", "type": "Art museum"}]}`,
			wantCount: 1,
			wantFirst: travel.ActivityOption{Title: "Musée d'Orsay", Category: "Art museum"},
		},
		{
			name:      "organic fallback",
			body:      `{"organic_results": [{"title": "Top 10 museums", "link": "https://x", "snippet": "list"}]}`,
			wantCount: 1,
			wantFirst: travel.ActivityOption{Title: "Top 10 museums", Link: "https://x", Snippet: "list", Category: "museums"},
		},
		{
			name:      "nothing",
			body:      `{}`,
			wantCount: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "museums activities in Paris", r.URL.Query().Get("q"))
				_, _ = w.Write([]byte(tc.body))
			})

			res := client.Activities(context.Background(), "Paris", "museums")
			require.True(t, res.OK())
			require.Len(t, res.Value, tc.wantCount)
			if tc.wantCount > 0 {
				assert.Equal(t, tc.wantFirst, res.Value[0])
			}
		})
	}
}

func TestActivities_GenericQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "things to do in Rome", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{}`))
	})

	res := client.Activities(context.Background(), "Rome", "")
	assert.True(t, res.OK())
}

func TestWeb(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.Equal(t, "Paris metro tickets", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"organic_results":[{"title":"RATP","link":"https://ratp.fr","snippet":"Tickets"},{"title":"Navigo"}]}`))
	})

	res := client.Web(context.Background(), "Paris metro tickets")
	require.True(t, res.OK())
	require.Len(t, res.Value, 2)
	assert.Equal(t, travel.WebResult{Title: "RATP", Link: "https://ratp.fr", Snippet: "Tickets"}, res.Value[0])
}
