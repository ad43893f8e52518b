package itinerary

import "github.com/hamzaessahbaoui/travel-planner/pkg/travel"

// CreateItineraryArgs represents arguments for the create_itinerary operation.
// The upstream payloads are optional; missing ones degrade to generic text.
type CreateItineraryArgs struct {
	Destination  string                 `json:"destination" jsonschema:"required,description=Destination city for the itinerary."`
	StartDate    string                 `json:"startDate" jsonschema:"required,description=First day of the trip in YYYY-MM-DD format."`
	EndDate      string                 `json:"endDate" jsonschema:"required,description=Last day of the trip in YYYY-MM-DD format. At most 10 days after the start."`
	FlightData   *travel.FlightResult   `json:"flightData,omitempty" jsonschema:"description=Flight result from search_flights."`
	HotelData    *travel.HotelResult    `json:"hotelData,omitempty" jsonschema:"description=Hotel result from search_hotels."`
	LocationData *travel.LocationInfo   `json:"locationData,omitempty" jsonschema:"description=Location facts from search_activities."`
	Activities   *travel.ActivityResult `json:"activities,omitempty" jsonschema:"description=Activities grouped by category from search_activities."`
}

// CreateItineraryResponse carries the rendered itinerary text and its structure.
type CreateItineraryResponse struct {
	Message   string           `json:"message"`
	Itinerary travel.Itinerary `json:"itinerary"`
}
