package flight

import "github.com/hamzaessahbaoui/travel-planner/pkg/travel"

// SearchFlightsArgs represents arguments for the search_flights operation.
type SearchFlightsArgs struct {
	Origin        string `json:"origin" jsonschema:"required,description=Origin city or IATA airport code, e.g. JFK."`
	Destination   string `json:"destination" jsonschema:"required,description=Destination city or IATA airport code, e.g. CDG."`
	DepartureDate string `json:"departureDate" jsonschema:"required,description=Departure date in YYYY-MM-DD format."`
	ReturnDate    string `json:"returnDate,omitempty" jsonschema:"description=Optional return date in YYYY-MM-DD format. Must not be before the departure date."`
	Currency      string `json:"currency,omitempty" jsonschema:"description=Currency code for prices, e.g. USD."`
}

// SearchFlightsResponse carries the formatted summary and the structured result.
type SearchFlightsResponse struct {
	Message    string              `json:"message"`
	FlightData travel.FlightResult `json:"flightData"`
}
