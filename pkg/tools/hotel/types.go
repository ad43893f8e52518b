package hotel

import "github.com/hamzaessahbaoui/travel-planner/pkg/travel"

// SearchHotelsArgs represents arguments for the search_hotels operation.
type SearchHotelsArgs struct {
	Location string `json:"location" jsonschema:"required,description=City or area to search hotels in."`
	CheckIn  string `json:"checkIn" jsonschema:"required,description=Check-in date in YYYY-MM-DD format."`
	CheckOut string `json:"checkOut" jsonschema:"required,description=Check-out date in YYYY-MM-DD format, after check-in."`
	Guests   int    `json:"guests,omitempty" jsonschema:"description=Number of guests (default 2)."`
	Currency string `json:"currency,omitempty" jsonschema:"description=Currency code for prices, e.g. USD."`
}

// SearchHotelsResponse carries the formatted summary and the structured result.
type SearchHotelsResponse struct {
	Message   string             `json:"message"`
	HotelData travel.HotelResult `json:"hotelData"`
}
