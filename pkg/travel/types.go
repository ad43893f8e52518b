// Package travel holds the data model shared by the provider adapter, the tool
// operations, the itinerary synthesizer and the plan orchestrator.
//
// Every value here is created once by the stage that owns it and then only read
// by downstream stages; nothing is mutated after construction.
package travel

// --- Queries ---

// FlightQuery describes a flight search.
type FlightQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// HotelQuery describes a hotel search.
type HotelQuery struct {
	Location string `json:"location"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"guests"`
	Currency string `json:"currency,omitempty"`
}

// --- Flights ---

// FlightOption is one ranked flight offer.
type FlightOption struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flightNumber"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Duration      int     `json:"duration"` // minutes
	Price         float64 `json:"price"`
	Stops         int     `json:"stops"`
}

// FlightResult is the outcome of the flight stage. Either Flights is populated
// or Error is set; a degraded result never carries both.
type FlightResult struct {
	Query   FlightQuery    `json:"query"`
	Flights []FlightOption `json:"flights"`
	Error   string         `json:"error,omitempty"`
}

// Top returns the best-ranked flight, if any.
func (r FlightResult) Top() (FlightOption, bool) {
	if len(r.Flights) == 0 {
		return FlightOption{}, false
	}
	return r.Flights[0], true
}

// --- Hotels ---

// HotelOption is one ranked hotel offer.
type HotelOption struct {
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     int      `json:"reviews,omitempty"`
	Price       string   `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// HotelResult is the outcome of the hotel stage.
type HotelResult struct {
	Query  HotelQuery    `json:"query"`
	Hotels []HotelOption `json:"hotels"`
	Error  string        `json:"error,omitempty"`
}

// Top returns the best-ranked hotel, if any.
func (r HotelResult) Top() (HotelOption, bool) {
	if len(r.Hotels) == 0 {
		return HotelOption{}, false
	}
	return r.Hotels[0], true
}

// --- Location & activities ---

// WebResult is a generic organic search snippet.
type WebResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// LocationInfo carries knowledge-graph facts about a destination.
type LocationInfo struct {
	Location    string      `json:"location"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type,omitempty"`
	Weather     string      `json:"weather,omitempty"`
	LocalTime   string      `json:"localTime,omitempty"`
	Currency    string      `json:"currency,omitempty"`
	Language    string      `json:"language,omitempty"`
	WebResults  []WebResult `json:"webResults"`
	Error       string      `json:"error,omitempty"`
}

// ActivityOption is a place or thing to do. Localized results fill the place
// fields; generic web fallbacks only carry Title, Link and Snippet.
type ActivityOption struct {
	Title       string  `json:"title"`
	Address     string  `json:"address,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Reviews     int     `json:"reviews,omitempty"`
	Description string  `json:"description,omitempty"`
	Hours       string  `json:"hours,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Website     string  `json:"website,omitempty"`
	Category    string  `json:"category,omitempty"`
	Link        string  `json:"link,omitempty"`
	Snippet     string  `json:"snippet,omitempty"`
}

// URL returns the best link for the activity.
func (a ActivityOption) URL() string {
	if a.Website != "" {
		return a.Website
	}
	return a.Link
}

// ActivityResult groups activities per category. Categories preserves the
// requested order so rendering stays deterministic.
type ActivityResult struct {
	Location   string                      `json:"location"`
	Categories []string                    `json:"categories"`
	Activities map[string][]ActivityOption `json:"activities"`
	Errors     map[string]string           `json:"errors,omitempty"`
}

// In returns the activities found for category, or nil.
func (r ActivityResult) In(category string) []ActivityOption {
	if r.Activities == nil {
		return nil
	}
	return r.Activities[category]
}

// --- Itinerary & plan ---

// ItineraryDay is one rendered day of the plan.
type ItineraryDay struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Theme     string `json:"theme"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Itinerary is the synthesized day-by-day plan.
type Itinerary struct {
	Destination  string         `json:"destination"`
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate"`
	NumberOfDays int            `json:"numberOfDays"`
	Days         []ItineraryDay `json:"days"`
	Text         string         `json:"text"`
}

// TravelPlan aggregates every stage output of a single orchestration call.
type TravelPlan struct {
	ID          string         `json:"id"`
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Travelers   int            `json:"travelers"`
	Flights     FlightResult   `json:"flights"`
	Hotels      HotelResult    `json:"hotels"`
	Location    LocationInfo   `json:"location"`
	Activities  ActivityResult `json:"activities"`
	Itinerary   Itinerary      `json:"itinerary"`
}

// Invocation records one tool call for UI transparency.
type Invocation struct {
	Tool   string `json:"tool"`
	Args   any    `json:"args"`
	Result any    `json:"result"`
}
