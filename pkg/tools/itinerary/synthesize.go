package itinerary

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/activity"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/flight"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// Day themes.
const (
	ThemeArrival          = "arrival"
	ThemeDeparture        = "departure"
	ThemeArrivalDeparture = "arrival and departure"
	ThemeCulture          = "culture"
	ThemeOutdoor          = "outdoor"
	ThemeMixed            = "mixed"
)

// Input is everything the synthesizer reads. Zero-valued results are valid and
// simply produce generic text.
type Input struct {
	Destination string
	Range       travel.DateRange
	Flights     travel.FlightResult
	Hotels      travel.HotelResult
	Location    travel.LocationInfo
	Activities  travel.ActivityResult
}

// Theme returns the theme of the 1-based day in a trip of the given length.
func Theme(day, days int) string {
	switch {
	case days == 1:
		return ThemeArrivalDeparture
	case day == 1:
		return ThemeArrival
	case day == days:
		return ThemeDeparture
	}
	switch day % 3 {
	case 2:
		return ThemeCulture
	case 0:
		return ThemeOutdoor
	default:
		return ThemeMixed
	}
}

// Synthesize builds the day-by-day itinerary. It never fails: every slot falls
// back to a generic line when the data it would reference is missing.
func Synthesize(in Input) travel.Itinerary {
	days := in.Range.Days()
	s := synth{in: in}

	out := travel.Itinerary{
		Destination:  in.Destination,
		StartDate:    in.Range.Start.Format(travel.DateLayout),
		EndDate:      in.Range.End.Format(travel.DateLayout),
		NumberOfDays: days,
		Days:         make([]travel.ItineraryDay, 0, days),
	}
	for day := 1; day <= days; day++ {
		d := travel.ItineraryDay{Day: day, Date: in.Range.Date(day), Theme: Theme(day, days)}
		switch d.Theme {
		case ThemeArrivalDeparture:
			d.Morning = s.arrive()
			d.Afternoon = s.farewellSight(day)
			d.Evening = s.welcomeDinner() + " " + s.depart()
		case ThemeArrival:
			d.Morning, d.Afternoon, d.Evening = s.arrive(), s.checkIn(), s.welcomeDinner()
		case ThemeDeparture:
			d.Morning, d.Afternoon, d.Evening = s.checkOut(), s.farewellSight(day), s.depart()
		case ThemeCulture:
			d.Morning, d.Afternoon, d.Evening = s.museum(day), s.landmark(day), s.dinner(day)
		case ThemeOutdoor:
			d.Morning, d.Afternoon = s.outdoors(day)
			d.Evening = s.dinner(day)
		case ThemeMixed:
			d.Morning, d.Afternoon, d.Evening = s.landmark(day), s.shopping(day), s.night(day)
		}
		out.Days = append(out.Days, d)
	}
	out.Text = Render(out, in)
	return out
}

type synth struct {
	in Input
}

// pick rotates through category items by index.
func (s synth) pick(category string, index int) (travel.ActivityOption, bool) {
	acts := lo.Filter(s.in.Activities.In(category), func(a travel.ActivityOption, _ int) bool {
		return strings.TrimSpace(a.Title) != ""
	})
	if len(acts) == 0 {
		return travel.ActivityOption{}, false
	}
	return acts[index%len(acts)], true
}

func (s synth) arrive() string {
	if f, ok := s.in.Flights.Top(); ok {
		line := fmt.Sprintf("Arrive in %s on %s", s.in.Destination, flight.Describe(f))
		if f.ArrivalTime != "" {
			line += fmt.Sprintf(" (lands %s)", f.ArrivalTime)
		}
		return line + "."
	}
	return fmt.Sprintf("Arrive in %s and make your way to the city center.", s.in.Destination)
}

func (s synth) checkIn() string {
	if h, ok := s.in.Hotels.Top(); ok && h.Name != "" {
		line := "Check in at " + h.Name
		if h.Address != "" {
			line += " (" + h.Address + ")"
		}
		return line + " and take an orientation walk around the neighborhood."
	}
	return "Check in at your accommodation and take an orientation walk around the neighborhood."
}

func (s synth) welcomeDinner() string {
	if a, ok := s.pick(activity.Food, 1); ok {
		return "Welcome dinner at " + Mention(a) + "."
	}
	return fmt.Sprintf("Welcome dinner at a local restaurant to sample the cuisine of %s.", s.in.Destination)
}

func (s synth) checkOut() string {
	if h, ok := s.in.Hotels.Top(); ok && h.Name != "" {
		return "Pack up and check out of " + h.Name + "."
	}
	return "Pack up and check out of your accommodation."
}

func (s synth) farewellSight(day int) string {
	if a, ok := s.pick(activity.Attractions, day); ok {
		return "Take a last look at " + Mention(a) + " before heading out."
	}
	return fmt.Sprintf("Pick up souvenirs and enjoy a final stroll through %s.", s.in.Destination)
}

func (s synth) depart() string {
	if f, ok := s.in.Flights.Top(); ok && f.Airline != "" {
		return fmt.Sprintf("Head to the airport for your return flight with %s.", f.Airline)
	}
	return "Head to the airport for your return journey."
}

func (s synth) museum(day int) string {
	if a, ok := s.pick(activity.Museums, day/3); ok {
		return "Visit " + Mention(a) + "."
	}
	return fmt.Sprintf("Explore one of the museums or galleries of %s.", s.in.Destination)
}

func (s synth) landmark(day int) string {
	if a, ok := s.pick(activity.Attractions, day); ok {
		return "See " + Mention(a) + "."
	}
	return fmt.Sprintf("Discover the historic landmarks of %s.", s.in.Destination)
}

func (s synth) dinner(day int) string {
	if a, ok := s.pick(activity.Food, day); ok {
		return "Dinner at " + Mention(a) + "."
	}
	return "Dinner at a well-reviewed local restaurant."
}

func (s synth) outdoors(day int) (morning, afternoon string) {
	if a, ok := s.pick(activity.Outdoor, day/3); ok {
		return "Spend the day outdoors at " + Mention(a) + ".",
			"Continue at " + a.Title + " with a picnic lunch and time to explore."
	}
	return fmt.Sprintf("Head outdoors for a park or a scenic walk around %s.", s.in.Destination),
		"Keep enjoying the open air with a relaxed afternoon outside."
}

func (s synth) shopping(day int) string {
	if a, ok := s.pick(activity.Shopping, day); ok {
		return "Go shopping at " + Mention(a) + "."
	}
	return "Browse the local shops and markets."
}

func (s synth) night(day int) string {
	if a, ok := s.pick(activity.Nightlife, day); ok {
		return "Spend the evening at " + Mention(a) + "."
	}
	if a, ok := s.pick(activity.Food, day); ok {
		return "Dinner at " + Mention(a) + "."
	}
	return fmt.Sprintf("Enjoy the evening entertainment %s has to offer.", s.in.Destination)
}

// Mention renders an activity as a markdown link when it has a URL, followed
// by its rating.
func Mention(a travel.ActivityOption) string {
	name := a.Title
	if u := a.URL(); u != "" {
		name = fmt.Sprintf("[%s](%s)", a.Title, u)
	}
	if a.Rating > 0 {
		name += fmt.Sprintf(" (%.1f stars)", a.Rating)
	}
	return name
}

// Render produces the markdown text of an itinerary.
func Render(it travel.Itinerary, in Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %d-Day Itinerary for %s\n", it.NumberOfDays, it.Destination)
	fmt.Fprintf(&sb, "%s to %s\n\n", it.StartDate, it.EndDate)

	if in.Location.Description != "" {
		sb.WriteString(in.Location.Description)
		sb.WriteString("\n\n")
	}
	if f, ok := in.Flights.Top(); ok {
		fmt.Fprintf(&sb, "Flight: %s", flight.Describe(f))
		if f.Price > 0 {
			fmt.Fprintf(&sb, " - %s %.0f", lo.CoalesceOrEmpty(in.Flights.Query.Currency, flight.DefaultCurrency), f.Price)
		}
		sb.WriteString("\n")
	}
	if h, ok := in.Hotels.Top(); ok && h.Name != "" {
		fmt.Fprintf(&sb, "Stay: %s", h.Name)
		if h.Price != "" {
			fmt.Fprintf(&sb, " - %s per night", h.Price)
		}
		sb.WriteString("\n")
	}

	for _, d := range it.Days {
		fmt.Fprintf(&sb, "\n## Day %d - %s (%s)\n\n", d.Day, d.Date, activity.Title(d.Theme))
		fmt.Fprintf(&sb, "### Morning\n%s\n\n", d.Morning)
		fmt.Fprintf(&sb, "### Afternoon\n%s\n\n", d.Afternoon)
		fmt.Fprintf(&sb, "### Evening\n%s\n", d.Evening)
	}
	return sb.String()
}
