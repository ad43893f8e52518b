package serpapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

const (
	maxFlights    = 5
	maxHotels     = 5
	maxImages     = 2
	maxWebResults = 5
	maxActivities = 8
)

// Result is the outcome of a typed lookup: a value, or the provider error that
// prevented it.
type Result[T any] struct {
	Value T
	Err   *travel.ProviderError
}

// OK reports whether the lookup succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

func ok[T any](v T) Result[T] { return Result[T]{Value: v} }

func failed[T any](err error) Result[T] {
	var perr *travel.ProviderError
	if !errors.As(err, &perr) {
		perr = &travel.ProviderError{Message: err.Error()}
	}
	return Result[T]{Err: perr}
}

// Flights searches flights and maps up to five provider-ranked offers.
func (c *Client) Flights(ctx context.Context, q travel.FlightQuery) Result[[]travel.FlightOption] {
	data, err := c.Search(ctx, EngineFlights, map[string]string{
		"departure_id":  q.Origin,
		"arrival_id":    q.Destination,
		"outbound_date": q.DepartureDate,
		"return_date":   q.ReturnDate,
		"type":          lo.Ternary(q.ReturnDate == "", "2", "1"),
		"currency":      q.Currency,
		"hl":            "en",
	})
	if err != nil {
		return failed[[]travel.FlightOption](err)
	}
	return ok(parseFlights(data))
}

func parseFlights(data gjson.Result) []travel.FlightOption {
	items := append(data.Get("best_flights").Array(), data.Get("other_flights").Array()...)
	if len(items) == 0 {
		items = data.Get("flights").Array()
	}
	items = lo.Slice(items, 0, maxFlights)

	return lo.Map(items, func(item gjson.Result, _ int) travel.FlightOption {
		legs := item.Get("flights")
		if !legs.IsArray() {
			// Flat offer shape.
			return travel.FlightOption{
				Airline:       item.Get("airline").String(),
				FlightNumber:  item.Get("flight_number").String(),
				DepartureTime: item.Get("departure_time").String(),
				ArrivalTime:   item.Get("arrival_time").String(),
				Duration:      int(item.Get("duration").Int()),
				Price:         item.Get("price").Float(),
				Stops:         int(item.Get("stops").Int()),
			}
		}
		n := len(legs.Array())
		first := legs.Get("0")
		last := legs.Get(strconv.Itoa(max(n-1, 0)))
		return travel.FlightOption{
			Airline:       first.Get("airline").String(),
			FlightNumber:  first.Get("flight_number").String(),
			DepartureTime: first.Get("departure_airport.time").String(),
			ArrivalTime:   last.Get("arrival_airport.time").String(),
			Duration:      int(item.Get("total_duration").Int()),
			Price:         item.Get("price").Float(),
			Stops:         max(n-1, 0),
		}
	})
}

// Hotels searches hotels and maps up to five offers.
func (c *Client) Hotels(ctx context.Context, q travel.HotelQuery) Result[[]travel.HotelOption] {
	data, err := c.Search(ctx, EngineHotels, map[string]string{
		"q":              fmt.Sprintf("hotels in %s", q.Location),
		"check_in_date":  q.CheckIn,
		"check_out_date": q.CheckOut,
		"adults":         strconv.Itoa(q.Guests),
		"currency":       q.Currency,
		"hl":             "en",
	})
	if err != nil {
		return failed[[]travel.HotelOption](err)
	}
	return ok(parseHotels(data))
}

func parseHotels(data gjson.Result) []travel.HotelOption {
	items := data.Get("properties").Array()
	if len(items) == 0 {
		items = data.Get("hotels").Array()
	}
	items = lo.Slice(items, 0, maxHotels)

	return lo.Map(items, func(item gjson.Result, _ int) travel.HotelOption {
		price := item.Get("rate_per_night.lowest").String()
		if price == "" {
			price = item.Get("price").String()
		}
		rating := item.Get("overall_rating").Float()
		if rating == 0 {
			rating = item.Get("rating").Float()
		}
		images := lo.Map(lo.Slice(item.Get("images").Array(), 0, maxImages), func(img gjson.Result, _ int) string {
			if img.IsObject() {
				return img.Get("thumbnail").String()
			}
			return img.String()
		})
		return travel.HotelOption{
			Name:        item.Get("name").String(),
			Address:     item.Get("address").String(),
			Rating:      rating,
			Reviews:     int(item.Get("reviews").Int()),
			Price:       price,
			Description: item.Get("description").String(),
			Amenities:   stringArray(item.Get("amenities")),
			Images:      lo.Compact(images),
		}
	})
}

// Location looks up knowledge-graph facts and web snippets for a destination.
func (c *Client) Location(ctx context.Context, location string) Result[travel.LocationInfo] {
	data, err := c.Search(ctx, EngineLocationSearch, map[string]string{
		"q": fmt.Sprintf("%s travel information", location),
	})
	if err != nil {
		return failed[travel.LocationInfo](err)
	}
	return ok(parseLocation(location, data))
}

func parseLocation(location string, data gjson.Result) travel.LocationInfo {
	kg := data.Get("knowledge_graph")
	title := kg.Get("title").String()
	if title == "" {
		title = location
	}
	return travel.LocationInfo{
		Location:    location,
		Title:       title,
		Description: kg.Get("description").String(),
		Type:        kg.Get("type").String(),
		Weather:     kg.Get("weather").String(),
		LocalTime:   kg.Get("local_time").String(),
		Currency:    kg.Get("currency").String(),
		Language:    kg.Get("language").String(),
		WebResults:  parseWebResults(data),
	}
}

func parseWebResults(data gjson.Result) []travel.WebResult {
	items := lo.Slice(data.Get("organic_results").Array(), 0, maxWebResults)
	return lo.Map(items, func(item gjson.Result, _ int) travel.WebResult {
		return travel.WebResult{
			Title:   item.Get("title").String(),
			Link:    item.Get("link").String(),
			Snippet: item.Get("snippet").String(),
		}
	})
}

// Web runs a plain web search and returns the top organic results.
func (c *Client) Web(ctx context.Context, query string) Result[[]travel.WebResult] {
	data, err := c.Search(ctx, EngineWebSearch, map[string]string{"q": query})
	if err != nil {
		return failed[[]travel.WebResult](err)
	}
	return ok(parseWebResults(data))
}

// Activities searches things to do in location, optionally narrowed to a
// category. Localized places are preferred; generic web snippets are used
// when no place results exist.
func (c *Client) Activities(ctx context.Context, location, category string) Result[[]travel.ActivityOption] {
	query := fmt.Sprintf("things to do in %s", location)
	if category != "" {
		query = fmt.Sprintf("%s activities in %s", category, location)
	}
	data, err := c.Search(ctx, EngineActivitySearch, map[string]string{"q": query})
	if err != nil {
		return failed[[]travel.ActivityOption](err)
	}
	return ok(parseActivities(category, data))
}

func parseActivities(category string, data gjson.Result) []travel.ActivityOption {
	local := data.Get("local_results.places")
	if !local.IsArray() {
		local = data.Get("local_results")
	}
	places := lo.Slice(local.Array(), 0, maxActivities)
	if len(places) > 0 {
		return lo.Map(places, func(item gjson.Result, _ int) travel.ActivityOption {
			return travel.ActivityOption{
				Title:       item.Get("title").String(),
				Address:     item.Get("address").String(),
				Rating:      item.Get("rating").Float(),
				Reviews:     int(item.Get("reviews").Int()),
				Description: item.Get("description").String(),
				Hours:       item.Get("hours").String(),
				Phone:       item.Get("phone").String(),
				Website:     item.Get("website").String(),
				Category:    lo.CoalesceOrEmpty(item.Get("type").String(), item.Get("category").String(), category),
			}
		})
	}

	return lo.Map(parseWebResults(data), func(w travel.WebResult, _ int) travel.ActivityOption {
		return travel.ActivityOption{
			Title:    w.Title,
			Link:     w.Link,
			Snippet:  w.Snippet,
			Category: category,
		}
	})
}

func stringArray(r gjson.Result) []string {
	return lo.Map(r.Array(), func(v gjson.Result, _ int) string { return v.String() })
}
