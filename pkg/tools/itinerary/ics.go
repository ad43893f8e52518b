package itinerary

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/activity"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

const productID = "-//travel-planner//itinerary//EN"

// Calendar exports the itinerary as an iCalendar document with one all-day
// event per day. Event UIDs derive from id so re-exports replace earlier ones.
func Calendar(id string, it travel.Itinerary) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(fmt.Sprintf("%s itinerary", it.Destination))

	for _, d := range it.Days {
		date, err := travel.ParseDate("date", d.Date)
		if err != nil {
			return "", fmt.Errorf("day %d: %w", d.Day, err)
		}
		event := cal.AddEvent(fmt.Sprintf("%s-day-%d", id, d.Day))
		event.SetDtStampTime(date)
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.Add(24 * time.Hour))
		event.SetSummary(fmt.Sprintf("Day %d in %s: %s", d.Day, it.Destination, activity.Title(d.Theme)))
		event.SetLocation(it.Destination)
		event.SetDescription(strings.Join([]string{
			"Morning: " + d.Morning,
			"Afternoon: " + d.Afternoon,
			"Evening: " + d.Evening,
		}, "\n"))
	}
	return cal.Serialize(), nil
}
