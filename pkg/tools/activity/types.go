package activity

import "github.com/hamzaessahbaoui/travel-planner/pkg/travel"

// SearchActivitiesArgs represents arguments for the search_activities operation.
type SearchActivitiesArgs struct {
	Location   string   `json:"location" jsonschema:"required,description=The location to search for activities."`
	Categories []string `json:"categories,omitempty" jsonschema:"description=Optional categories like outdoor or museums or food. Defaults to attractions food outdoor museums nightlife and shopping."`
}

// SearchActivitiesResponse carries the formatted summary, the destination facts
// and the activities grouped by category.
type SearchActivitiesResponse struct {
	Message      string                `json:"message"`
	LocationData travel.LocationInfo   `json:"locationData"`
	Activities   travel.ActivityResult `json:"activities"`
}
