package search

import "github.com/hamzaessahbaoui/travel-planner/pkg/travel"

// SearchWebArgs represents arguments for the search_web operation.
type SearchWebArgs struct {
	Query string `json:"query" jsonschema:"required,description=The search query, e.g. visa requirements for Japan."`
}

// SearchWebResponse represents the response for the search_web operation.
type SearchWebResponse struct {
	Message string             `json:"message"`
	Results []travel.WebResult `json:"results"`
	Error   string             `json:"error,omitempty"`
}
