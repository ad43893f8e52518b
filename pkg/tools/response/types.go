package response

// ModelThinkingArgs defines the arguments for the model_thinking tool.
type ModelThinkingArgs struct {
	Thinking string `json:"thinking" jsonschema:"required,description=Planning notes such as which trip parameters are known and which are still missing."`
}

// ModelResponseArgs defines the arguments for the model_response tool.
type ModelResponseArgs struct {
	Response string `json:"response" jsonschema:"required,description=The final reply to show the traveler. Include the itinerary text when a plan was created."`
}

// Ack is returned by both tools.
type Ack struct {
	Success bool `json:"success"`
}
