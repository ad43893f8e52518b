// Package commands holds the travel-agent subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/hamzaessahbaoui/travel-planner/internal/config"
	"github.com/hamzaessahbaoui/travel-planner/pkg/agent"
	"github.com/hamzaessahbaoui/travel-planner/pkg/planner"
	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/activity"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/flight"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/hotel"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/itinerary"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/response"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/search"
)

// EnvFile is the dotenv file loaded before configuration is read.
var EnvFile = ".env"

// app is the wired object graph shared by the subcommands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	services agent.Services
	planner  *planner.Planner
}

func newApp() (*app, error) {
	cfg, err := config.Load(viper.GetViper(), EnvFile)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(os.Stderr)

	client, err := serpapi.New(serpapi.Config{
		APIKey:  cfg.SerpAPIKey,
		BaseURL: cfg.SerpAPIBaseURL,
		Timeout: cfg.SerpAPITimeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	flights := flight.New(client, logger)
	hotels := hotel.New(client, logger)
	activities := activity.New(client, logger)
	itineraries := itinerary.New(logger)
	plans := planner.New(flights, hotels, activities, itineraries,
		planner.WithLogger(logger),
		planner.WithTimeout(cfg.PlanTimeout),
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		services: agent.Services{
			Web:         search.New(client, logger),
			Flights:     flights,
			Hotels:      hotels,
			Activities:  activities,
			Itineraries: itineraries,
			Planner:     plans,
			Reporter:    response.New(logger),
		},
		planner: plans,
	}, nil
}

// dispatcher builds the chat dispatcher. It requires the model settings.
func (a *app) dispatcher() (*agent.Dispatcher, error) {
	if err := a.cfg.RequireModel(); err != nil {
		return nil, err
	}
	model, err := agent.NewClaude(agent.ClaudeConfig{
		APIKey: a.cfg.AnthropicAPIKey,
		Model:  a.cfg.AnthropicModel,
	}, a.logger)
	if err != nil {
		return nil, err
	}
	return agent.New(model, a.services,
		agent.WithMaxTurns(a.cfg.AgentMaxTurns),
		agent.WithLogger(a.logger),
	), nil
}
