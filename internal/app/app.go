package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/prospect/internal/common"
	"github.com/ternarybob/prospect/internal/handlers"
	"github.com/ternarybob/prospect/internal/interfaces"
	"github.com/ternarybob/prospect/internal/services/aggregator"
	"github.com/ternarybob/prospect/internal/services/catalog"
	"github.com/ternarybob/prospect/internal/services/events"
	"github.com/ternarybob/prospect/internal/services/places"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	EventService      interfaces.EventService
	PlacesService     interfaces.PlacesService
	CatalogService    interfaces.CatalogService
	AggregatorService interfaces.AggregatorService

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	SearchHandler  *handlers.SearchHandler
	CatalogHandler *handlers.CatalogHandler
	WSHandler      *handlers.WebSocketHandler
}

// New wires up all services and handlers
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	a.EventService = events.NewService(logger)

	catalogService, err := catalog.NewService(config.Catalog.File, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load category catalog: %w", err)
	}
	a.CatalogService = catalogService

	a.PlacesService = places.NewClient(&config.PlacesAPI, logger)

	a.AggregatorService = aggregator.NewService(
		&config.Aggregator,
		&config.PlacesAPI,
		a.PlacesService,
		a.CatalogService,
		a.EventService,
		logger,
	)

	a.APIHandler = handlers.NewAPIHandler(logger)
	a.SearchHandler = handlers.NewSearchHandler(a.AggregatorService, logger)
	a.CatalogHandler = handlers.NewCatalogHandler(a.CatalogService, logger)
	a.WSHandler = handlers.NewWebSocketHandler(a.EventService, logger, &config.WebSocket)

	return a, nil
}

// Close shuts down application components
func (a *App) Close() {
	if a.WSHandler != nil {
		a.WSHandler.Close()
	}
	if a.EventService != nil {
		if err := a.EventService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close event service")
		}
	}
}
