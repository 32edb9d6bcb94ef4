package enrichment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/config"
	"github.com/Azahir21/track-pendapatan-bot/pkg/clients/weather"
)

// WeatherClient provides current conditions at the business location.
type WeatherClient interface {
	CurrentConditions(ctx context.Context, latitude, longitude float64) (*weather.Conditions, error)
}

// MarketClient turns an income summary into a short advisory note.
type MarketClient interface {
	GenerateMarketNote(ctx context.Context, summary string) (string, error)
}

// Service composes optional context sections for outgoing report messages.
// Every lookup is best effort: a failing provider is logged and its section
// is omitted, never blocking the report itself.
type Service struct {
	weather   WeatherClient
	market    MarketClient
	latitude  float64
	longitude float64
	logger    *zap.Logger
}

// NewService wires the enrichment service. Either client may be nil to
// disable its section.
func NewService(weatherClient WeatherClient, marketClient MarketClient, cfg config.WeatherConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		weather:   weatherClient,
		market:    marketClient,
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		logger:    logger.Named("svc.enrichment"),
	}
}

// Sections returns zero or more text sections to append to a report message.
func (s *Service) Sections(ctx context.Context, summary string) []string {
	var sections []string

	if s.weather != nil {
		conditions, err := s.weather.CurrentConditions(ctx, s.latitude, s.longitude)
		if err != nil {
			s.logger.Warn("weather lookup failed, omitting section", zap.Error(err))
		} else {
			sections = append(sections, fmt.Sprintf("Weather update: %s, %.0fC, wind %.0f km/h.",
				conditions.Description(), conditions.Temperature, conditions.WindSpeed))
		}
	}

	if s.market != nil {
		note, err := s.market.GenerateMarketNote(ctx, summary)
		if err != nil {
			s.logger.Warn("market note generation failed, omitting section", zap.Error(err))
		} else if note != "" {
			sections = append(sections, "Business note: "+note)
		}
	}

	return sections
}
