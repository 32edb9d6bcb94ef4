package enrichment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/config"
	"github.com/Azahir21/track-pendapatan-bot/pkg/clients/weather"
)

type fakeWeather struct {
	conditions *weather.Conditions
	err        error
}

func (f *fakeWeather) CurrentConditions(context.Context, float64, float64) (*weather.Conditions, error) {
	return f.conditions, f.err
}

type fakeMarket struct {
	note string
	err  error

	lastSummary string
}

func (f *fakeMarket) GenerateMarketNote(_ context.Context, summary string) (string, error) {
	f.lastSummary = summary
	return f.note, f.err
}

func jakartaConfig() config.WeatherConfig {
	return config.WeatherConfig{Latitude: -6.2088, Longitude: 106.8456}
}

func TestSections_BothProviders(t *testing.T) {
	weatherClient := &fakeWeather{conditions: &weather.Conditions{Temperature: 31, WindSpeed: 12, Code: 0}}
	marketClient := &fakeMarket{note: "Stock up before the holiday week."}

	svc := NewService(weatherClient, marketClient, jakartaConfig(), zap.NewNop())
	sections := svc.Sections(context.Background(), "This Week: total income 500 across 2 entries.")

	assert.Equal(t, []string{
		"Weather update: clear sky, 31C, wind 12 km/h.",
		"Business note: Stock up before the holiday week.",
	}, sections)
	assert.Equal(t, "This Week: total income 500 across 2 entries.", marketClient.lastSummary)
}

func TestSections_FailingProvidersAreOmitted(t *testing.T) {
	weatherClient := &fakeWeather{err: errors.New("timeout")}
	marketClient := &fakeMarket{err: errors.New("rate limited")}

	svc := NewService(weatherClient, marketClient, jakartaConfig(), zap.NewNop())

	assert.Empty(t, svc.Sections(context.Background(), "summary"))
}

func TestSections_PartialFailureKeepsOtherSection(t *testing.T) {
	weatherClient := &fakeWeather{err: errors.New("timeout")}
	marketClient := &fakeMarket{note: "Quiet period ahead."}

	svc := NewService(weatherClient, marketClient, jakartaConfig(), zap.NewNop())
	sections := svc.Sections(context.Background(), "summary")

	assert.Equal(t, []string{"Business note: Quiet period ahead."}, sections)
}

func TestSections_NilClients(t *testing.T) {
	svc := NewService(nil, nil, config.WeatherConfig{}, nil)

	assert.Empty(t, svc.Sections(context.Background(), "summary"))
}

func TestSections_EmptyNoteIsDropped(t *testing.T) {
	svc := NewService(nil, &fakeMarket{note: ""}, jakartaConfig(), zap.NewNop())

	assert.Empty(t, svc.Sections(context.Background(), "summary"))
}
