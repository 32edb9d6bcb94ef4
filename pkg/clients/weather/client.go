package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiURL = "https://api.open-meteo.com/v1/forecast"

// Client exposes the forecast lookup used for report enrichment.
type Client interface {
	CurrentConditions(ctx context.Context, latitude, longitude float64) (*Conditions, error)
}

// Conditions is the subset of the Open-Meteo current weather block we use.
type Conditions struct {
	Temperature float64 // degrees Celsius
	WindSpeed   float64 // km/h
	Code        int     // WMO weather code
}

// Description maps the WMO weather code onto a short human label.
func (c *Conditions) Description() string {
	switch {
	case c.Code == 0:
		return "clear sky"
	case c.Code <= 3:
		return "partly cloudy"
	case c.Code == 45 || c.Code == 48:
		return "foggy"
	case c.Code >= 51 && c.Code <= 57:
		return "drizzle"
	case c.Code >= 61 && c.Code <= 67:
		return "rain"
	case c.Code >= 71 && c.Code <= 77:
		return "snow"
	case c.Code >= 80 && c.Code <= 82:
		return "rain showers"
	case c.Code >= 95:
		return "thunderstorms"
	}
	return "changing conditions"
}

type apiClient struct {
	httpClient *resty.Client
}

// NewClient creates an Open-Meteo backed client. The API needs no key.
func NewClient() Client {
	client := resty.New().
		SetTimeout(10 * time.Second)

	return &apiClient{httpClient: client}
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// CurrentConditions fetches the present weather at the given coordinates.
func (c *apiClient) CurrentConditions(ctx context.Context, latitude, longitude float64) (*Conditions, error) {
	var respBody forecastResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":        fmt.Sprintf("%.4f", latitude),
			"longitude":       fmt.Sprintf("%.4f", longitude),
			"current_weather": "true",
		}).
		SetResult(&respBody).
		Get(apiURL)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("weather api error: %s", resp.Status())
	}

	return &Conditions{
		Temperature: respBody.CurrentWeather.Temperature,
		WindSpeed:   respBody.CurrentWeather.WindSpeed,
		Code:        respBody.CurrentWeather.WeatherCode,
	}, nil
}
