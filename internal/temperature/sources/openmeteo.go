package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

// McMurdo Station, used when no coordinates are configured.
const (
	DefaultLatitude  = -77.8419
	DefaultLongitude = 166.6863
)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteo reads the current air temperature at fixed coordinates.
type OpenMeteo struct {
	baseURL   string
	latitude  float64
	longitude float64
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewOpenMeteo creates an Open-Meteo source. An empty baseURL uses the public API.
func NewOpenMeteo(client *http.Client, baseURL string, latitude, longitude float64) *OpenMeteo {
	if baseURL == "" {
		baseURL = openMeteoURL
	}
	return &OpenMeteo{
		baseURL:   baseURL,
		latitude:  latitude,
		longitude: longitude,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 200 * time.Millisecond,
				MaxInterval:     time.Second,
			},
		},
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteo) Name() string {
	return "openmeteo"
}

func (p *OpenMeteo) Sample(ctx context.Context) (float64, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(p.latitude, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(p.longitude, 'f', 4, 64))
	values.Set("current_weather", "true")

	var payload struct {
		CurrentWeather *struct {
			Temperature float64 `json:"temperature"`
		} `json:"current_weather"`
	}

	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return 0, fmt.Errorf("openmeteo: %w", err)
	}
	if payload.CurrentWeather == nil {
		return 0, fmt.Errorf("openmeteo: response has no current_weather")
	}
	return payload.CurrentWeather.Temperature, nil
}
