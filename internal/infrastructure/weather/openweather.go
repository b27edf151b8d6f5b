package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// DefaultBaseURL API текущей погоды OpenWeatherMap.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherClient текущая погода для участка, метрические единицы.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewOpenWeatherClient создаёт клиент; пустой ключ — ошибка конфигурации.
func NewOpenWeatherClient(apiKey, baseURL string) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openweather api key", entity.ErrConfiguration)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type owmResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// ByCoordinates погода по координатам.
func (c *OpenWeatherClient) ByCoordinates(ctx context.Context, lat, lon float64) (*entity.WeatherReport, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.fetch(ctx, q)
}

// ByCity погода по названию города.
func (c *OpenWeatherClient) ByCity(ctx context.Context, city string) (*entity.WeatherReport, error) {
	q := url.Values{}
	q.Set("q", city)
	return c.fetch(ctx, q)
}

func (c *OpenWeatherClient) fetch(ctx context.Context, q url.Values) (*entity.WeatherReport, error) {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request failed: status %d", resp.StatusCode)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	report := &entity.WeatherReport{
		CreatedAt:   time.Now(),
		Temperature: body.Main.Temp,
		Humidity:    body.Main.Humidity,
		Pressure:    body.Main.Pressure,
		WindSpeed:   body.Wind.Speed,
		Location:    body.Name,
	}
	if len(body.Weather) > 0 {
		report.Description = body.Weather[0].Description
	}
	return report, nil
}

// Проверка реализации интерфейса
var _ port.WeatherProvider = (*OpenWeatherClient)(nil)
