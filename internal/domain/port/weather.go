package port

import (
	"context"

	"agrisight/internal/domain/entity"
)

// WeatherProvider текущая погода по координатам или названию города.
type WeatherProvider interface {
	ByCoordinates(ctx context.Context, lat, lon float64) (*entity.WeatherReport, error)
	ByCity(ctx context.Context, city string) (*entity.WeatherReport, error)
}
