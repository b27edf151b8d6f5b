package weather

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agrisight/internal/domain/entity"
)

func TestInterpret_ColdAndWet(t *testing.T) {
	advice := Interpret(&entity.WeatherReport{
		Temperature: 2,
		Humidity:    90,
		Description: "light rain",
		WindSpeed:   3,
	})
	require.Len(t, advice, 3)
	require.Contains(t, advice[0], "Холодно")
	require.Contains(t, advice[1], "влажность")
	require.Contains(t, advice[2], "дождь")
}

func TestInterpret_OptimalClear(t *testing.T) {
	advice := Interpret(&entity.WeatherReport{
		Temperature: 27,
		Humidity:    50,
		Description: "clear sky",
	})
	require.Len(t, advice, 2)
	require.Contains(t, advice[0], "Оптимальные")
	require.Contains(t, advice[1], "Ясно")
}

func TestInterpret_WindyHeat(t *testing.T) {
	advice := Interpret(&entity.WeatherReport{
		Temperature: 38,
		Humidity:    20,
		Description: "scattered clouds",
		WindSpeed:   12,
	})
	require.Contains(t, advice[0], "Жара")
	require.Contains(t, advice[len(advice)-1], "ветер")
}
