package weather

import (
	"strings"

	"agrisight/internal/domain/entity"
)

// Interpret переводит сводку погоды в агрономические рекомендации.
func Interpret(w *entity.WeatherReport) []string {
	var advice []string

	switch {
	case w.Temperature < 5:
		advice = append(advice, "⚠️ Холодно: защитите чувствительные культуры от заморозков")
	case w.Temperature > 35:
		advice = append(advice, "⚠️ Жара: обеспечьте достаточный полив")
	case w.Temperature > 25:
		advice = append(advice, "✅ Оптимальные условия для роста")
	}

	if w.Humidity > 80 {
		advice = append(advice, "⚠️ Высокая влажность: следите за грибковыми болезнями")
	} else if w.Humidity < 30 {
		advice = append(advice, "⚠️ Сухой воздух: поливайте чаще")
	}

	desc := strings.ToLower(w.Description)
	switch {
	case strings.Contains(desc, "rain"):
		advice = append(advice, "🌧️ Ожидается дождь: сократите полив, следите за застоем воды")
	case strings.Contains(desc, "clear"):
		advice = append(advice, "☀️ Ясно: обычный график полива")
	case strings.Contains(desc, "cloud"):
		advice = append(advice, "☁️ Облачно: испарение снижено")
	}

	if w.WindSpeed > 10 {
		advice = append(advice, "💨 Сильный ветер: закрепите укрытия, увеличьте полив")
	}

	return advice
}
