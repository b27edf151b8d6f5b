package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agrisight/internal/infrastructure/vision"
	"agrisight/internal/infrastructure/weather"
)

// postSensor принимает показания датчиков от ESP32.
// Значение -1 означает сбой чтения датчика и заменяется предыдущим.
func (s *Server) postSensor(c *gin.Context) {
	var req struct {
		Moisture    *float64 `json:"moisture" binding:"required"`
		Temperature *float64 `json:"temperature" binding:"required"`
		Humidity    *float64 `json:"humidity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "moisture, temperature and humidity are required"})
		return
	}

	reading, err := s.telemetry.Record(c.Request.Context(), *req.Moisture, *req.Temperature, *req.Humidity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reading"})
		return
	}

	c.JSON(http.StatusOK, reading)
}

func (s *Server) listSensors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	readings, err := s.telemetry.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch readings"})
		return
	}

	c.JSON(http.StatusOK, readings)
}

// listActions — журнал команд, отправленных устройству.
func (s *Server) listActions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := s.telemetry.Actions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch action log"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// relay включает или выключает помпу: /api/relay/on, /api/relay/off.
func (s *Server) relay(c *gin.Context) {
	action := c.Param("action")

	if err := s.telemetry.SwitchPump(c.Request.Context(), action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relay switched", "action": action})
}

// getWeather — текущая погода с агрономическими рекомендациями.
// Запрос по координатам (lat, lon) или по городу (city).
func (s *Server) getWeather(c *gin.Context) {
	if s.weather == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Weather service is not configured"})
		return
	}

	ctx := c.Request.Context()

	city := c.Query("city")
	latQ, lonQ := c.Query("lat"), c.Query("lon")

	switch {
	case latQ != "" && lonQ != "":
		lat, errLat := strconv.ParseFloat(latQ, 64)
		lon, errLon := strconv.ParseFloat(lonQ, 64)
		if errLat != nil || errLon != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
			return
		}
		w, err := s.weather.ByCoordinates(ctx, lat, lon)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Weather service unavailable"})
			return
		}
		s.telemetry.RecordWeather(ctx, w)
		c.JSON(http.StatusOK, gin.H{"weather": w, "advice": weather.Interpret(w)})

	case city != "":
		w, err := s.weather.ByCity(ctx, city)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Weather service unavailable"})
			return
		}
		s.telemetry.RecordWeather(ctx, w)
		c.JSON(http.StatusOK, gin.H{"weather": w, "advice": weather.Interpret(w)})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide lat+lon or city"})
	}
}

// health — живость процесса и состояние зависимостей.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"vision_models": vision.Enabled,
		"device_online": s.device.Online(c.Request.Context()),
	})
}
