package web

import (
	"github.com/gin-gonic/gin"

	app "agrisight/internal/application"
	"agrisight/internal/container"
	"agrisight/internal/domain/port"
)

// Server HTTP-поверхность: приём снимков с ESP32, REST API для панели.
type Server struct {
	intake    *app.IntakeService
	gallery   *app.GalleryService
	telemetry *app.TelemetryService
	chat      *app.ChatService
	weather   port.WeatherProvider
	device    port.DeviceController
}

func NewServer(c *container.Container) *Server {
	return &Server{
		intake:    c.IntakeService,
		gallery:   c.GalleryService,
		telemetry: c.TelemetryService,
		chat:      c.ChatService,
		weather:   c.Weather,
		device:    c.Device,
	}
}

// Router собирает gin-движок со всеми маршрутами.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	// Камера ESP32 шлёт кадры сюда
	r.POST("/scan", s.deviceScan)

	api := r.Group("/api")
	{
		api.POST("/upload", s.upload)
		api.POST("/analyze", s.analyze)
		api.GET("/scans", s.listScans)
		api.DELETE("/scans/:id", s.deleteScan)
		api.GET("/download/:filename", s.download)

		api.POST("/sensor", s.postSensor)
		api.GET("/sensors", s.listSensors)
		api.POST("/relay/:action", s.relay)
		api.GET("/actions", s.listActions)

		api.GET("/weather", s.getWeather)

		api.POST("/chat", s.postChat)
		api.GET("/chats/:scanID", s.listChat)

		api.GET("/health", s.health)
	}

	return r
}

// Run запускает HTTP-сервер на указанном порту.
func (s *Server) Run(port string) error {
	return s.Router().Run(":" + port)
}
