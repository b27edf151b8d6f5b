package container

import (
	app "agrisight/internal/application"
	"agrisight/internal/domain/port"
)

// Deps все порты, нужные для сборки сервисов приложения.
type Deps struct {
	Store      port.ImageStore
	Scans      port.ScanRepository
	Sensors    port.SensorRepository
	Actions    port.ActionRepository
	WeatherLog port.WeatherRepository
	Chats      port.ChatRepository
	Users      port.UserRepository
	Enhancer   port.ImageEnhancer
	Classifier port.ImageClassifier
	Identifier port.DiseaseIdentifier
	Notifier   port.Notifier
	Device     port.DeviceController
	Advisor    port.Advisor
	Weather    port.WeatherProvider

	StrictNoResult bool
}

type Container struct {
	UserService      *app.UserService
	IntakeService    *app.IntakeService
	TelemetryService *app.TelemetryService
	ChatService      *app.ChatService
	GalleryService   *app.GalleryService

	Device  port.DeviceController
	Weather port.WeatherProvider
}

func New(d Deps) *Container {
	userService := app.NewUserService(d.Users)
	intakeService := app.NewIntakeService(d.Store, d.Scans, d.Enhancer, d.Classifier, d.Identifier, d.Notifier, d.StrictNoResult)
	telemetryService := app.NewTelemetryService(d.Sensors, d.Actions, d.WeatherLog, d.Device, d.Notifier)
	chatService := app.NewChatService(d.Advisor, d.Chats, d.Scans)
	galleryService := app.NewGalleryService(d.Store, d.Scans, d.Chats)

	return &Container{
		UserService:      userService,
		IntakeService:    intakeService,
		TelemetryService: telemetryService,
		ChatService:      chatService,
		GalleryService:   galleryService,
		Device:           d.Device,
		Weather:          d.Weather,
	}
}
