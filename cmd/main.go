package main

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"agrisight/config"
	botapi "agrisight/internal/api"
	"agrisight/internal/container"
	"agrisight/internal/domain/port"
	"agrisight/internal/infrastructure/esp32"
	"agrisight/internal/infrastructure/kindwise"
	"agrisight/internal/infrastructure/openrouter"
	"agrisight/internal/infrastructure/storage"
	tgnotify "agrisight/internal/infrastructure/telegram"
	"agrisight/internal/infrastructure/vision"
	"agrisight/internal/infrastructure/weather"
	"agrisight/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx := context.Background()

	// Модели компьютерного зрения: падаем сразу, если файлы не читаются
	enhancer, err := vision.NewGoCVEnhancer(cfg.SRModelPath, cfg.SRScale)
	if err != nil {
		log.Fatalf("Failed to load SR model: %v", err)
	}
	defer enhancer.Close()

	classifier, err := vision.NewGoCVClassifier(cfg.RouterModelPath, cfg.RouterClassesPath)
	if err != nil {
		log.Fatalf("Failed to load router model: %v", err)
	}
	defer classifier.Close()

	if !vision.Enabled {
		log.Println("WARNING: built without gocv, image pipeline is disabled")
	}

	identifier := kindwise.NewClient(kindwise.Config{
		APIKey:  cfg.KindwiseAPIKey,
		BaseURL: cfg.KindwiseBaseURL,
	})

	// Чат и погода не мешают работе конвейера: без ключей просто выключены
	var advisor port.Advisor
	if cfg.OpenRouterAPIKey != "" {
		advisor, err = openrouter.NewAdvisor(cfg.OpenRouterAPIKey, "", cfg.OpenRouterModel)
		if err != nil {
			log.Fatalf("Failed to create advisor: %v", err)
		}
	} else {
		log.Println("OPENROUTER_API_KEY is empty, agronomist chat is disabled")
	}

	var weatherClient port.WeatherProvider
	if cfg.OpenWeatherAPIKey != "" {
		weatherClient, err = weather.NewOpenWeatherClient(cfg.OpenWeatherAPIKey, "")
		if err != nil {
			log.Fatalf("Failed to create weather client: %v", err)
		}
	} else {
		log.Println("OPENWEATHER_API_KEY is empty, weather lookups are disabled")
	}

	device := esp32.NewClient(cfg.ESP32Host, cfg.ESP32Port)

	// Хранилище артефактов: MinIO при заданном endpoint, иначе локальный диск
	var store port.ImageStore
	if cfg.MinioEndpoint != "" {
		store, err = storage.NewMinIOImageStore(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccess,
			SecretKey: cfg.MinioSecret,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
	} else {
		store, err = storage.NewFSImageStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to create upload dir: %v", err)
		}
	}

	// Репозитории: Postgres при заданном DSN, иначе в памяти
	var (
		scans      port.ScanRepository
		sensors    port.SensorRepository
		actions    port.ActionRepository
		weatherLog port.WeatherRepository
		chats      port.ChatRepository
	)
	if cfg.DatabaseDSN != "" {
		db, err := storage.OpenDB(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		scans = storage.NewGormScanRepository(db)
		sensors = storage.NewGormSensorRepository(db)
		actions = storage.NewGormActionRepository(db)
		weatherLog = storage.NewGormWeatherRepository(db)
		chats = storage.NewGormChatRepository(db)
	} else {
		log.Println("DATABASE_DSN is empty, using in-memory repositories")
		scans = storage.NewMemoryScanRepository()
		sensors = storage.NewMemorySensorRepository()
		actions = storage.NewMemoryActionRepository()
		weatherLog = storage.NewMemoryWeatherRepository()
		chats = storage.NewMemoryChatRepository()
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create Telegram client: %v", err)
	}
	notifier := tgnotify.NewNotifier(api, cfg.TelegramChatID)

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		Store:          store,
		Scans:          scans,
		Sensors:        sensors,
		Actions:        actions,
		WeatherLog:     weatherLog,
		Chats:          chats,
		Users:          storage.NewMemoryUserRepository(),
		Enhancer:       enhancer,
		Classifier:     classifier,
		Identifier:     identifier,
		Notifier:       notifier,
		Device:         device,
		Advisor:        advisor,
		Weather:        weatherClient,
		StrictNoResult: cfg.StrictNoResult,
	})

	bot, err := botapi.NewBot(api, cfg.TelegramChatID, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	go func() {
		log.Println("Bot is running...")
		if err := bot.Run(); err != nil {
			log.Fatalf("Bot error: %v", err)
		}
	}()

	server := web.NewServer(appContainer)
	log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
	if err := server.Run(cfg.HTTPPort); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
