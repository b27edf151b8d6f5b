package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config все настройки процесса из окружения.
type Config struct {
	// Telegram
	TelegramToken  string
	TelegramChatID int64

	// Внешние API
	KindwiseAPIKey    string
	KindwiseBaseURL   string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenWeatherAPIKey string

	// Контроллер теплицы
	ESP32Host string
	ESP32Port int

	// Хранилища. Пустой DSN — репозитории в памяти,
	// пустой MinioEndpoint — артефакты на локальном диске.
	DatabaseDSN   string
	UploadDir     string
	MinioEndpoint string
	MinioAccess   string
	MinioSecret   string
	MinioBucket   string
	MinioUseSSL   bool

	// Модели компьютерного зрения
	SRModelPath       string
	SRScale           int
	RouterModelPath   string
	RouterClassesPath string

	// HTTP
	HTTPPort string

	// StrictNoResult: исчерпанный бюджет опроса считать ошибкой,
	// а не результатом "No disease detected".
	StrictNoResult bool
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: getInt64("TELEGRAM_CHAT_ID", 0),

		KindwiseAPIKey:    getFirst("KINDWISE_API_KEY", "CROP_HEALTH_API_KEY"),
		KindwiseBaseURL:   os.Getenv("KINDWISE_BASE_URL"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   os.Getenv("OPENROUTER_MODEL"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),

		ESP32Host: os.Getenv("ESP32_IP"),
		ESP32Port: getInt("ESP32_PORT", 80),

		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		UploadDir:     getDefault("UPLOAD_DIR", "static/uploads"),
		MinioEndpoint: os.Getenv("MINIO_ENDPOINT"),
		MinioAccess:   os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecret:   os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:   getDefault("MINIO_BUCKET", "agrisight-uploads"),
		MinioUseSSL:   os.Getenv("MINIO_USE_SSL") == "true",

		SRModelPath:       getDefault("SR_MODEL_PATH", "models/sr/ESPCN_x4.pb"),
		SRScale:           getInt("SR_SCALE", 4),
		RouterModelPath:   getDefault("ROUTER_MODEL_PATH", "models/router/model.onnx"),
		RouterClassesPath: getDefault("ROUTER_CLASSES_PATH", "models/router/classes.txt"),

		HTTPPort: getDefault("PORT", "8080"),

		StrictNoResult: os.Getenv("STRICT_NO_RESULT") == "true",
	}

	return cfg, nil
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFirst(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
