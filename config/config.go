package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Dipto6969/Police-Positive/logging"
)

// Config holds the project config values
type Config struct {
	MongoURI       string
	DatabaseName   string
	Port           string
	BaseURL        string
	JWTSecret      string
	UploadDir      string
	RedisURL       string
	GroqAPIKey     string
	NewsAPIKey     string
	SendGridAPIKey string
}

// New sets up all config related services. A local .env file is loaded
// first when present; real environment variables win.
func New() *Config {
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := logging.New()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		MongoURI:       envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:   envOrDefault("DB_NAME", "police_positive"),
		Port:           envOrDefault("PORT", "5001"),
		BaseURL:        os.Getenv("BASE_URL"),
		JWTSecret:      envOrDefault("JWT_SECRET", "your-super-secret-jwt-key"),
		UploadDir:      envOrDefault("UPLOAD_DIR", "uploads"),
		RedisURL:       os.Getenv("REDIS_URL"),
		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		NewsAPIKey:     os.Getenv("NEWS_API_KEY"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"message": %q}`, message)))
}
