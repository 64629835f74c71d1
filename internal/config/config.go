package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Config struct {
	AppPort            string
	DbDriver           string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	DbParams           string
	SqlitePath         string
	TrustedProxies     []string
	CorsAllowedOrigins []string
	TranslationFolder  string
	HTTPTimeout        time.Duration
	APIURL             string
	BoardLogFile       string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		DbDriver:           getEnv("DB_DRIVER", DriverMySQL),
		DbHost:             getEnv("MYSQL_HOST", "db"),
		DbPort:             getEnv("MYSQL_PORT", "3306"),
		DbUser:             getEnv("MYSQL_USER", "taskboard"),
		DbPassword:         getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:             getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:           getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		SqlitePath:         getEnv("SQLITE_PATH", "data/taskboard.db"),
		TrustedProxies:     parseList(os.Getenv("TRUSTED_PROXIES")),
		CorsAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		TranslationFolder:  getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		HTTPTimeout:        getDuration("HTTP_TIMEOUT", 15*time.Second),
		APIURL:             getEnv("TASKBOARD_API_URL", "http://localhost:8080"),
		BoardLogFile:       getEnv("BOARD_LOG_FILE", "board.log"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
