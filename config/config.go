package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	WhatsApp WhatsAppConfig
	Rankings RankingsConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// WhatsAppConfig controls checkout deep-link generation.
// Host is the messaging-service host (wa.me); StorePhone is the shop's
// number the client-side checkout sends orders to.
type WhatsAppConfig struct {
	Host       string
	StorePhone string
}

type RankingsConfig struct {
	RefreshCron string
	Limit       int
	CacheTTL    time.Duration
}

// ClientConfig is used by cmd/client only.
type ClientConfig struct {
	APIBaseURL string
	CartFile   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "fitshop"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		WhatsApp: WhatsAppConfig{
			Host:       getEnv("WHATSAPP_HOST", "wa.me"),
			StorePhone: getEnv("WHATSAPP_STORE_PHONE", "+55 11 99999-0000"),
		},
		Rankings: RankingsConfig{
			RefreshCron: getEnv("RANKINGS_REFRESH_CRON", "@every 15m"),
			Limit:       parseInt(getEnv("RANKINGS_LIMIT", "10"), 10),
			CacheTTL:    parseDuration(getEnv("RANKINGS_CACHE_TTL", "30m"), 30*time.Minute),
		},
		Client: ClientConfig{
			APIBaseURL: getEnv("FITSHOP_API_URL", "http://localhost:8080"),
			CartFile:   getEnv("FITSHOP_CART_FILE", defaultCartFile()),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// defaultCartFile mirrors the browser's per-client localStorage: one cart
// file per user, under the home directory.
func defaultCartFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "carrinho.json"
	}
	return home + string(os.PathSeparator) + ".fitshop" + string(os.PathSeparator) + "carrinho.json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %q, using default %d", s, defaultValue)
		return defaultValue
	}
	return v
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return v
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %q, using default %s", s, defaultValue)
		return defaultValue
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
