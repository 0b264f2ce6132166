package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort          string
	AuctionURL          string
	FetchTimeoutSeconds string
	InsecureSkipVerify  bool
	LogLevel            string
}

// DefaultAuctionURL is the TWSE IPO auction announcement endpoint.
const DefaultAuctionURL = "https://www.twse.com.tw/rwd/zh/announcement/auction"

// FetchTimeout returns the outbound fetch timeout from environment or the
// 10 second default.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds == "" {
		return 10 * time.Second
	}

	seconds, err := strconv.Atoi(c.FetchTimeoutSeconds)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid FETCH_TIMEOUT_SECONDS value: %s, using default 10 seconds", c.FetchTimeoutSeconds)
		return 10 * time.Second
	}

	return time.Duration(seconds) * time.Second
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		AuctionURL:          getEnv("TWSE_AUCTION_URL", DefaultAuctionURL),
		FetchTimeoutSeconds: getEnv("FETCH_TIMEOUT_SECONDS", "10"),
		InsecureSkipVerify:  getEnvBool("TWSE_INSECURE_SKIP_VERIFY", true),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logrus.Warnf("Invalid boolean value for %s: %s, using default %v", key, value, fallback)
		return fallback
	}
	return parsed
}
