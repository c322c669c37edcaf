package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	Env      string
	Log      LogConfig
	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Postal   PostalConfig
	Payment  PaymentConfig
	Session  SessionConfig
	Admin    AdminConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DSN renders the pgx keyword/value connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", c.Host, c.Port, c.User, c.Password, c.Name)
}

// URL renders the postgres:// form used by the migration tool.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	GroupID      string
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

type PostalConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PaymentConfig struct {
	BaseURL   string
	AppID     string
	SecretKey string
	Timeout   time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type AdminConfig struct {
	Email    string
	Password string
}

// LoadEnv loads the first .env found in the working directory or up to two
// parents, falling back to .example.env. It returns the path loaded, or ""
// when none exists and only the process environment is used.
func LoadEnv() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dirs := []string{wd, filepath.Join(wd, ".."), filepath.Join(wd, "..", "..")}
	for _, name := range []string{".env", ".example.env"} {
		for _, dir := range dirs {
			path := filepath.Join(dir, name)
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func Load() Config {
	return Config{
		HTTPPort: getString("HTTP_PORT", "9000"),
		Env:      getString("APP_ENV", "development"),
		Log: LogConfig{
			Level:  getString("LOG_LEVEL", "debug"),
			Format: getString("LOG_FORMAT", "console"),
		},
		DB: DBConfig{
			Host:     getString("DB_HOST", "localhost"),
			Port:     getInt("DB_PORT", 5432),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:      getList("KAFKA_BROKERS"),
			Topic:        getString("KAFKA_TOPIC", "umaxship_events"),
			GroupID:      getString("KAFKA_GROUP_ID", "umaxship-events-consumer"),
			PollInterval: getDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
			BatchSize:    getInt("OUTBOX_BATCH_SIZE", 20),
			MaxAttempts:  getInt("OUTBOX_MAX_ATTEMPTS", 5),
		},
		Postal: PostalConfig{
			BaseURL: getString("POSTAL_BASE_URL", "https://api.postalpincode.in/pincode"),
			Timeout: getDuration("POSTAL_TIMEOUT", 5*time.Second),
		},
		Payment: PaymentConfig{
			BaseURL:   getString("PAYMENT_BASE_URL", "https://sandbox.cashfree.com/pg"),
			AppID:     os.Getenv("PAYMENT_APP_ID"),
			SecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
			Timeout:   getDuration("PAYMENT_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			TTL: getDuration("SESSION_TTL", 24*time.Hour),
		},
		Admin: AdminConfig{
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
