package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr   string `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"wiredleaf"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	SMTPHost   string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`
	EmailFrom  string `env:"EMAIL_FROM"`
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@wiredleaf.com"`

	// Kafka (comma-separated brokers, empty disables the queue)
	KafkaBrokers     string `env:"KAFKA_BROKERS"`
	KafkaEmailTopic  string `env:"KAFKA_EMAIL_TOPIC" envDefault:"emails"`
	KafkaEventsTopic string `env:"KAFKA_EVENTS_TOPIC" envDefault:"wiredleaf.events"`
	KafkaGroupID     string `env:"KAFKA_GROUP_ID" envDefault:"wiredleaf-mailer"`

	MeetingLinkBase string  `env:"MEETING_LINK_BASE" envDefault:"https://meet.google.com"`
	RateLimitRPS    float64 `env:"RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst  int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

var AppConfig Config

// LoadConfig reads the first .env file it finds and then parses the
// process environment into AppConfig.
func LoadConfig() (Config, error) {
	envLocations := []string{
		".env",
		"config/.env",
		"../config/.env",
		"../../config/.env",
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	AppConfig = cfg
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// Brokers splits KafkaBrokers and drops blank entries.
func (c Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// DBConnString returns a postgres:// URL with escaped credentials.
func (c Config) DBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	return u.String()
}
