package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/college_admin/internal/apperr"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string
	CORSOrigins []string

	DBDriver    string
	DatabaseURL string
	DBLog       bool

	JWTSecret      []byte
	JWTIssuer      string
	JWTAudience    string
	TokenClockSkew time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	ESURL          string
	ESUser         string
	ESPassword     string
	ESStudentIndex string
}

// Load reads .env when present and then the process environment. It does not
// validate; call Validate before serving.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("env_file_not_found", "error", err)
	}

	skew, err := EnvDurationDefault("TOKEN_CLOCK_SKEW", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "college-admin"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),
		CORSOrigins: CSVDefault(os.Getenv("CORS_ORIGINS"), []string{"*"}),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBLog:       EnvBool("DB_LOG"),

		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer:      os.Getenv("JWT_ISSUER"),
		JWTAudience:    os.Getenv("JWT_AUDIENCE"),
		TokenClockSkew: skew,

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "college_events"),

		ESURL:          os.Getenv("ES_URL"),
		ESUser:         os.Getenv("ES_USER"),
		ESPassword:     os.Getenv("ES_PASSWORD"),
		ESStudentIndex: EnvDefault("ES_STUDENT_INDEX", "students"),
	}, nil
}

// Validate reports every missing required key at once.
func (c Config) Validate() error {
	if err := apperr.RequireNonEmpty(
		"DATABASE_URL", c.DatabaseURL,
		"JWT_SECRET", string(c.JWTSecret),
		"JWT_ISSUER", c.JWTIssuer,
		"JWT_AUDIENCE", c.JWTAudience,
	); err != nil {
		return err
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("%w: DB_DRIVER must be postgres or sqlite, got %q", apperr.ErrConfiguration, c.DBDriver)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CSVDefault(v string, def []string) []string {
	if out := CSV(v); len(out) > 0 {
		return out
	}
	return def
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

// EnvDurationDefault accepts Go durations ("45s") or a bare number of seconds.
func EnvDurationDefault(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", apperr.ErrConfiguration, key, err)
	}
	return d, nil
}
