package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/college_admin/internal/apperr"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/college?sslmode=disable")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ISSUER", "college")
	t.Setenv("JWT_AUDIENCE", "college-clients")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "DB_DRIVER", "TOKEN_CLOCK_SKEW", "KAFKA_BROKERS", "KAFKA_TOPIC", "ES_STUDENT_INDEX", "CORS_ORIGINS", "DB_LOG"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "college-admin", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.TokenClockSkew)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "college_events", cfg.KafkaTopic)
	assert.Equal(t, "students", cfg.ESStudentIndex)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.DBLog)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("TOKEN_CLOCK_SKEW", "45")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("DB_LOG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 45*time.Second, cfg.TokenClockSkew)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.DBLog)
}

func TestLoadBadSkew(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_CLOCK_SKEW", "soon")

	_, err := Load()
	require.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestValidateListsEveryMissingKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ISSUER", "college")
	t.Setenv("JWT_AUDIENCE", " ")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.ErrorIs(t, err, apperr.ErrConfiguration)
	var cerr *apperr.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, []string{"DATABASE_URL", "JWT_SECRET", "JWT_AUDIENCE"}, cerr.Missing)
}

func TestValidateDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "mysql")

	cfg, err := Load()
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), apperr.ErrConfiguration)
}
