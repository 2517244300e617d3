package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_STATEMENT_TIMEOUT_MS", "2500")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("ROUTER_TIMEOUT_SEC", "5")
	t.Setenv("SCHEMA_NAME", "pagila")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.5")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2500*time.Millisecond, cfg.Database.StatementTimeout())
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 5*time.Second, cfg.Router.Timeout())
	assert.Equal(t, "pagila", cfg.Router.SchemaName)
	assert.Equal(t, 0.5, cfg.Breaker.FailureRatio)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ROUTER_TIMEOUT_SEC", "ROUTER_SAMPLE_LIMIT", "SCHEMA_NAME", "MONGO_DATABASE", "DB_SCHEMA"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Router.Timeout())
	assert.Equal(t, 10, cfg.Router.SampleLimit)
	assert.Equal(t, "dvdrental", cfg.Router.SchemaName)
	assert.Equal(t, "dvdrental", cfg.Mongo.Database)
	assert.Equal(t, "public", cfg.Database.Schema)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	os.Setenv(key, "0.25")
	assert.Equal(t, 0.25, getEnvFloat(key, 1))

	os.Setenv(key, "nope")
	assert.Equal(t, 1.0, getEnvFloat(key, 1))

	os.Unsetenv(key)
}
