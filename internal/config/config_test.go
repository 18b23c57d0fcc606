package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 8081

[database]
host = "localhost"
user = "postgres"
password = "postgres"
dbname = "tireservice"

[logs]
level = "debug"

[rabbitmq]
enabled = false

[schedule]
default_slot_duration = 60
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 60, cfg.Schedule.DefaultSlotDuration)
	assert.Equal(t, 31, cfg.Schedule.MaxGenerationDays)
	assert.Equal(t, 30, cfg.Schedule.AdvanceBookingDays)
	assert.Equal(t, 60, cfg.Schedule.MinBookingNoticeMinutes)
	assert.False(t, cfg.UserService.Enabled)
	assert.Equal(t, 3, cfg.UserService.Timeout)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=tireservice sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_HTTP_PORT", "9090")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
}

func TestLoad_Validation(t *testing.T) {
	_, err := Load(writeConfig(t, testConfig+"\n[redis]\nenabled = true\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "x"

[schedule]
default_slot_duration = 5
`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, testConfig+"\n[user_service]\nenabled = true\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
