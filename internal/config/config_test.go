package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "appointments"
password = "secret"
dbname = "appointments"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[redis]
enabled = true
addr = "localhost:6379"
db = 0
day_schedule_ttl = 120

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "appointment-service"

[cors]
allowed_origins = ["http://localhost:3000"]
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 120, cfg.Redis.DayScheduleTTL)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("nonexistent.toml")
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	content := `
[server]
http_port = 0

[database]
host = "localhost"
dbname = "appointments"
`
	_, err := Load(writeConfig(t, content))
	assert.ErrorContains(t, err, "server.http_port")
}

func TestLoad_RedisAddrRequired(t *testing.T) {
	content := `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "appointments"

[redis]
enabled = true
`
	_, err := Load(writeConfig(t, content))
	assert.ErrorContains(t, err, "redis.addr")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "pw",
		DBName:   "appointments",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=app password=pw dbname=appointments sslmode=disable",
		d.DSN())
}
