package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
)

func TestLoadDBConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PORT", "not-a-port")

	cfg, err := LoadDBConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, 5432, cfg.Port, "invalid values fall back to defaults")
	assert.Contains(t, cfg.DSN(), "dbname=swingbooking")
	assert.Contains(t, cfg.DSN(), "TimeZone=UTC")
}

func TestLoadDBConfig_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/test.db")

	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
}

func TestLoadDBConfig_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadDBConfig()
	assert.Error(t, err)
}

func TestLoadEngineConfig(t *testing.T) {
	t.Setenv("WEEK_STANDARD_FEE_CENTS", "55000")
	t.Setenv("WEEK_HIGH_DEMAND_PERFORMANCES", "5")
	t.Setenv("DEFAULT_CURRENCY", "chf")
	t.Setenv("ROADMAP_LOCALE", "fr")
	t.Setenv("VACATION_WINDOWS", "12-20:01-05, 07-01:08-31")

	cfg := LoadEngineConfig()

	assert.Equal(t, int64(55000), cfg.Standard.FeeCents)
	assert.Equal(t, 2, cfg.Standard.PerformanceCount)
	assert.Equal(t, 5, cfg.HighDemand.PerformanceCount)
	assert.Equal(t, "CHF", cfg.DefaultCurrency)
	assert.Equal(t, calendar.LocaleFR, cfg.Locale)
	require.Len(t, cfg.Vacations, 2)
	assert.Equal(t, "07-01:08-31", cfg.Vacations[1].String())

	planner := cfg.Planner()
	assert.Equal(t, cfg.HighDemand, planner.Defaults(calendar.TierHighDemand))
}

func TestLoadEngineConfig_InvalidWindowsKeepDefaults(t *testing.T) {
	t.Setenv("VACATION_WINDOWS", "13-01:01-05")

	cfg := LoadEngineConfig()
	assert.Equal(t, calendar.DefaultVacationWindows(), cfg.Vacations)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("PROGRAM_CACHE_TTL", "90s")
	t.Setenv("PROGRAM_CACHE_PREFIX", "sb:prog:")

	cfg := LoadRedisConfig()
	assert.Equal(t, "cache:6380", cfg.Addr)
	assert.Equal(t, 90*time.Second, cfg.TTL)
	assert.Equal(t, "sb:prog", cfg.Prefix)
	assert.True(t, cfg.Enabled())

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	assert.Equal(t, "redis:6379", LoadRedisConfig().Addr)
}

func TestNewRedisClient_Disabled(t *testing.T) {
	assert.Nil(t, NewRedisClient(nil))
	assert.Nil(t, NewRedisClient(&RedisConfig{}))
}

func TestLoadAMQPConfig(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("NOTIFY_QUEUE", "")

	cfg := LoadAMQPConfig()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.URL)
	assert.Equal(t, "swingbooking.events", cfg.Queue)
}

func TestLoadLogConfig(t *testing.T) {
	t.Setenv("LOG_DEBUG", "true")
	t.Setenv("LOG_DIR", "/var/log/swingbooking")

	cfg := LoadLogConfig()
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/var/log/swingbooking", cfg.Dir)
}
