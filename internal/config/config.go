package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
// Значения читаются из TOML, затем переопределяются переменными окружения
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Cache     CacheConfig     `toml:"cache"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Schedule  ScheduleConfig  `toml:"schedule"`

	UserService UserServiceConfig `toml:"user_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled" env:"REDIS_ENABLED"`
	Address  string `toml:"address" env:"REDIS_ADDRESS"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

type CacheConfig struct {
	Enabled   bool `toml:"enabled" env:"CACHE_ENABLED"`
	LocalSize int  `toml:"local_size" env:"CACHE_LOCAL_SIZE"`
	LocalTTL  int  `toml:"local_ttl" env:"CACHE_LOCAL_TTL"`
	RedisTTL  int  `toml:"redis_ttl" env:"CACHE_REDIS_TTL"`
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled" env:"RABBITMQ_ENABLED"`
	URL      string `toml:"url" env:"RABBITMQ_URL"`
	Exchange string `toml:"exchange" env:"RABBITMQ_EXCHANGE"`
}

type AuthConfig struct {
	// JWTSecret пустой - доверяем заголовкам X-User-* от API gateway
	JWTSecret string `toml:"jwt_secret" env:"AUTH_JWT_SECRET"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `toml:"burst" env:"RATE_LIMIT_BURST"`

	// Адреса/подсети прокси, которым доверяем X-Forwarded-For и X-Real-IP
	TrustedProxies []string `toml:"trusted_proxies" env:"RATE_LIMIT_TRUSTED_PROXIES" envSeparator:","`
}

type ScheduleConfig struct {
	DefaultSlotDuration int `toml:"default_slot_duration" env:"SCHEDULE_DEFAULT_SLOT_DURATION"`
	MaxGenerationDays   int `toml:"max_generation_days" env:"SCHEDULE_MAX_GENERATION_DAYS"`
	// AdvanceBookingDays 0 - без ограничения
	AdvanceBookingDays      int `toml:"advance_booking_days" env:"SCHEDULE_ADVANCE_BOOKING_DAYS"`
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes" env:"SCHEDULE_MIN_BOOKING_NOTICE_MINUTES"`
}

// UserServiceConfig настройки клиента сервиса пользователей (выбранный автомобиль)
type UserServiceConfig struct {
	Enabled bool   `toml:"enabled" env:"USER_SERVICE_ENABLED"`
	URL     string `toml:"url" env:"USER_SERVICE_URL"`
	Timeout int    `toml:"timeout" env:"USER_SERVICE_TIMEOUT"`

	CacheTTL int `toml:"cache_ttl" env:"USER_SERVICE_CACHE_TTL"` // секунды, 0 - без кеша
}

// Load читает конфигурацию из TOML-файла
// Перед чтением подгружает .env (если есть), затем применяет переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database.host and database.dbname are required")
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("config: redis.address is required when redis is enabled")
	}
	if c.RabbitMQ.Enabled && (c.RabbitMQ.URL == "" || c.RabbitMQ.Exchange == "") {
		return errors.New("config: rabbitmq.url and rabbitmq.exchange are required when rabbitmq is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("config: rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	if c.Schedule.DefaultSlotDuration < 10 || c.Schedule.DefaultSlotDuration > 180 {
		return fmt.Errorf("config: schedule.default_slot_duration must be within 10..180, got %d",
			c.Schedule.DefaultSlotDuration)
	}
	if c.Schedule.MaxGenerationDays <= 0 {
		return errors.New("config: schedule.max_generation_days must be positive")
	}
	if c.Schedule.AdvanceBookingDays < 0 || c.Schedule.MinBookingNoticeMinutes < 0 {
		return errors.New("config: schedule.advance_booking_days and schedule.min_booking_notice_minutes must not be negative")
	}
	if c.UserService.Enabled && c.UserService.URL == "" {
		return errors.New("config: user_service.url is required when user_service is enabled")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-tireservice",
		},
		Cache: CacheConfig{
			LocalSize: 1000,
			LocalTTL:  30,
			RedisTTL:  300,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "tireservice.events",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Schedule: ScheduleConfig{
			DefaultSlotDuration:     30,
			MaxGenerationDays:       31,
			AdvanceBookingDays:      30,
			MinBookingNoticeMinutes: 60,
		},
		UserService: UserServiceConfig{
			Timeout:  3,
			CacheTTL: 60,
		},
	}
}
