// Package config загружает конфигурацию сервиса из TOML-файла
// Секреты могут быть переопределены переменными окружения (в том числе из .env)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Shop        ShopConfig        `toml:"shop"`
	UserService UserServiceConfig `toml:"user_service"`
	Redis       RedisConfig       `toml:"redis"`
	SMTP        SMTPConfig        `toml:"smtp"`
	SMS         SMSConfig         `toml:"sms"`
	Reminders   RemindersConfig   `toml:"reminders"`
	Storage     StorageConfig     `toml:"storage"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	PublicURL       string `toml:"public_url"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ShopConfig настройки мастерской
type ShopConfig struct {
	Name               string `toml:"name"`
	Timezone           string `toml:"timezone"`
	BookingHorizonDays int    `toml:"booking_horizon_days"`
	ContactPhone       string `toml:"contact_phone"`
}

// Location часовой пояс мастерской, определяющий "сегодня"
func (s ShopConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`   // секунды
	CacheTTL int    `toml:"cache_ttl"` // секунды, 0 = без кеша
}

// RedisConfig настройки кеша контактов
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SMTPConfig настройки почтового канала уведомлений
type SMTPConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// SMSConfig настройки Twilio
type SMSConfig struct {
	Enabled    bool   `toml:"enabled"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	From       string `toml:"from"`
}

// RemindersConfig настройки ежедневной рассылки напоминаний
type RemindersConfig struct {
	Enabled  bool   `toml:"enabled"`  // запускать по расписанию внутри HTTP сервера
	Schedule string `toml:"schedule"` // cron выражение
}

// StorageConfig настройки хранения фотографий
type StorageConfig struct {
	PhotoDir     string `toml:"photo_dir"`
	MaxUploadMB  int64  `toml:"max_upload_mb"`
	PublicPrefix string `toml:"public_prefix"`
}

// Переменные окружения, переопределяющие секреты
const (
	envDBPassword    = "DB_PASSWORD"
	envDBHost        = "DB_HOST"
	envSMTPPassword  = "SMTP_PASSWORD"
	envTwilioSID     = "TWILIO_ACCOUNT_SID"
	envTwilioToken   = "TWILIO_AUTH_TOKEN"
	envRedisPassword = "REDIS_PASSWORD"
	envHTTPPort      = "HTTP_PORT"
)

// Load читает конфигурацию из файла, применяет .env, переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	overrideString(&c.Database.Password, envDBPassword)
	overrideString(&c.Database.Host, envDBHost)
	overrideString(&c.SMTP.Password, envSMTPPassword)
	overrideString(&c.SMS.AccountSID, envTwilioSID)
	overrideString(&c.SMS.AuthToken, envTwilioToken)
	overrideString(&c.Redis.Password, envRedisPassword)

	if v, ok := os.LookupEnv(envHTTPPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, envHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

func overrideString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "bikerepair_booking"
	}
	if c.Shop.Timezone == "" {
		c.Shop.Timezone = "Asia/Tokyo"
	}
	if c.Shop.BookingHorizonDays == 0 {
		c.Shop.BookingHorizonDays = 60
	}
	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 5
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.Reminders.Schedule == "" {
		c.Reminders.Schedule = "0 9 * * *"
	}
	if c.Storage.PhotoDir == "" {
		c.Storage.PhotoDir = "media"
	}
	if c.Storage.MaxUploadMB == 0 {
		c.Storage.MaxUploadMB = 20
	}
	if c.Storage.PublicPrefix == "" {
		c.Storage.PublicPrefix = "/media/"
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
	}
	if _, err := c.Shop.Location(); err != nil {
		return fmt.Errorf("%w: shop.timezone: %v", ErrInvalidConfig, err)
	}
	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "") {
		return fmt.Errorf("%w: smtp.host and smtp.from are required when smtp is enabled", ErrInvalidConfig)
	}
	if c.SMS.Enabled && (c.SMS.AccountSID == "" || c.SMS.AuthToken == "" || c.SMS.From == "") {
		return fmt.Errorf("%w: sms.account_sid, sms.auth_token and sms.from are required when sms is enabled", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	return nil
}
