// Package config loads the server configuration from flags, environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения (STARMAP_AUTH_JWT_SECRET и т.д.)
const EnvPrefix = "STARMAP"

// MinSecretLen минимальная длина секрета подписи токенов в байтах
const MinSecretLen = 16

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Config is the effective configuration of the server and the CLI
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Admin   AdminConfig   `mapstructure:"admin" yaml:"admin"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ServerConfig параметры HTTP сервера
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	PublicDir       string        `mapstructure:"public_dir" yaml:"public_dir"`
	CORSOrigins     []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// StorageConfig пути к файлам баз данных
type StorageConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	RevocationPath string `mapstructure:"revocation_path" yaml:"revocation_path"`
}

// AuthConfig параметры сессий
type AuthConfig struct {
	JWTSecret          string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	SessionTTL         time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	LoginRatePerMinute int           `mapstructure:"login_rate_per_minute" yaml:"login_rate_per_minute"`
}

// AdminConfig учетные данные первого администратора
type AdminConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// LogConfig параметры логирования
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SetDefaults registers every key with its default value.
// Ключи без значения по умолчанию не видны AutomaticEnv при Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.public_dir", "./public")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("storage.path", "data/starmap.db")
	v.SetDefault("storage.revocation_path", "data/revoked.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.session_ttl", 7*24*time.Hour)
	v.SetDefault("auth.login_rate_per_minute", 20)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// NewViper создает viper с префиксом окружения и, если задан, файлом конфигурации.
// Отсутствие файла по умолчанию (./starmap.yaml) не является ошибкой.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("starmap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// Load декодирует конфигурацию из v без проверки
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate проверяет значения, без которых сервер не может стартовать
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < MinSecretLen {
		return fmt.Errorf("%w: auth.jwt_secret must be at least %d bytes (set %s_AUTH_JWT_SECRET)",
			ErrInvalidConfig, MinSecretLen, EnvPrefix)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("%w: auth.session_ttl must be positive", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Storage.Path == "" || c.Storage.RevocationPath == "" {
		return fmt.Errorf("%w: storage paths are required", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be text or json", ErrInvalidConfig)
	}
	return nil
}

// Redacted returns a copy safe for printing: secrets are masked
func (c Config) Redacted() Config {
	const mask = "***"
	if c.Auth.JWTSecret != "" {
		c.Auth.JWTSecret = mask
	}
	if c.Admin.Password != "" {
		c.Admin.Password = mask
	}
	c.Server.CORSOrigins = append([]string(nil), c.Server.CORSOrigins...)
	return c
}

// NewLogger создает slog логгер согласно настройкам
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
	}
}
