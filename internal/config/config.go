// Package config loads application configuration from TOML files,
// trying a list of candidate paths and keeping a process-wide singleton.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig holds the basic application settings.
type MainConfig struct {
	AppName   string `toml:"appName"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Mode      string `toml:"mode"` // "dev" or "release"
	EnableTLS bool   `toml:"enableTls"`
	CertFile  string `toml:"certFile"`
	KeyFile   string `toml:"keyFile"`
}

// MysqlConfig holds the MySQL connection settings.
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	Db       int    `toml:"db"`
}

// LogConfig controls the zap/lumberjack logger.
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`    // MB per file
	MaxBackups int    `toml:"maxBackups"` // rotated files kept
	MaxAge     int    `toml:"maxAge"`     // days kept
	Level      string `toml:"level"`
}

// KafkaConfig selects the event fan-out mode.
// eventMode is "channel" (single process) or "kafka" (multi instance).
type KafkaConfig struct {
	EventMode  string        `toml:"eventMode"`
	HostPort   string        `toml:"hostPort"`
	EventTopic string        `toml:"eventTopic"`
	Partition  int           `toml:"partition"`
	Timeout    time.Duration `toml:"timeout"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret             string `toml:"secret"`
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // minutes
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // hours
}

// SnowflakeConfig identifies this instance for message id generation.
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"`
}

// MinioConfig holds the attachment object-store settings.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"accessKey"`
	SecretKey string `toml:"secretKey"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"useSSL"`
}

// AIProviderConfig configures one AI provider entry in the registry.
type AIProviderConfig struct {
	Name    string `toml:"name"` // "openai", "gemini", "mistral"
	APIKey  string `toml:"apiKey"`
	Model   string `toml:"model"`
	BaseURL string `toml:"baseURL"`
}

// AIConfig selects the active provider and lists the configured ones.
type AIConfig struct {
	Default   string             `toml:"default"`
	Providers []AIProviderConfig `toml:"providers"`
}

// Config aggregates all sections.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
	MinioConfig     `toml:"minioConfig"`
	AIConfig        `toml:"aiConfig"`
}

var config *Config

// LoadConfig tries the candidate paths in order and stops at the first
// file that parses.
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig returns the singleton, loading it on first use.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}
