package config

import (
	yamlenv "github.com/ifuryst/go-yaml-env"

	"github.com/minhland/adhub/pkg/logger"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Logger    logger.Config   `yaml:"logger"`
	Sheet     SheetConfig     `yaml:"sheet"`
	Zalo      ZaloConfig      `yaml:"zalo"`
	Facebook  FacebookConfig  `yaml:"facebook"`
	Generator GeneratorConfig `yaml:"generator"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	Host     string `yaml:"host"`
	Mode     string `yaml:"mode"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
	TimeZone string `yaml:"timezone"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SheetConfig points at the spreadsheet that acts as the listing
// system-of-record. The service account key is the raw PEM block; escaped
// newlines are accepted because that is how the key usually arrives via env.
type SheetConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	SheetName     string `yaml:"sheet_name"`
	ClientEmail   string `yaml:"client_email"`
	PrivateKey    string `yaml:"private_key"`
	BaseURL       string `yaml:"base_url"`
}

type ZaloConfig struct {
	AccessToken string `yaml:"access_token"`
	BaseURL     string `yaml:"base_url"`
}

type FacebookConfig struct {
	PageID      string `yaml:"page_id"`
	AccessToken string `yaml:"access_token"`
	BaseURL     string `yaml:"base_url"`
}

type GeneratorConfig struct {
	Endpoint  string `yaml:"endpoint"`
	MaxLength int    `yaml:"max_length"`
}

func LoadConfig(configPath string) (*Config, error) {
	cfg, err := yamlenv.LoadConfig[Config](configPath)
	if err != nil {
		return nil, err
	}

	// Set default values
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5335
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.TimeZone == "" {
		cfg.Database.TimeZone = "UTC"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Sheet.SheetName == "" {
		cfg.Sheet.SheetName = "DS khách hàng Tinh Long"
	}
	if cfg.Sheet.BaseURL == "" {
		cfg.Sheet.BaseURL = "https://sheets.googleapis.com"
	}
	if cfg.Zalo.BaseURL == "" {
		cfg.Zalo.BaseURL = "https://openapi.zalo.me"
	}
	if cfg.Facebook.BaseURL == "" {
		cfg.Facebook.BaseURL = "https://graph.facebook.com/v14.0"
	}
	if cfg.Generator.Endpoint == "" {
		cfg.Generator.Endpoint = "http://localhost:8000/generate"
	}
	if cfg.Generator.MaxLength == 0 {
		cfg.Generator.MaxLength = 200
	}

	return cfg, nil
}
