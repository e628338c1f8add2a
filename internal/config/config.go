package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config kimoncrm-survey（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  DatabaseConfig
	Redis     struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Catalog CatalogConfig
	Save    SaveConfig
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// CatalogConfig 产品/服务目录服务配置（CRM主应用提供，只读）
type CatalogConfig struct {
	BaseURL   string
	TimeoutMS int
}

// SaveConfig 快照保存配置
type SaveConfig struct {
	// DebounceMS 防抖窗口（毫秒）：窗口内的多次保存合并为一次全量写入，
	// last write wins（与前端编辑节奏匹配，见 DESIGN.md）
	DebounceMS int
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true for local dev: if DB is unavailable, kimoncrm-survey
	// falls back to the in-memory repository.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "kimoncrm")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// 目录服务配置
	cfg.Catalog.BaseURL = getEnv("CATALOG_BASE_URL", "http://localhost:8081")
	cfg.Catalog.TimeoutMS = parseInt(getEnv("CATALOG_TIMEOUT_MS", "10000"), 10000)

	// 保存防抖窗口，默认 500ms
	cfg.Save.DebounceMS = parseInt(getEnv("SAVE_DEBOUNCE_MS", "500"), 500)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
