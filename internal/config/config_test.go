package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 清除环境变量
	os.Clearenv()

	cfg := Load()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Expected HTTP_ADDR default ':8080', got '%s'", cfg.HTTP.Addr)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected DB_HOST default 'localhost', got '%s'", cfg.Database.Host)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT default 5432, got %d", cfg.Database.Port)
	}

	if cfg.Database.Database != "kimoncrm" {
		t.Errorf("Expected DB_NAME default 'kimoncrm', got '%s'", cfg.Database.Database)
	}

	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected REDIS_ADDR default 'localhost:6379', got '%s'", cfg.Redis.Addr)
	}

	if cfg.Catalog.BaseURL != "http://localhost:8081" {
		t.Errorf("Expected CATALOG_BASE_URL default, got '%s'", cfg.Catalog.BaseURL)
	}

	if cfg.Save.DebounceMS != 500 {
		t.Errorf("Expected SAVE_DEBOUNCE_MS default 500, got %d", cfg.Save.DebounceMS)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("DB_ENABLED", "false")
	os.Setenv("SAVE_DEBOUNCE_MS", "250")
	os.Setenv("CATALOG_TIMEOUT_MS", "bogus") // 非法值回退默认
	defer os.Clearenv()

	cfg := Load()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("Expected HTTP_ADDR ':9090', got '%s'", cfg.HTTP.Addr)
	}
	if cfg.DBEnabled {
		t.Error("Expected DBEnabled false")
	}
	if cfg.Save.DebounceMS != 250 {
		t.Errorf("Expected SAVE_DEBOUNCE_MS 250, got %d", cfg.Save.DebounceMS)
	}
	if cfg.Catalog.TimeoutMS != 10000 {
		t.Errorf("Expected CATALOG_TIMEOUT_MS fallback 10000, got %d", cfg.Catalog.TimeoutMS)
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "crm",
		Password: "secret",
		Database: "kimoncrm",
		SSLMode:  "disable",
	}
	want := "host=db.local port=5433 user=crm password=secret dbname=kimoncrm sslmode=disable"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN mismatch:\n got %s\nwant %s", got, want)
	}
}
