package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"all empty", []string{"", "   "}, ""},
		{"first non empty", []string{"foo", "bar"}, "foo"},
		{"skips whitespace", []string{"   ", "bar"}, "bar"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Fatalf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestParseIntWithDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{"blank returns default", "", 7, 7},
		{"invalid returns default", "abc", 3, 3},
		{"valid parses value", "42", 0, 42},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseIntWithDefault(tt.value, tt.def); got != tt.want {
				t.Fatalf("parseIntWithDefault(%q, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseDurationWithDefault(t *testing.T) {
	t.Parallel()

	def := 5 * time.Second
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"blank returns default", "", def},
		{"invalid returns default", "nonsense", def},
		{"valid parses", "2m", 2 * time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseDurationWithDefault(tt.value, def); got != tt.want {
				t.Fatalf("parseDurationWithDefault(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseBoolWithDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{"blank returns default", "", true, true},
		{"invalid returns default", "nope", false, false},
		{"valid parses", "true", false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseBoolWithDefault(tt.value, tt.def); got != tt.want {
				t.Fatalf("parseBoolWithDefault(%q, %t) = %t, want %t", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_ADDR", "ADDR", "SERVER_SHUTDOWN_TIMEOUT",
		"STORAGE_DRIVER", "DATABASE_URL", "DB_URL", "DATABASE_MAX_IDLE_CONNS",
		"DATABASE_MAX_OPEN_CONNS", "DATABASE_CONN_MAX_LIFETIME", "DATABASE_CONN_MAX_IDLE_TIME",
		"DATABASE_USE_MOCK", "LOG_LEVEL", "LOG_FILE", "SESSION_LIFETIME",
		"SESSION_COOKIE_NAME", "SESSION_COOKIE_DOMAIN", "SESSION_COOKIE_SECURE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnvironment(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Storage.Driver != DriverSQLite || cfg.Storage.DSN != "foodcost.db" {
		t.Fatalf("Storage = %+v", cfg.Storage)
	}
	if cfg.Session.CookieName != "foodcost_session" || !cfg.Session.CookieSecure {
		t.Fatalf("Session = %+v", cfg.Session)
	}
}

func TestLoadUsesEnvironment(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "10")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "100")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "1h")
	t.Setenv("DATABASE_CONN_MAX_IDLE_TIME", "30m")
	t.Setenv("DATABASE_USE_MOCK", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/var/log/foodcost.log")
	t.Setenv("SESSION_LIFETIME", "45m")
	t.Setenv("SESSION_COOKIE_NAME", "custom_session")
	t.Setenv("SESSION_COOKIE_DOMAIN", "example.com")
	t.Setenv("SESSION_COOKIE_SECURE", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Driver != DriverPostgres {
		t.Fatalf("Storage.Driver = %q", cfg.Storage.Driver)
	}
	if cfg.Storage.DSN != "postgres://example" {
		t.Fatalf("Storage.DSN = %q", cfg.Storage.DSN)
	}
	if cfg.Storage.MaxIdleConns != 10 {
		t.Fatalf("Storage.MaxIdleConns = %d", cfg.Storage.MaxIdleConns)
	}
	if cfg.Storage.MaxOpenConns != 100 {
		t.Fatalf("Storage.MaxOpenConns = %d", cfg.Storage.MaxOpenConns)
	}
	if cfg.Storage.ConnMaxLifetime != time.Hour {
		t.Fatalf("Storage.ConnMaxLifetime = %s", cfg.Storage.ConnMaxLifetime)
	}
	if cfg.Storage.ConnMaxIdleTime != 30*time.Minute {
		t.Fatalf("Storage.ConnMaxIdleTime = %s", cfg.Storage.ConnMaxIdleTime)
	}
	if !cfg.Storage.UseMock {
		t.Fatalf("Storage.UseMock = %t, want true", cfg.Storage.UseMock)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/var/log/foodcost.log" {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}
	if cfg.Session.Lifetime != 45*time.Minute {
		t.Fatalf("Session.Lifetime = %s", cfg.Session.Lifetime)
	}
	if cfg.Session.CookieName != "custom_session" {
		t.Fatalf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Session.CookieDomain != "example.com" {
		t.Fatalf("Session.CookieDomain = %q", cfg.Session.CookieDomain)
	}
	if cfg.Session.CookieSecure {
		t.Fatalf("Session.CookieSecure = %t, want false", cfg.Session.CookieSecure)
	}
}

func TestLoadPrefersServerAddr(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("ADDR", ":7000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9000")
	}
}

func TestLoadOverlaysConfigFile(t *testing.T) {
	clearEnvironment(t)
	path := filepath.Join(t.TempDir(), "foodcost.yaml")
	contents := []byte(`server:
  addr: ":9090"
storage:
  driver: memory
session:
  lifetime: 2h
  cookieName: from_file
`)
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SESSION_COOKIE_NAME", "from_env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Fatalf("Storage.Driver = %q", cfg.Storage.Driver)
	}
	if cfg.Session.Lifetime != 2*time.Hour {
		t.Fatalf("Session.Lifetime = %s", cfg.Session.Lifetime)
	}
	if cfg.Session.CookieName != "from_env" {
		t.Fatalf("Session.CookieName = %q, want environment to win", cfg.Session.CookieName)
	}
}

func TestLoadRejectsInvalidStorage(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		dsn    string
	}{
		{"unknown driver", "mongo", "mongodb://x"},
		{"postgres without dsn", "postgres", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvironment(t)
			path := filepath.Join(t.TempDir(), "foodcost.yaml")
			contents := []byte("storage:\n  driver: " + tt.driver + "\n  dsn: \"" + tt.dsn + "\"\n")
			if err := os.WriteFile(path, contents, 0o600); err != nil {
				t.Fatalf("write config file: %v", err)
			}
			t.Setenv("CONFIG_FILE", path)

			if _, err := Load(); err == nil {
				t.Fatalf("expected Load() to reject driver %q with dsn %q", tt.driver, tt.dsn)
			}
		})
	}
}
