package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnvToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SPINDLE_SERVER_ADDR", "server.addr"},
		{"SPINDLE_SERVER_REDIRECT_URI", "server.redirect_uri"},
		{"SPINDLE_SPOTIFY_CLIENT_ID", "spotify.client_id"},
		{"SPINDLE_DATABASE_URL", "database.url"},
		{"SPINDLE_LOG_LEVEL", "log.level"},
		{"SPINDLE_DEBUG", "debug"},
	}
	for _, tt := range tests {
		if got := envToPath(tt.in); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json defaults", cfg.Log)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := strings.Join([]string{
		"server:",
		"  addr: 0.0.0.0:9999",
		"log:",
		"  level: debug",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SPINDLE_SERVER_ADDR", "0.0.0.0:7777")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != "0.0.0.0:7777" {
		t.Errorf("Server.Addr = %q, want env value over file", cfg.Server.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want file value over default", cfg.Log.Level)
	}
}

func TestLoadBareSecretsWin(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SPINDLE_SPOTIFY_CLIENT_ID", "prefixed-id")
	t.Setenv("SPOTIFY_ID", "bare-id")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spotify.ClientID != "bare-id" {
		t.Errorf("ClientID = %q, want the bare variable to win", cfg.Spotify.ClientID)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Addr: "127.0.0.1:8080"},
			Spotify:  SpotifyConfig{ClientID: "id", ClientSecret: "secret"},
			Database: DatabaseConfig{URL: "postgres://localhost/spindle"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	c := valid()
	c.Spotify.ClientSecret = ""
	if err := c.Validate(); err == nil {
		t.Error("missing client secret accepted")
	}

	c = valid()
	c.Database.URL = ""
	if err := c.Validate(); err == nil {
		t.Error("missing database URL accepted")
	}

	c = valid()
	c.Server.Addr = ""
	if err := c.Validate(); err == nil {
		t.Error("empty server addr accepted")
	}
}

// setRequiredEnv satisfies Validate and keeps the loader away from any
// config file on the host.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SPOTIFY_ID", "test-id")
	t.Setenv("SPOTIFY_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/spindle_test")
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Chdir(t.TempDir())
}
