package config

import (
	"os"
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("BACKEND_URL", "http://detector:5000")
	t.Setenv("REFRESH_INTERVAL_MS", "5000")
	t.Setenv("HTTP_TIMEOUT_MS", "1234")
	t.Setenv("EXPORT_BASENAME", "traffic")
	t.Setenv("MAX_UPLOAD_MB", "25")
	t.Setenv("ADMIN_API_KEYS", "adm_x, adm_y")
	t.Setenv("PUBLIC_RPM", "111")
	t.Setenv("PUBLIC_BURST", "22")
	t.Setenv("ADMIN_RPM", "33")
	t.Setenv("ADMIN_BURST", "44")

	cfg := FromEnv()

	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if cfg.BackendURL != "http://detector:5000" {
		t.Fatalf("backend wrong: %q", cfg.BackendURL)
	}
	if cfg.RefreshInterval != 5*time.Second || cfg.HTTPTimeout != 1234*time.Millisecond {
		t.Fatalf("durations wrong: %+v", cfg)
	}
	if cfg.ExportBase != "traffic" || cfg.MaxUploadMB != 25 {
		t.Fatalf("export/upload wrong: %+v", cfg)
	}
	if len(cfg.AdminAPIKeys) != 2 || cfg.AdminAPIKeys[1] != "adm_y" {
		t.Fatalf("admin keys wrong: %+v", cfg.AdminAPIKeys)
	}
	if cfg.PublicRPM != 111 || cfg.PublicBurst != 22 || cfg.AdminRPM != 33 || cfg.AdminBurst != 44 {
		t.Fatalf("rate limits wrong: %+v", cfg)
	}

	// ensure defaults don't crash if missing env
	os.Unsetenv("ADDR")
	_ = FromEnv()
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"ADDR", "LOG_DIR", "BACKEND_URL", "REFRESH_INTERVAL_MS",
		"HTTP_TIMEOUT_MS", "EXPORT_BASENAME", "MAX_UPLOAD_MB", "ADMIN_API_KEYS",
	} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.BackendURL != "http://localhost:5000" {
		t.Fatalf("default backend wrong: %q", cfg.BackendURL)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("default refresh wrong: %v", cfg.RefreshInterval)
	}
	if cfg.ExportBase != "anomaly-results" {
		t.Fatalf("default export base wrong: %q", cfg.ExportBase)
	}
	if cfg.AdminAPIKeys != nil {
		t.Fatalf("expected auth disabled by default: %+v", cfg.AdminAPIKeys)
	}
}
