package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string        // dashboard bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir          string        // logs directory
	BackendURL      string        // anomaly-detection API base URL
	RefreshInterval time.Duration // snapshot auto-refresh cadence; 0 disables
	HTTPTimeout     time.Duration // per-request timeout for backend calls
	ExportBase      string        // download filename prefix
	MaxUploadMB     int64         // upload size cap in megabytes
	AdminAPIKeys    []string      // keys allowed on mutating routes; empty disables auth
	PublicRPM       int           // rate limit for read routes (req/min); 0 disables
	PublicBurst     int
	AdminRPM        int // rate limit for export/upload/automation routes; 0 disables
	AdminBurst      int
}

func FromEnv() Config {
	// Bind address (Windows-friendly default)
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	// Logs
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	// Backend (local detection API by default)
	backend := os.Getenv("BACKEND_URL")
	if backend == "" {
		backend = "http://localhost:5000"
	}

	// Refresh tuning ("every 30 seconds" in the UI copy)
	refresh := 30 * time.Second
	if v := os.Getenv("REFRESH_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			refresh = time.Duration(ms) * time.Millisecond
		}
	}

	timeout := 10 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	exportBase := os.Getenv("EXPORT_BASENAME")
	if exportBase == "" {
		exportBase = "anomaly-results"
	}

	maxUpload := int64(10)
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUpload = n
		}
	}

	return Config{
		Addr:            addr,
		LogDir:          logDir,
		BackendURL:      backend,
		RefreshInterval: refresh,
		HTTPTimeout:     timeout,
		ExportBase:      exportBase,
		MaxUploadMB:     maxUpload,
		AdminAPIKeys:    splitCSV(os.Getenv("ADMIN_API_KEYS")),
		PublicRPM:       envInt("PUBLIC_RPM", 120),
		PublicBurst:     envInt("PUBLIC_BURST", 60),
		AdminRPM:        envInt("ADMIN_RPM", 10),
		AdminBurst:      envInt("ADMIN_BURST", 5),
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
