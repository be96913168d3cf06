// cmd/preflight/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hamed0406/anomalydash/internal/backend"
	"github.com/hamed0406/anomalydash/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	backendURL := strings.TrimSpace(os.Getenv("BACKEND_URL"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))

	if backendURL == "" {
		warn("BACKEND_URL empty — defaulting to http://localhost:5000")
	} else {
		ok("BACKEND_URL=" + backendURL)
	}
	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}
	if admin == "" {
		warn("ADMIN_API_KEYS empty — upload/automation routes will be open.")
	} else if strings.Contains(admin, " ") {
		warn("ADMIN_API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
	} else {
		ok("ADMIN_API_KEYS present")
	}

	cfg := config.FromEnv()
	client := backend.NewClient(cfg.BackendURL, cfg.HTTPTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		fail("backend not reachable: " + err.Error())
	}
	ok("backend reachable at " + cfg.BackendURL)

	ok("preflight passed")
}
