// Command export pulls the current result set straight from the backend and
// writes the CSV or spreadsheet artifact to disk. Handy for cron jobs and for
// grabbing a snapshot without a running dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hamed0406/anomalydash/internal/backend"
	"github.com/hamed0406/anomalydash/internal/config"
	"github.com/hamed0406/anomalydash/internal/export"
)

func main() {
	format := flag.String("format", export.FormatCSV, `export format: "csv" or "excel"`)
	outDir := flag.String("out", ".", "directory to write the artifact into")
	flag.Parse()

	cfg := config.FromEnv()
	client := backend.NewClient(cfg.BackendURL, cfg.HTTPTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, _, err := client.FetchResults(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch failed:", err)
		os.Exit(1)
	}

	f, err := export.Export(records, *format, cfg.ExportBase, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, "export failed:", err)
		os.Exit(1)
	}

	path := filepath.Join(*outDir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "write failed:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d records)\n", path, len(records))
}
