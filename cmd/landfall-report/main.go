// Command landfall-report builds the hurricane landfall report offline, from
// the NOAA feed or a local HURDAT2 file, and prints it as a table, JSON, YAML
// or a PDF document.
//
// Usage:
//
//	landfall-report rows --format table
//	landfall-report rows --source data/hurdat2.txt --min-year 2000 --format yaml
//	landfall-report pdf --out HurricaneReport.pdf
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
