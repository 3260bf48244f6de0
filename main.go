package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/officialforloop/summary-report/internal/app"
)

func main() {
	application := app.New()

	exitCode := 0
	if err := <-application.Start(); err != nil {
		slog.Error("server stopped unexpectedly", "error", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Stop(ctx); err != nil {
		exitCode = 1
	}

	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
