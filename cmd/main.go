package main

import (
	"context"
	"os"

	"github.com/desertthunder/spotify-proxy/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadDotEnv(".env"); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
