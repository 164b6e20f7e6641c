package main

import (
	"context"
	"errors"
	"os"

	"github.com/ocrtools/ocrbatch/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{Config: config, Logger: logger})
	app := newApp(runner)

	if err := app.Run(context.Background(), os.Args); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				logger.Error(ee.msg)
			}
			os.Exit(ee.code)
		}
		logger.Errorf("Error: %v", err)
		os.Exit(1)
	}
}
