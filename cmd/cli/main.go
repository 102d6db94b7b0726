package main

import (
	"fmt"
	"os"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	if os.Getenv("SALES_ATLAS_DEBUG") != "" {
		logger = logger.Level(zerolog.DebugLevel)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: source.DefaultRegistry(),
		Output:   os.Stdout,
		Logger:   &logger,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
