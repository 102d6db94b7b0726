package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	selection    config.Selection
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sales Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&selection.ConfigFile, "config", "c", "",
		"Path to the profile file (default is $HOME/.salesatlascfg)")
	rootCmd.Flags().StringVar(&selection.Profile, "profile", "", "Name of the source profile to serve")
	rootCmd.Flags().StringVar(&selection.Type, "source", "", "Source type (csv, xlsx, s3, snowflake, databricks)")
	rootCmd.Flags().StringVar(&selection.Path, "path", "", "Path of a csv or xlsx source")
	rootCmd.Flags().StringVar(&selection.Sheet, "sheet", "", "Worksheet of an xlsx source")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to an analysis settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings := analytics.DefaultSettings()
	if settingsPath != "" {
		loaded, err := analytics.LoadSettings(settingsPath)
		if err != nil {
			return err
		}
		settings = *loaded
	}

	profile, err := config.Resolve(ctx, selection)
	if err != nil {
		return err
	}

	src, err := source.DefaultRegistry().Create(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to create source %s: %w", profile, err)
	}
	// records are held in memory; the source is not needed after loading
	svc, err := report.NewService(ctx, src, settings)
	source.Close(ctx, src)
	if err != nil {
		return err
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Report: svc,
			Logger: logger,
		},
	})
	return api.Start()
}
