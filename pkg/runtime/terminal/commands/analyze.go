package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type AnalyzeCmd struct {
	selection     config.Selection
	settingsPath  string
	format        string
	csvPath       string
	workbookPath  string
	dashboardPath string
	timeout       time.Duration
	registry      source.Registry
	reporter      *export.Reporter
}

func NewAnalyzeCmd(registry source.Registry, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze sales records from a data source",
		Example: `  sales-atlas analyze --source csv --path sales.csv
  sales-atlas analyze --profile warehouse --format json
  sales-atlas analyze --source xlsx --path sales.xlsx --dashboard dashboard.html --csv summary.csv`,
		RunE: ac.run,
	}

	AddSourceFlags(cmd, &ac.selection)
	cmd.Flags().StringVar(&ac.settingsPath, "settings", "", "Path to an analysis settings file (yaml, json or toml)")
	cmd.Flags().StringVar(&ac.format, "format", FormatText, "Output format: text or json")
	cmd.Flags().StringVar(&ac.csvPath, "csv", "", "Write the monthly summary as CSV to this path")
	cmd.Flags().StringVar(&ac.workbookPath, "xlsx", "", "Write the summaries and rankings as an xlsx workbook to this path")
	cmd.Flags().StringVar(&ac.dashboardPath, "dashboard", "", "Write an HTML dashboard to this path")
	cmd.Flags().DurationVar(&ac.timeout, "timeout", 5*time.Minute, "Time limit for loading and analyzing the data")

	return cmd
}

// AddSourceFlags binds the flags that select a data source.
func AddSourceFlags(cmd *cobra.Command, sel *config.Selection) {
	cmd.Flags().StringVar(&sel.Type, "source", "", "Source type (csv, xlsx, s3, snowflake, databricks)")
	cmd.Flags().StringVar(&sel.Path, "path", "", "Path of a csv or xlsx source")
	cmd.Flags().StringVar(&sel.Sheet, "sheet", "", "Worksheet of an xlsx source (default: first sheet)")
	cmd.Flags().StringVar(&sel.Profile, "profile", "", "Name of a source profile")
	cmd.Flags().StringVar(&sel.ConfigFile, "config", "", "Path to the profile file (default: ~/.salesatlascfg)")
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	if ac.format != FormatText && ac.format != FormatJSON {
		return fmt.Errorf("unsupported format %q, use %s or %s", ac.format, FormatText, FormatJSON)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ac.timeout)
	defer cancel()

	settings := analytics.DefaultSettings()
	if ac.settingsPath != "" {
		loaded, err := analytics.LoadSettings(ac.settingsPath)
		if err != nil {
			return err
		}
		settings = *loaded
	}

	profile, err := config.Resolve(ctx, ac.selection)
	if err != nil {
		return err
	}

	src, err := ac.registry.Create(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to create source %s: %w", profile, err)
	}
	defer source.Close(ctx, src)

	svc, err := report.NewService(ctx, src, settings)
	if err != nil {
		return err
	}

	rep, err := svc.Report(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if err := ac.export(ctx, rep); err != nil {
		return err
	}

	if ac.format == FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(adapters.MapReportDomainToApi(*rep))
	}
	return ac.reporter.Handle(rep)
}

func (ac *AnalyzeCmd) export(ctx context.Context, rep *domain.Report) error {
	exports := []struct {
		path  string
		write func(io.Writer, *domain.Report) error
	}{
		{ac.csvPath, export.WriteMonthlyCSV},
		{ac.workbookPath, export.WriteWorkbook},
		{ac.dashboardPath, export.WriteDashboard},
	}

	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := writeFile(e.path, rep, e.write); err != nil {
			return err
		}
		zerolog.Ctx(ctx).Info().Str("path", e.path).Msg("report exported")
	}
	return nil
}

func writeFile(path string, rep *domain.Report, write func(io.Writer, *domain.Report) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := write(f, rep); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
