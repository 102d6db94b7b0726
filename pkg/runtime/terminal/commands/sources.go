package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type SourcesCmd struct {
	configFile string
	stats      bool
	registry   source.Registry
}

func NewSourcesCmd(registry source.Registry) *cobra.Command {
	sc := &SourcesCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List supported source types and configured profiles",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.configFile, "config", "", "Path to the profile file (default: ~/.salesatlascfg)")
	cmd.Flags().BoolVar(&sc.stats, "stats", false, "Connect to warehouse profiles and print their row count and year range")

	return cmd
}

func (sc *SourcesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	types := sc.registry.ListTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	fmt.Fprintf(out, "Supported source types:\n%s\n", strings.Join(names, "\n"))

	path := sc.configFile
	if path == "" {
		path = config.DefaultPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintf(out, "\nNo profile file found at %s\n", path)
			return nil
		}
	}

	profiles, err := config.NewRegistry(path)
	if err != nil {
		return err
	}
	list, err := profiles.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintf(out, "\nNo profiles configured in %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "\nProfiles in %s:\n", path)
	for _, name := range list {
		profile, err := profiles.GetProfile(ctx, name)
		if err != nil {
			fmt.Fprintf(out, "%s (invalid: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(out, "%s (%s)\n", name, profile.Type)
		if sc.stats {
			sc.printStats(cmd, profile)
		}
	}
	return nil
}

// printStats reports what a warehouse profile holds; file-backed profiles
// have nothing to summarise without a full load.
func (sc *SourcesCmd) printStats(cmd *cobra.Command, profile domain.SourceProfile) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	src, err := sc.registry.Create(ctx, profile)
	if err != nil {
		fmt.Fprintf(out, "  stats unavailable: %v\n", err)
		return
	}
	defer source.Close(ctx, src)

	provider, ok := src.(source.StatsProvider)
	if !ok {
		return
	}
	stats, err := provider.Stats(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("profile", profile.Name).Msg("failed to read source stats")
		fmt.Fprintf(out, "  stats unavailable: %v\n", err)
		return
	}
	fmt.Fprintf(out, "  %s\n", stats)
}
