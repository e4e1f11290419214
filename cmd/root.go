package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sherine-k/infection/pkg/chart"
	"github.com/sherine-k/infection/pkg/config"
	"github.com/sherine-k/infection/pkg/observability"
	"github.com/sherine-k/infection/pkg/simulation"
	"github.com/sherine-k/infection/pkg/snapshot"
	"github.com/spf13/cobra"
)

var (
	configFile       string
	scenarioName     string
	seed             int64
	duration         string
	snapshotPath     string
	resumePath       string
	pngPath          string
	showTimeline     bool
	timelineLimit    int
	showEventSummary bool
	logLevel         string
	logFormat        string
)

var rootCmd = &cobra.Command{
	Use:   "infection",
	Short: "Infection Spread Simulator",
	Long: `A CLI tool that simulates the spread of an infection through a
population of people moving on a bounded field.

People enter from the edges, wander, and leave. An infected person passes
the infection on to anyone who stays close enough for long enough. The run
prints population statistics, writes a snapshot of every person at the end,
and can render the population curves as a chart.`,
	SilenceUsage: true,
	RunE:         runSimulation,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (defaults are used when empty)")
	rootCmd.Flags().StringVar(&scenarioName, "scenario", config.ScenarioNormal, "Scenario to seed the population with")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (overrides the configuration when set)")
	rootCmd.Flags().StringVar(&duration, "duration", "", "Simulated duration, e.g. 60s (overrides the configuration)")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Snapshot file to write (overrides the configuration)")
	rootCmd.Flags().StringVar(&resumePath, "resume", "", "Resume from a snapshot file instead of seeding a new population")
	rootCmd.Flags().StringVar(&pngPath, "png", "", "Write the population chart as a PNG image")
	rootCmd.Flags().BoolVarP(&showTimeline, "timeline", "t", false, "Show detailed timeline of events")
	rootCmd.Flags().IntVarP(&timelineLimit, "timeline-limit", "l", 50, "Limit number of timeline events to display")
	rootCmd.Flags().BoolVarP(&showEventSummary, "summary", "s", true, "Show event summary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if duration != "" {
		d, err := parseDuration(duration)
		if err != nil {
			return nil, err
		}
		cfg.Duration = d
	}
	if snapshotPath != "" {
		cfg.SnapshotPath = snapshotPath
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := observability.NewLogger(logLevel, logFormat, os.Stderr)
	if err != nil {
		return err
	}

	scenario, err := cfg.Scenario(scenarioName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration\n")
	fmt.Fprintf(out, "  - Field: %gx%g\n", cfg.Width, cfg.Height)
	fmt.Fprintf(out, "  - Max Speed: %g\n", cfg.MaxSpeed)
	fmt.Fprintf(out, "  - Population: %d (target %d)\n", cfg.Population, cfg.TargetPopulation)
	fmt.Fprintf(out, "  - Scenario: %s (immunity %.0f%%, infected %.0f%%)\n", scenarioName, scenario.ImmunityRatio*100, scenario.InfectionChance*100)
	fmt.Fprintf(out, "  - Infection Radius: %g, Contact Time: %s\n", cfg.InfectionRadius, cfg.ContactThreshold)
	fmt.Fprintf(out, "  - Simulation Duration: %s at %g steps/s\n\n", cfg.Duration, cfg.StepRate)

	// Create and run simulator
	runner, err := simulation.NewRunner(cfg, scenarioName, logger)
	if err != nil {
		return err
	}

	if resumePath != "" {
		records, err := snapshot.Load(resumePath)
		if err != nil {
			return err
		}
		if err := runner.Resume(records); err != nil {
			return fmt.Errorf("failed to resume from %s: %w", resumePath, err)
		}
		fmt.Fprintf(out, "Resumed %d persons from %s\n\n", len(records), resumePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	// Generate and display charts
	chartGen := chart.NewGenerator()

	fmt.Fprintln(out, chartGen.GeneratePopulationChart(report.TimePoints, cfg.TargetPopulation))

	if showEventSummary {
		fmt.Fprintln(out, chartGen.GenerateEventSummary(report.Events))
	}

	fmt.Fprintln(out, chartGen.GenerateStats(report.Final))

	if showTimeline {
		fmt.Fprintln(out, chartGen.GenerateDetailedTimeline(report.Events, timelineLimit))
	}

	if pngPath != "" {
		if err := writePNG(chartGen, pngPath, report.TimePoints); err != nil {
			return err
		}
		fmt.Fprintf(out, "Chart saved to %s\n", pngPath)
	}

	if report.SnapshotPath != "" {
		fmt.Fprintf(out, "Snapshot saved to %s\n", report.SnapshotPath)
	}

	return nil
}

func writePNG(g *chart.Generator, path string, timePoints []simulation.TimePoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := g.RenderPNG(f, timePoints); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
