package cmd

import (
	"fmt"
	"time"

	"github.com/sherine-k/infection/pkg/chart"
	"github.com/sherine-k/infection/pkg/snapshot"
	"github.com/sherine-k/infection/pkg/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <snapshot>",
	Short: "Print statistics of a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}

		g := chart.NewGenerator()
		fmt.Fprint(cmd.OutOrStdout(), g.GenerateStats(stats.CalculateFromSnapshot(records)))
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart <snapshot>",
	Short: "Print the composition of a snapshot file as a bar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}

		s := stats.CalculateFromSnapshot(records)
		out := cmd.OutOrStdout()
		fmt.Fprint(out, chart.NewGenerator().GenerateCompositionBar(s))
		fmt.Fprintf(out, "█ infected %d  ▒ immune %d  ░ healthy %d  (exited %d of %d)\n", s.Infected, s.Immune, s.Healthy, s.Exited, s.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chartCmd)
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
