package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CohensCoding/Succession/internal/cache"
	"github.com/CohensCoding/Succession/internal/config"
	"github.com/CohensCoding/Succession/internal/pipeline"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics and pipeline aggregates",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.StorePath()
		store, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		businesses, assessed, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Store: %s\n", dbPath)
		fmt.Printf("Businesses: %d\n", businesses)
		fmt.Printf("Assessed: %d\n", assessed)
		fmt.Printf("Size: %s\n", formatBytes(size))

		if assessed == 0 {
			return nil
		}

		assessments, err := store.GetAssessments()
		if err != nil {
			return fmt.Errorf("loading assessments: %w", err)
		}
		outcomes := make([]pipeline.Outcome, len(assessments))
		for i, a := range assessments {
			outcomes[i] = pipeline.Outcome{Record: a.Record, Result: a.Result}
		}
		m := pipeline.Aggregate(outcomes)
		fmt.Printf("High priority: %d\n", m.HighPriority)
		fmt.Printf("Avg score: %.1f\n", m.AvgScore)
		fmt.Printf("Pipeline value: %s\n", formatMoney(m.PipelineValue))
		return nil
	},
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
