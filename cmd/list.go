package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CohensCoding/Succession/internal/cache"
	"github.com/CohensCoding/Succession/internal/config"
	"github.com/CohensCoding/Succession/internal/pipeline"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Render the last scan's results without re-fetching",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := cache.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		assessments, err := store.GetAssessments()
		if err != nil {
			return fmt.Errorf("loading assessments: %w", err)
		}
		if len(assessments) == 0 {
			fmt.Println("No scan results stored yet. Run \"succession scan\" first.")
			return nil
		}

		outcomes := make([]pipeline.Outcome, len(assessments))
		for i, a := range assessments {
			outcomes[i] = pipeline.Outcome{
				Record:  a.Record,
				Signals: a.Signals,
				Result:  a.Result,
				Summary: a.Summary,
			}
		}

		renderPipeline(outcomes, cfg)
		return nil
	},
}

func init() {
	addFilterFlags(listCmd)
}
