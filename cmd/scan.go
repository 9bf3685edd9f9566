package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/CohensCoding/Succession/internal/cache"
	"github.com/CohensCoding/Succession/internal/config"
	"github.com/CohensCoding/Succession/internal/pipeline"
	"github.com/CohensCoding/Succession/internal/summary"
	"github.com/CohensCoding/Succession/internal/website"
)

var (
	flagRegions     []string
	flagMinScore    float64
	flagSummaries   bool
	flagConcurrency int
	flagDetails     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch website signals and score every stored business",
	Long: `Fetch each stored business's website once, derive digital footprint
signals, score succession readiness, and render the pipeline sorted by
score. Results are persisted so "succession list" can re-render them
without re-fetching.`,
	RunE: runScan,
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&flagRegions, "regions", nil, "filter to region tokens containing any of these names (default: config target_regions)")
	cmd.Flags().Float64Var(&flagMinScore, "min-score", -1, "hide businesses scoring below this (default: config min_score)")
	cmd.Flags().BoolVar(&flagDetails, "details", false, "print contributing factors and summaries per business")
}

func addScanFlags(cmd *cobra.Command) {
	addFilterFlags(cmd)
	cmd.Flags().BoolVar(&flagSummaries, "summaries", false, "generate AI outreach summaries")
	cmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "max concurrent website fetches (default: config concurrency)")
}

func init() {
	addScanFlags(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := cache.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	records, err := store.GetBusinesses(cache.QueryOpts{})
	if err != nil {
		return fmt.Errorf("loading businesses: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No businesses stored yet. Run \"succession seed\" for demo data or \"succession import\" for your own.")
		return nil
	}

	var sumClient summary.Client
	if flagSummaries && cfg.AIEnabled() {
		sumClient, err = summary.New(cfg.AI, cfg.AIKey())
		if err != nil {
			fmt.Printf("  [warn] %v\n", err)
		}
	}

	concurrency := flagConcurrency
	if concurrency <= 0 {
		concurrency = cfg.GetConcurrency()
	}

	fmt.Printf("Scanning %d businesses...\n", len(records))
	outcomes := pipeline.Run(context.Background(), records, website.NewExtractor(), sumClient, pipeline.Options{
		Concurrency: concurrency,
		Summarize:   flagSummaries,
	})

	now := time.Now()
	for _, o := range outcomes {
		err := store.SaveAssessment(cache.Assessment{
			Record:    o.Record,
			Signals:   o.Signals,
			Result:    o.Result,
			Summary:   o.Summary,
			ScannedAt: now,
		})
		if err != nil {
			fmt.Printf("  [warn] %v\n", err)
		}
	}

	renderPipeline(outcomes, cfg)
	return nil
}

// renderPipeline filters, sorts, and prints outcomes with aggregate metrics.
func renderPipeline(outcomes []pipeline.Outcome, cfg *config.Config) {
	regions := flagRegions
	if regions == nil {
		regions = cfg.TargetRegions
	}
	minScore := flagMinScore
	if minScore < 0 {
		minScore = cfg.MinScore
	}

	filtered := pipeline.FilterMinScore(pipeline.FilterRegion(outcomes, regions), minScore)
	pipeline.SortByScore(filtered)

	if len(filtered) == 0 {
		fmt.Println("No businesses matched the region and score filters.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Name", "Industry", "Location", "Score", "Category", "Top Signal"})
	for _, o := range filtered {
		top := ""
		if len(o.Result.Factors) > 0 {
			top = o.Result.Factors[0]
		}
		t.AppendRow(table.Row{
			o.Result.Priority,
			o.Record.Name,
			o.Record.Industry,
			o.Record.Location,
			fmt.Sprintf("%.1f", o.Result.Score),
			o.Result.Category,
			top,
		})
	}
	t.Render()

	m := pipeline.Aggregate(filtered)
	fmt.Printf("\nTargets: %d   High priority: %d   Avg score: %.1f   Pipeline value: %s\n",
		m.Total, m.HighPriority, m.AvgScore, formatMoney(m.PipelineValue))

	if flagDetails {
		for _, o := range filtered {
			fmt.Printf("\n%s %s — %.1f (%s)\n", o.Result.Priority, o.Record.Name, o.Result.Score, o.Result.Category)
			for _, f := range o.Result.Factors {
				fmt.Printf("  • %s\n", f)
			}
			if o.Summary != "" {
				fmt.Printf("  %s\n", o.Summary)
			}
		}
	}
}

func formatMoney(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
