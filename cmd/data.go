package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CohensCoding/Succession/internal/business"
	"github.com/CohensCoding/Succession/internal/cache"
	"github.com/CohensCoding/Succession/internal/config"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in demo business data",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		records := business.SampleRecords()
		if err := store.UpsertBusinesses(records); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		fmt.Printf("Loaded %d demo businesses.\n", len(records))
		return nil
	},
}

var (
	flagName     string
	flagIndustry string
	flagLocation string
	flagWebsite  string
	flagFounded  int
	flagRevenue  float64
	flagStaff    int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a single business",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagName == "" {
			return fmt.Errorf("--name is required")
		}
		if flagRevenue < 0 {
			return fmt.Errorf("--revenue must not be negative")
		}

		store, err := cache.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		rec := business.Record{
			Name:             flagName,
			Industry:         flagIndustry,
			Location:         flagLocation,
			Website:          flagWebsite,
			FoundedYear:      flagFounded,
			EstimatedRevenue: flagRevenue,
			Employees:        flagStaff,
		}
		if err := store.UpsertBusinesses([]business.Record{rec}); err != nil {
			return fmt.Errorf("adding business: %w", err)
		}
		fmt.Printf("Added %s.\n", rec.Name)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import businesses from a CSV file",
	Long: `Import businesses from a CSV file with a header row. Recognized columns:
name, industry, location, website, founded_year, estimated_revenue,
employees. Unknown columns are ignored; only name is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		records, err := business.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("importing: %w", err)
		}

		store, err := cache.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		if err := store.UpsertBusinesses(records); err != nil {
			return fmt.Errorf("storing: %w", err)
		}
		fmt.Printf("Imported %d businesses from %s.\n", len(records), args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export stored businesses to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		records, err := store.GetBusinesses(cache.QueryOpts{})
		if err != nil {
			return fmt.Errorf("loading businesses: %w", err)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		defer f.Close()

		if err := business.WriteCSV(f, records); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
		fmt.Printf("Exported %d businesses to %s.\n", len(records), args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&flagName, "name", "", "business name (required)")
	addCmd.Flags().StringVar(&flagIndustry, "industry", "", "industry description")
	addCmd.Flags().StringVar(&flagLocation, "location", "", `location as "City, Region"`)
	addCmd.Flags().StringVar(&flagWebsite, "website", "", "website URL (scheme optional)")
	addCmd.Flags().IntVar(&flagFounded, "founded", 0, "year founded")
	addCmd.Flags().Float64Var(&flagRevenue, "revenue", 0, "estimated annual revenue in dollars")
	addCmd.Flags().IntVar(&flagStaff, "employees", 0, "employee count")
}
