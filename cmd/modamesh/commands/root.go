package commands

import (
	"modamesh/internal/brand"
	"modamesh/internal/config"
	"modamesh/internal/logging"
	"modamesh/internal/product"
	"modamesh/internal/report"
	"modamesh/internal/simulation"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	trials   int
	years    int
	baseSeed int64
	workers  int
)

var rootCmd = &cobra.Command{
	Use:   "modamesh",
	Short: "ModaMesh simulates partnership strategies under production capacity limits",
	Long: `ModaMesh runs Monte Carlo comparisons of co-branded versus white-label
partnership strategies for a technical sportswear component producer,
subject to hard annual production capacity constraints.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("ModaMesh starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := config.LoadSimulation(cfg.ScenarioFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("trials") {
			sim.Trials = trials
		}
		if cmd.Flags().Changed("years") {
			sim.Years = years
		}
		if cmd.Flags().Changed("seed") {
			sim.BaseSeed = baseSeed
		}
		if cmd.Flags().Changed("workers") {
			sim.Workers = workers
		}

		catalog, err := product.LoadCatalog(cfg.ProductsFile)
		if err != nil {
			return err
		}
		brands, err := brand.LoadProfiles(cfg.BrandsFile)
		if err != nil {
			return err
		}
		log.Info().
			Int("products", catalog.Len()).
			Int("brands", len(brands)).
			Msg("inputs loaded")

		driver := simulation.NewDriver(sim, simulation.Inputs{
			Catalog: catalog,
			Brands:  brands,
		})
		rep, err := driver.Run(cmd.Context())
		if err != nil {
			return err
		}

		writer := report.NewWriter(cfg.ResultsDir, cfg.EnableMermaidCharts)
		path, err := writer.Write(rep)
		if err != nil {
			return err
		}

		log.Info().
			Str("recommended", string(rep.Recommended)).
			Str("report", path).
			Msg("done")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().IntVar(&trials, "trials", 0, "override the number of trials per model")
	rootCmd.Flags().IntVar(&years, "years", 0, "override the simulated horizon in years")
	rootCmd.Flags().Int64Var(&baseSeed, "seed", 0, "override the base random seed")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "override the worker pool size (0 = NumCPU)")
}
