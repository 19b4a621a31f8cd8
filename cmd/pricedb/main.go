// Package main provides the CLI entry point for the price comparison database.
// Three subcommands cover the whole workflow:
//  1. import - load a supplier price list spreadsheet into the store
//  2. query  - report the cheapest stored quotation per part number
//  3. remote - poll the RA price-online web service per part number
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/partsdesk/pricedb/internal/config"
	"github.com/partsdesk/pricedb/internal/database"
	"github.com/partsdesk/pricedb/internal/importer"
	"github.com/partsdesk/pricedb/internal/report"
	"github.com/partsdesk/pricedb/internal/repository"
	"github.com/partsdesk/pricedb/pkg/raonline"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pricedb",
		Short: "Price comparison database",
		Long: `pricedb imports supplier price lists into a local store, answers
part-number lookups against it, and cross-references the RA price-online
web service.`,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newRemoteCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and wires the global logger. Every subcommand
// calls it first.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg)
	return cfg, nil
}

// openStore connects the record store and brings the schema up to date.
// The caller owns the returned handle and must Close it.
func openStore(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("store connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func newImportCommand() *cobra.Command {
	var supplier, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a supplier price list spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			im := importer.New(
				repository.NewSupplierRepository(db),
				repository.NewPriceRepository(db).SetBatchSize(cfg.Report.ImportBatchSize),
			)
			return im.Import(cmd.Context(), supplier, file)
		},
	}

	cmd.Flags().StringVarP(&supplier, "supplier", "s", "", "title of supplier, e.g. RA-TY-1")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to price list file (.xlsx or .csv)")
	_ = cmd.MarkFlagRequired("supplier")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newQueryCommand() *cobra.Command {
	var queryFile, outFile string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Report the cheapest stored quotation per part number",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			engine := report.NewEngine(
				repository.NewPriceRepository(db),
				report.CostTable{
					CostMultiplier:   cfg.Report.CostMultiplier,
					WeightMultiplier: cfg.Report.WeightMultiplier,
				},
			)
			return engine.QueryFromStore(cmd.Context(), queryFile, outFile)
		},
	}

	cmd.Flags().StringVarP(&queryFile, "query", "q", "", "path to file with one part number per line")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "path to file for the result, e.g. output.csv")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newRemoteCommand() *cobra.Command {
	var (
		queryFile, outFile string
		login, password    string
		titlesFile         string
		maxAge             int
		group              bool
	)

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Poll the RA price-online web service per part number",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			// Flags win over RA_LOGIN / RA_PASSWORD from the environment.
			if login == "" {
				login = cfg.Remote.Login
			}
			if password == "" {
				password = cfg.Remote.Password
			}
			if login == "" || password == "" {
				return errors.New("web service credentials required: pass --login/--password or set RA_LOGIN/RA_PASSWORD")
			}

			poller := report.NewPoller(raonline.NewClient(cfg.Remote.BaseURL, login, password))
			return poller.PollAndReport(cmd.Context(), report.PollOptions{
				QueryPath:  queryFile,
				OutputPath: outFile,
				TitlesPath: titlesFile,
				MaxAgeDays: maxAge,
				Group:      group,
			})
		},
	}

	cmd.Flags().StringVarP(&queryFile, "query", "q", "", "path to file with one part number per line")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "path to file for the result, e.g. output.csv")
	cmd.Flags().StringVarP(&login, "login", "l", "", "login to access the web service")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password to access the web service")
	cmd.Flags().StringVarP(&titlesFile, "titles", "t", "", "path to file with warehouse titles allow-list, optional")
	cmd.Flags().IntVarP(&maxAge, "age", "a", 0, "maximum offer age in days to be reported, optional")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group offers with average price")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
