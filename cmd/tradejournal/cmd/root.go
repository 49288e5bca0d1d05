package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/journal"
)

const defaultConfigFile = "tradejournal.yaml"

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "Import, curate and analyze broker trade history",
	Long: `Tradejournal keeps a local journal of the trades you place.

It provides tools for:
  - Importing MT4/MT5 account history exports (.xlsx, .txt, .csv)
  - Curating strategies, accounts, comments and magic numbers
  - Equity curves, statistics and time-of-day breakdowns
  - Exporting trades and equity to CSV and Org-mode

Configuration is read from tradejournal.yaml when present, then from
.env and TRADEJOURNAL_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile     string
	dbPath      string
	logLevel    string
	logFormat   string
	envFile     string
	journalType string

	cfg *config.Config
	log = zerolog.Nop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default ./"+defaultConfigFile+" if present)")
	pf.StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	pf.StringVar(&journalType, "journal", "", "journal type: sqlite or memory (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	pf.StringVar(&logFormat, "log-format", "", "log format: console or json")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with TRADEJOURNAL_* overrides")
}

// setup resolves the configuration in order: file, env, flags.
func setup(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err := c.ApplyEnv(envFile); err != nil {
		return err
	}

	if dbPath != "" {
		c.Journal.DBPath = dbPath
	}
	if journalType != "" {
		c.Journal.Type = journalType
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if logFormat != "" {
		c.Log.Format = logFormat
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfg = c
	log = logging.New(cmd.ErrOrStderr(), c.Log.Level, c.Log.Format)
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return config.LoadFromFile(defaultConfigFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return config.Default(), nil
}

func openJournal() (journal.Journal, error) {
	j, err := journal.Open(cfg.Journal.Type, cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

// now anchors relative periods in the configured timezone.
func now() time.Time {
	loc, err := cfg.Location()
	if err != nil {
		return time.Now()
	}
	return time.Now().In(loc)
}
