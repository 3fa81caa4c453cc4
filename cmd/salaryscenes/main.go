// Package main provides the salaryscenes command line.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/config"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/ui"
)

const examples = `  # Serve the story on :8080 using the bundled sample survey
  salaryscenes serve

  # Serve a local CSV on another port, protecting the JSON API
  WEB_USERNAME=admin WEB_PASSWORD=secret salaryscenes serve --dataset data/salaries.csv --port 9090

  # Print the three aggregates as tables, experience broken down for one job
  salaryscenes summary --job "Data Engineer" --silence

  # Write the experience scene for one job to a static HTML file
  salaryscenes export --scene experience --job "Data Scientist" --out experience.html

  # Fetch the dataset through a proxy
  salaryscenes summary --dataset https://example.com/salaries.csv --proxy http://localhost:8080`

// rootOptions carries the persistent flags and the resolved configuration
type rootOptions struct {
	configPath string
	dataset    string
	year       string
	topN       int
	proxy      string
	logLevel   string
	logFormat  string
	silence    bool

	cfg *config.AppConfig
	log *pterm.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "salaryscenes",
		Short: "Data salaries, told as a three-scene story",
		Long: `salaryscenes turns a salary survey CSV into a three-scene narrative: the top paying
job titles, salary by experience level for a chosen job, and salary by remote ratio.`,
		Example:       examples,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&opts.dataset, "dataset", "", `CSV file path, http(s) URL or "embedded"`)
	pf.StringVar(&opts.year, "year", "", "Survey year to keep")
	pf.IntVar(&opts.topN, "top", 0, "Number of job titles in the top jobs scene")
	pf.StringVar(&opts.proxy, "proxy", "", "Proxy URL to use when fetching the dataset")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")
	pf.BoolVar(&opts.silence, "silence", false, "Silence the banner")
	pf.BoolVar(&opts.silence, "nobanner", false, "Silence the banner (alias for --silence)")

	cmd.AddCommand(newServeCmd(opts), newSummaryCmd(opts), newExportCmd(opts))
	return cmd
}

// setup loads the configuration, applies flag overrides and builds the logger
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset = o.dataset
	}
	if flags.Changed("year") {
		cfg.Year = o.year
	}
	if flags.Changed("top") {
		cfg.TopN = o.topN
	}
	if flags.Changed("proxy") {
		cfg.Proxy = o.proxy
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.log = ui.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	ui.PrintBanner(cmd.ErrOrStderr(), o.silence)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
