package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/dataset"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scene page over HTTP",
		Long: `Start an HTTP server that loads the dataset in the background and serves the
three scenes with previous/next navigation and a job selector.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Port = port
				if err := opts.cfg.Validate(); err != nil {
					return err
				}
			}
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg := opts.cfg

	loader := dataset.NewLoader(dataset.SourceFor(cfg.Dataset, cfg.Proxy), dataset.WithYear(cfg.Year))
	srv, err := server.New(server.Config{
		Port: cfg.Port,
		Year: cfg.Year,
		TopN: cfg.TopN,
		Web:  cfg.Web,
	}, loader, opts.log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts.log.Info("loading dataset", opts.log.Args("source", cfg.Dataset, "year", cfg.Year))
	return srv.Run(ctx)
}
