package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/navigation"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/page"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		sceneName string
		job       string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one scene as a static HTML page",
		Long: `Drive the scene controller to the requested scene (and job, for the experience
scene) and write the complete page to a file or to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := navigation.ParseScene(sceneName)
			if err != nil {
				return err
			}
			return runExport(cmd, opts, target, job, out)
		},
	}

	cmd.Flags().StringVar(&sceneName, "scene", "top-jobs", "Scene to export (top-jobs, experience, remote-ratio)")
	cmd.Flags().StringVar(&job, "job", "", "Job title shown in the experience scene")
	cmd.Flags().StringVarP(&out, "out", "o", "-", `Output file ("-" for stdout)`)
	return cmd
}

func runExport(cmd *cobra.Command, opts *rootOptions, target navigation.Scene, job, out string) error {
	cfg := opts.cfg

	records, err := loadRecords(cmd, opts, false)
	if err != nil {
		return err
	}

	p, err := page.New()
	if err != nil {
		return fmt.Errorf("failed to build page: %w", err)
	}

	ctrl := navigation.New(p, cfg.Year, cfg.TopN)
	if err := ctrl.Start(records); err != nil {
		return err
	}
	if err := ctrl.GoTo(target); err != nil {
		return err
	}
	if job != "" {
		if err := ctrl.SelectJob(job); err != nil {
			return fmt.Errorf("cannot select %q in scene %s: %w", job, ctrl.Current(), err)
		}
	}

	html, err := p.HTML()
	if err != nil {
		return fmt.Errorf("failed to serialize page: %w", err)
	}

	if out == "-" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	opts.log.Info("scene exported", opts.log.Args("scene", ctrl.Current().String(), "job", ctrl.SelectedJob(), "file", out))
	return nil
}
