package main

import (
	"context"
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/aggregate"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/dataset"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/ui"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/utils"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var (
		job        string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the scene aggregates as tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadRecords(cmd, opts, !noProgress)
			if err != nil {
				return err
			}
			return runSummary(cmd, opts, records, job)
		},
	}

	cmd.Flags().StringVar(&job, "job", "", "Job title for the experience breakdown (default: first title alphabetically)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Hide the download progress bar")
	return cmd
}

// loadRecords reads the configured dataset synchronously
func loadRecords(cmd *cobra.Command, opts *rootOptions, progress bool) ([]models.Record, error) {
	cfg := opts.cfg
	loaderOpts := []dataset.Option{dataset.WithYear(cfg.Year)}
	if progress {
		bar := pb.New64(0)
		bar.Set(pb.Bytes, true)
		bar.SetWriter(cmd.ErrOrStderr())
		loaderOpts = append(loaderOpts, dataset.WithProgress(bar))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src := dataset.SourceFor(cfg.Dataset, cfg.Proxy)
	records, err := dataset.NewLoader(src, loaderOpts...).Load(ctx)
	if err != nil {
		opts.log.Error("dataset load failed", opts.log.Args("source", src.Name(), "error", err))
		return nil, err
	}
	opts.log.Debug("dataset loaded", opts.log.Args("source", src.Name(), "records", len(records)))
	return records, nil
}

// resolveJob defaults to the first job title and rejects unknown ones
func resolveJob(records []models.Record, job string) (string, error) {
	jobs := aggregate.DistinctJobs(records)
	if job == "" {
		return jobs[0], nil
	}
	for _, j := range jobs {
		if j == job {
			return job, nil
		}
	}
	return "", fmt.Errorf("unknown job title %q", job)
}

func runSummary(cmd *cobra.Command, opts *rootOptions, records []models.Record, job string) error {
	cfg := opts.cfg

	job, err := resolveJob(records, job)
	if err != nil {
		return err
	}

	out, err := ui.RenderSummary([]ui.Section{
		{
			Title:    fmt.Sprintf("Top %d jobs by average salary in %s", cfg.TopN, cfg.Year),
			KeyLabel: "Job Title",
			Buckets:  aggregate.TopJobsByMeanSalary(records, cfg.TopN),
		},
		{
			Title:     fmt.Sprintf("Average salary by experience level: %s", job),
			KeyLabel:  "Experience",
			Buckets:   aggregate.MeanSalaryByExperience(records, job),
			FormatKey: ui.ExperienceKey,
		},
		{
			Title:     "Average salary by remote ratio",
			KeyLabel:  "Remote Ratio",
			Buckets:   aggregate.MeanSalaryByRemoteRatio(records),
			FormatKey: utils.FormatPercent,
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
