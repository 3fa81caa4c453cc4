package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/utils"
)

// Section is one titled table of buckets
type Section struct {
	Title    string
	KeyLabel string
	Buckets  []models.Bucket
	// FormatKey renders bucket keys, e.g. adding a percent sign
	FormatKey func(string) string
}

// RenderSummary renders each section as a table of key, mean salary and record count
func RenderSummary(sections []Section) (string, error) {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(pterm.Bold.Sprint(s.Title))
		b.WriteString("\n")

		if len(s.Buckets) == 0 {
			b.WriteString("  (no data)\n\n")
			continue
		}

		data := pterm.TableData{{s.KeyLabel, "Avg Salary (USD)", "Records"}}
		for _, bucket := range s.Buckets {
			key := bucket.Key
			if s.FormatKey != nil {
				key = s.FormatKey(key)
			}
			data = append(data, []string{
				utils.TruncateString(key, 40),
				ColorizeSalary(bucket.MeanSalary),
				humanize.Comma(int64(bucket.Count)),
			})
		}

		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", fmt.Errorf("failed to render %s: %w", s.Title, err)
		}
		b.WriteString(table)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// ExperienceKey expands an experience code to "SE (Senior)"
func ExperienceKey(code string) string {
	return fmt.Sprintf("%s (%s)", code, models.ExperienceLevel(code).Name())
}
