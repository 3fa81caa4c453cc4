// Package scene draws the three charts of the salary story into a page.
// Renderers only append; clearing the mount point is up to the caller.
package scene

import (
	"fmt"
	"html"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/aggregate"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/chart"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/page"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/utils"
)

// DefaultTopN is how many job titles the first scene shows
const DefaultTopN = 5

// Figure ids, one per scene
const (
	TopJobsFigure    = "top-jobs"
	ExperienceFigure = "experience"
	RemoteFigure     = "remote-ratio"
)

const (
	canvasWidth     = 900
	frameHeight     = 600
	topJobsColor    = "#4682b4"
	experienceColor = "#ff9933"
	remoteColor     = "#2ca02c"
)

var margin = chart.Margin{Top: 60, Right: 250, Bottom: 130, Left: 100}

// State is the session state shared by the renderers
type State struct {
	// Dataset is the full filtered record set
	Dataset []models.Record
	// SelectedJob is the job shown in the experience chart
	SelectedJob string
	// TopN is the number of bars in the first scene
	TopN int
	// Year is shown in titles
	Year string
}

// NewState creates the state for a freshly loaded dataset
func NewState(records []models.Record, year string, topN int) *State {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &State{Dataset: records, TopN: topN, Year: year}
}

// RenderFunc draws one scene into p
type RenderFunc func(st *State, p *page.Page, records []models.Record) error

func bars(buckets []models.Bucket) []chart.Bar {
	out := make([]chart.Bar, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, chart.Bar{Label: b.Key, Value: b.MeanSalary})
	}
	return out
}

func mount(p *page.Page, id string, c chart.BarChart, notes page.Annotation) error {
	svg, err := c.SVG()
	if err != nil {
		return fmt.Errorf("render %s: %w", id, err)
	}
	p.Mount().AppendFigure(page.Figure{ID: id, SVG: svg, Notes: notes})
	return nil
}

// RenderTopJobs draws the top N job titles by mean salary
func RenderTopJobs(st *State, p *page.Page, records []models.Record) error {
	p.JobSelector().Hide()

	top := aggregate.TopJobsByMeanSalary(records, st.TopN)
	c := chart.BarChart{
		Title:        fmt.Sprintf("Top %d Job Titles by Avg Salary (USD) in %s", st.TopN, st.Year),
		Width:        canvasWidth,
		Height:       720,
		FrameHeight:  frameHeight,
		Margin:       margin,
		Color:        topJobsColor,
		Bars:         bars(top),
		RotateLabels: true,
	}

	notes := page.Annotation{
		X:     canvasWidth - margin.Right + 10,
		Y:     margin.Top + 40,
		Width: 200,
		HTML: fmt.Sprintf(`<strong>Insight:</strong><br>
X-axis shows the job titles with the highest average salaries.<br>
These are the %d highest-paid job titles in %s by average salary.`, st.TopN, html.EscapeString(st.Year)),
	}
	if len(top) > 0 {
		notes.HTML += fmt.Sprintf(`<br>The top role, %s, averages %s per year.`,
			html.EscapeString(top[0].Key), utils.FormatSalary(top[0].MeanSalary))
	}
	return mount(p, TopJobsFigure, c, notes)
}

// RenderExperience shows the job dropdown and draws the experience chart for
// the selected job. The selection falls back to the first title when it is
// unset or no longer present.
func RenderExperience(st *State, p *page.Page, records []models.Record) error {
	jobs := aggregate.DistinctJobs(records)
	if len(jobs) == 0 {
		return fmt.Errorf("render %s: no job titles", ExperienceFigure)
	}

	selected := jobs[0]
	for _, j := range jobs {
		if j == st.SelectedJob {
			selected = j
			break
		}
	}

	js := p.JobSelector()
	js.Show()
	js.SetOptions(jobs, selected)

	return RenderExperienceForJob(st, p, selected)
}

// RenderExperienceForJob redraws only the experience chart for jobTitle,
// using the full dataset rather than the scene's records.
func RenderExperienceForJob(st *State, p *page.Page, jobTitle string) error {
	st.SelectedJob = jobTitle
	p.JobSelector().Select(jobTitle)

	levels := make([]string, 0, len(models.ExperienceLevels))
	for _, l := range models.ExperienceLevels {
		levels = append(levels, string(l))
	}

	c := chart.BarChart{
		Title:       "Average Salary by Experience — " + jobTitle,
		Width:       canvasWidth,
		Height:      700,
		FrameHeight: frameHeight,
		Margin:      margin,
		Color:       experienceColor,
		Categories:  levels,
		Bars:        bars(aggregate.MeanSalaryByExperience(st.Dataset, jobTitle)),
	}

	notes := page.Annotation{
		X:     canvasWidth - margin.Right + 10,
		Y:     margin.Top + 40,
		Width: 220,
		HTML: `<strong>Instruction:</strong><br>
Use the dropdown menu above to view salary trends by experience level for each job title.<br>
EN = Entry · MI = Mid · SE = Senior · EX = Executive.`,
	}

	p.Mount().RemoveFigure(ExperienceFigure)
	return mount(p, ExperienceFigure, c, notes)
}

// RenderRemoteRatio draws mean salary per remote ratio, in first-seen order
func RenderRemoteRatio(st *State, p *page.Page, records []models.Record) error {
	p.JobSelector().Hide()

	c := chart.BarChart{
		Title:       "Average Salary by Remote Ratio",
		Width:       canvasWidth,
		Height:      700,
		FrameHeight: frameHeight,
		Margin:      margin,
		Color:       remoteColor,
		Bars:        bars(aggregate.MeanSalaryByRemoteRatio(records)),
		LabelFormat: utils.FormatPercent,
	}

	notes := page.Annotation{
		X:     canvasWidth - margin.Right + 10,
		Y:     margin.Top + 60,
		Width: 240,
		HTML: `<strong>Insight:</strong><br>
X-axis shows remote work percentage: 0% = onsite, 50% = hybrid, 100% = fully remote.<br><br>
Both 0% and 100% remote roles have higher salaries, while 50% hybrid roles show the lowest average pay.`,
	}
	return mount(p, RemoteFigure, c, notes)
}
