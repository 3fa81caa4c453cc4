// Package navigation moves the page between scenes.
package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/aggregate"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/page"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/scene"
)

// Scene identifies one step of the story
type Scene int

const (
	TopJobs Scene = iota
	ExperienceByJob
	RemoteRatio
)

func (s Scene) String() string {
	switch s {
	case TopJobs:
		return "TopJobs"
	case ExperienceByJob:
		return "ExperienceByJob"
	case RemoteRatio:
		return "RemoteRatio"
	}
	return fmt.Sprintf("Scene(%d)", int(s))
}

// ParseScene accepts a scene name ("TopJobs"), its figure id ("top-jobs")
// or its index ("0").
func ParseScene(name string) (Scene, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "topjobs", scene.TopJobsFigure, "0":
		return TopJobs, nil
	case "experiencebyjob", scene.ExperienceFigure, "1":
		return ExperienceByJob, nil
	case "remoteratio", scene.RemoteFigure, "2":
		return RemoteRatio, nil
	}
	return 0, fmt.Errorf("unknown scene %q", name)
}

var (
	// ErrNotReady is returned before the dataset has been delivered
	ErrNotReady = errors.New("dataset not loaded")
	// ErrSelectorHidden is returned for job selections outside the experience scene
	ErrSelectorHidden = errors.New("job selector is not shown in this scene")
	// ErrUnknownJob is returned for job titles not in the dataset
	ErrUnknownJob = errors.New("unknown job title")
)

// Controller owns the current scene and the session state.
// It is not safe for concurrent use; callers confine it to one goroutine.
type Controller struct {
	page    *page.Page
	scenes  []scene.RenderFunc
	year    string
	topN    int
	state   *scene.State
	current Scene
	failed  error
}

// New creates a controller drawing into p
func New(p *page.Page, year string, topN int) *Controller {
	p.SetHeading("Data Salaries in " + year)
	return &Controller{
		page: p,
		scenes: []scene.RenderFunc{
			TopJobs:         scene.RenderTopJobs,
			ExperienceByJob: scene.RenderExperience,
			RemoteRatio:     scene.RenderRemoteRatio,
		},
		year: year,
		topN: topN,
	}
}

// Start takes the loaded dataset and renders the first scene
func (c *Controller) Start(records []models.Record) error {
	c.state = scene.NewState(records, c.year, c.topN)
	c.failed = nil
	c.current = TopJobs
	if err := c.render(); err != nil {
		return err
	}
	c.updateButtonVisibility()
	return nil
}

// Fail replaces the chart with an inline error and hides every control
func (c *Controller) Fail(err error) {
	c.failed = err
	c.state = nil
	c.page.Mount().ShowMessage("error", err.Error())
	c.page.JobSelector().Hide()
	c.page.Prev().SetVisible(false)
	c.page.Next().SetVisible(false)
}

// Ready reports whether Start has succeeded
func (c *Controller) Ready() bool {
	return c.state != nil
}

// Err returns the load failure passed to Fail, if any
func (c *Controller) Err() error {
	return c.failed
}

// Current returns the active scene
func (c *Controller) Current() Scene {
	return c.current
}

// SelectedJob returns the job shown in the experience scene
func (c *Controller) SelectedJob() string {
	if c.state == nil {
		return ""
	}
	return c.state.SelectedJob
}

// Last returns the final scene
func (c *Controller) Last() Scene {
	return Scene(len(c.scenes) - 1)
}

// Next advances one scene. It reports false when already at the end.
func (c *Controller) Next() (bool, error) {
	if !c.Ready() {
		return false, ErrNotReady
	}
	if c.current >= c.Last() {
		return false, nil
	}
	return true, c.transition(c.current + 1)
}

// Previous goes back one scene. It reports false when already at the start.
func (c *Controller) Previous() (bool, error) {
	if !c.Ready() {
		return false, ErrNotReady
	}
	if c.current <= TopJobs {
		return false, nil
	}
	return true, c.transition(c.current - 1)
}

// GoTo steps through Next/Previous until target is reached
func (c *Controller) GoTo(target Scene) error {
	if target < TopJobs || target > c.Last() {
		return fmt.Errorf("no such scene %d", int(target))
	}
	for c.current != target {
		var err error
		if c.current < target {
			_, err = c.Next()
		} else {
			_, err = c.Previous()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SelectJob handles a dropdown change: only the experience chart is redrawn
func (c *Controller) SelectJob(job string) error {
	if !c.Ready() {
		return ErrNotReady
	}
	if c.current != ExperienceByJob {
		return ErrSelectorHidden
	}
	if !c.knownJob(job) {
		return fmt.Errorf("%w: %q", ErrUnknownJob, job)
	}
	return scene.RenderExperienceForJob(c.state, c.page, job)
}

// Buckets returns the aggregates behind the current chart
func (c *Controller) Buckets() []models.Bucket {
	if c.state == nil {
		return nil
	}
	switch c.current {
	case TopJobs:
		return aggregate.TopJobsByMeanSalary(c.state.Dataset, c.state.TopN)
	case ExperienceByJob:
		return aggregate.MeanSalaryByExperience(c.state.Dataset, c.state.SelectedJob)
	case RemoteRatio:
		return aggregate.MeanSalaryByRemoteRatio(c.state.Dataset)
	}
	return nil
}

func (c *Controller) transition(to Scene) error {
	c.current = to
	err := c.render()
	c.updateButtonVisibility()
	return err
}

func (c *Controller) render() error {
	c.page.Mount().Clear()
	if err := c.scenes[c.current](c.state, c.page, c.state.Dataset); err != nil {
		return fmt.Errorf("scene %s: %w", c.current, err)
	}
	return nil
}

func (c *Controller) updateButtonVisibility() {
	c.page.Prev().SetVisible(c.current != TopJobs)
	c.page.Next().SetVisible(c.current != c.Last())
}

func (c *Controller) knownJob(job string) bool {
	for _, r := range c.state.Dataset {
		if r.JobTitle == job {
			return true
		}
	}
	return false
}
