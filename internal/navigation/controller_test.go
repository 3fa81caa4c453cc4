package navigation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/page"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/scene"
)

var records = []models.Record{
	{WorkYear: "2025", JobTitle: "A", ExperienceLevel: models.Entry, RemoteRatio: 0, SalaryInUSD: 100},
	{WorkYear: "2025", JobTitle: "A", ExperienceLevel: models.Entry, RemoteRatio: 0, SalaryInUSD: 300},
	{WorkYear: "2025", JobTitle: "B", ExperienceLevel: models.Senior, RemoteRatio: 100, SalaryInUSD: 500},
}

func started(t *testing.T) (*Controller, *page.Page) {
	t.Helper()
	p, err := page.New()
	require.NoError(t, err)
	c := New(p, "2025", scene.DefaultTopN)
	require.NoError(t, c.Start(records))
	return c, p
}

func snapshot(t *testing.T, p *page.Page) string {
	t.Helper()
	out, err := p.HTML()
	require.NoError(t, err)
	return out
}

func buttons(p *page.Page) (prev, next bool) {
	return p.Prev().Visible(), p.Next().Visible()
}

func TestStartRendersFirstScene(t *testing.T) {
	c, p := started(t)

	assert.Equal(t, TopJobs, c.Current())
	assert.Equal(t, []string{scene.TopJobsFigure}, p.Mount().Figures())
	prev, next := buttons(p)
	assert.False(t, prev)
	assert.True(t, next)
}

func TestForwardThroughAllScenes(t *testing.T) {
	c, p := started(t)

	changed, err := c.Next()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ExperienceByJob, c.Current())
	assert.Equal(t, []string{scene.ExperienceFigure}, p.Mount().Figures())
	assert.True(t, p.JobSelector().Visible())
	prev, next := buttons(p)
	assert.True(t, prev)
	assert.True(t, next)

	changed, err = c.Next()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, RemoteRatio, c.Current())
	assert.Equal(t, []string{scene.RemoteFigure}, p.Mount().Figures())
	assert.False(t, p.JobSelector().Visible())
	prev, next = buttons(p)
	assert.True(t, prev)
	assert.False(t, next)
}

func TestBoundariesAreNoOps(t *testing.T) {
	c, p := started(t)

	before := snapshot(t, p)
	changed, err := c.Previous()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, TopJobs, c.Current())
	assert.Equal(t, before, snapshot(t, p))

	require.NoError(t, c.GoTo(RemoteRatio))
	before = snapshot(t, p)
	changed, err = c.Next()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, RemoteRatio, c.Current())
	assert.Equal(t, before, snapshot(t, p))
}

func TestRoundTripRendersSameChart(t *testing.T) {
	c, p := started(t)
	require.NoError(t, c.GoTo(ExperienceByJob))
	require.NoError(t, c.SelectJob("B"))
	before := snapshot(t, p)

	_, err := c.Next()
	require.NoError(t, err)
	_, err = c.Previous()
	require.NoError(t, err)

	assert.Equal(t, ExperienceByJob, c.Current())
	assert.Equal(t, "B", c.SelectedJob())
	assert.Equal(t, before, snapshot(t, p))

	// and the reverse direction from the same interior scene
	_, err = c.Previous()
	require.NoError(t, err)
	_, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, before, snapshot(t, p))
}

func TestMountNeverHoldsTwoScenes(t *testing.T) {
	c, p := started(t)
	steps := []func() (bool, error){c.Next, c.Next, c.Previous, c.Next, c.Previous, c.Previous, c.Previous}
	for _, step := range steps {
		_, err := step()
		require.NoError(t, err)
		assert.Len(t, p.Mount().Figures(), 1)
		assert.Equal(t, 1, p.Mount().ChildCount())
	}
}

func TestSelectJob(t *testing.T) {
	c, p := started(t)

	assert.ErrorIs(t, c.SelectJob("A"), ErrSelectorHidden)

	require.NoError(t, c.GoTo(ExperienceByJob))
	assert.Equal(t, "A", c.SelectedJob())

	require.NoError(t, c.SelectJob("B"))
	assert.Equal(t, ExperienceByJob, c.Current())
	assert.Equal(t, "B", p.JobSelector().Selected())
	assert.Equal(t, []models.Bucket{{Key: "SE", MeanSalary: 500, Count: 1}}, c.Buckets())

	assert.ErrorIs(t, c.SelectJob("Nobody"), ErrUnknownJob)
	assert.Equal(t, "B", c.SelectedJob())
}

func TestBucketsFollowScene(t *testing.T) {
	c, _ := started(t)
	assert.Equal(t, []models.Bucket{
		{Key: "B", MeanSalary: 500, Count: 1},
		{Key: "A", MeanSalary: 200, Count: 2},
	}, c.Buckets())

	require.NoError(t, c.GoTo(ExperienceByJob))
	assert.Equal(t, []models.Bucket{{Key: "EN", MeanSalary: 200, Count: 2}}, c.Buckets())

	require.NoError(t, c.GoTo(RemoteRatio))
	assert.Equal(t, []models.Bucket{
		{Key: "0", MeanSalary: 200, Count: 2},
		{Key: "100", MeanSalary: 500, Count: 1},
	}, c.Buckets())
}

func TestNotReady(t *testing.T) {
	p, err := page.New()
	require.NoError(t, err)
	c := New(p, "2025", 5)

	_, err = c.Next()
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = c.Previous()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, c.SelectJob("A"), ErrNotReady)
	assert.Nil(t, c.Buckets())
}

func TestFailShowsErrorAndHidesControls(t *testing.T) {
	c, p := started(t)
	require.NoError(t, c.GoTo(ExperienceByJob))

	c.Fail(errors.New("failed to load dataset data/salaries.csv: boom"))

	assert.False(t, c.Ready())
	assert.Error(t, c.Err())
	assert.Empty(t, p.Mount().Figures())
	out, err := p.Mount().HTML()
	require.NoError(t, err)
	assert.Contains(t, out, "boom")
	prev, next := buttons(p)
	assert.False(t, prev)
	assert.False(t, next)
	assert.False(t, p.JobSelector().Visible())
}

func TestGoToRejectsUnknownScene(t *testing.T) {
	c, _ := started(t)
	assert.Error(t, c.GoTo(Scene(7)))
	assert.Equal(t, "RemoteRatio", RemoteRatio.String())
}

func TestParseScene(t *testing.T) {
	for in, want := range map[string]Scene{
		"TopJobs":      TopJobs,
		"experience":   ExperienceByJob,
		"1":            ExperienceByJob,
		"remote-ratio": RemoteRatio,
		" remoteratio": RemoteRatio,
	} {
		got, err := ParseScene(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseScene("finale")
	assert.Error(t, err)
}
