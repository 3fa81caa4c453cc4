package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `work_year,experience_level,employment_type,job_title,salary_in_usd,remote_ratio
2025,EN,FT,Analyst,100000,0
2025,SE,FT,Analyst,160000,100
2025,SE,FT,Engineer,200000,100
2025,MI,FT,Engineer,150000,50
2025,EX,FT,Director,300000,0
2024,MI,FT,Engineer,999999,50
`

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

// fixture writes the sample CSV and an empty config file, returning both paths
func fixture(t *testing.T) (csvPath, configPath string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = filepath.Join(dir, "salaries.csv")
	configPath = filepath.Join(dir, "salaryscenes.yaml")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o600))
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: error\n"), 0o600))
	return csvPath, configPath
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSummary(t *testing.T) {
	csvPath, cfgPath := fixture(t)

	out, stderr, err := execute(t, "summary", "--config", cfgPath, "--dataset", csvPath, "--silence", "--no-progress", "--job", "Engineer", "--top", "2")
	require.NoError(t, err)

	assert.Empty(t, stderr)
	assert.Contains(t, out, "Top 2 jobs by average salary in 2025")
	assert.Contains(t, out, "Director")
	assert.NotContains(t, out, "Analyst")
	assert.Contains(t, out, "Average salary by experience level: Engineer")
	assert.Contains(t, out, "MI (Mid)")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "$300,000")
	assert.NotContains(t, out, "$999,999")
}

func TestSummaryDefaultsToFirstJob(t *testing.T) {
	csvPath, cfgPath := fixture(t)

	out, _, err := execute(t, "summary", "--config", cfgPath, "--dataset", csvPath, "--silence", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Average salary by experience level: Analyst")
}

func TestSummaryBannerAndProgressGoToStderr(t *testing.T) {
	csvPath, cfgPath := fixture(t)

	out, stderr, err := execute(t, "summary", "--config", cfgPath, "--dataset", csvPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "scene by scene")
	assert.NotContains(t, out, "scene by scene")
}

func TestSummaryErrors(t *testing.T) {
	csvPath, cfgPath := fixture(t)

	_, _, err := execute(t, "summary", "--config", cfgPath, "--dataset", csvPath, "--silence", "--no-progress", "--job", "Astronaut")
	assert.ErrorContains(t, err, "unknown job title")

	_, _, err = execute(t, "summary", "--config", cfgPath, "--dataset", filepath.Join(t.TempDir(), "missing.csv"), "--silence", "--no-progress")
	assert.Error(t, err)

	_, _, err = execute(t, "summary", "--config", cfgPath, "--dataset", csvPath, "--year", "2023", "--silence", "--no-progress")
	assert.Error(t, err)

	_, _, err = execute(t, "summary", "--config", cfgPath, "--top", "0", "--silence")
	assert.ErrorContains(t, err, "config error")
}

func TestExportToStdout(t *testing.T) {
	csvPath, cfgPath := fixture(t)

	out, _, err := execute(t, "export", "--config", cfgPath, "--dataset", csvPath, "--silence", "--scene", "experience", "--job", "Engineer")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#viz > figure#experience").Length())
	selected, _ := doc.Find("#jobSelector option[selected]").Attr("value")
	assert.Equal(t, "Engineer", selected)
}

func TestExportToFile(t *testing.T) {
	csvPath, cfgPath := fixture(t)
	target := filepath.Join(t.TempDir(), "remote.html")

	_, _, err := execute(t, "export", "--config", cfgPath, "--dataset", csvPath, "--silence", "--scene", "remote-ratio", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#viz > figure#remote-ratio").Length())
	style, _ := doc.Find("#nextButton").Attr("style")
	assert.Contains(t, style, "display:none")
}

func TestExportErrors(t *testing.T) {
	csvPath, cfgPath := fixture(t)

	_, _, err := execute(t, "export", "--config", cfgPath, "--dataset", csvPath, "--silence", "--scene", "finale")
	assert.ErrorContains(t, err, "unknown scene")

	_, _, err = execute(t, "export", "--config", cfgPath, "--dataset", csvPath, "--silence", "--job", "Engineer")
	assert.Error(t, err)
}

func TestServeRejectsBadPort(t *testing.T) {
	_, cfgPath := fixture(t)

	_, _, err := execute(t, "serve", "--config", cfgPath, "--silence", "--port", "70000")
	assert.ErrorContains(t, err, "config error")
}
