package models

import "fmt"

// ExperienceLevel is the seniority code used by the salary survey
type ExperienceLevel string

const (
	Entry     ExperienceLevel = "EN"
	Mid       ExperienceLevel = "MI"
	Senior    ExperienceLevel = "SE"
	Executive ExperienceLevel = "EX"
)

// ExperienceLevels lists the canonical levels in chart order
var ExperienceLevels = []ExperienceLevel{Entry, Mid, Senior, Executive}

// Name returns the long name shown in legends
func (l ExperienceLevel) Name() string {
	switch l {
	case Entry:
		return "Entry"
	case Mid:
		return "Mid"
	case Senior:
		return "Senior"
	case Executive:
		return "Executive"
	}
	return string(l)
}

// ParseExperienceLevel validates a raw experience_level value
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	for _, l := range ExperienceLevels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// Record represents one row of the salary survey
type Record struct {
	WorkYear        string          `json:"work_year"`
	JobTitle        string          `json:"job_title"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	RemoteRatio     int             `json:"remote_ratio"`
	SalaryInUSD     float64         `json:"salary_in_usd"`
}

// Bucket is one aggregated (key, mean salary) pair behind a bar
type Bucket struct {
	Key        string  `json:"key"`
	MeanSalary float64 `json:"mean_salary"`
	Count      int     `json:"count"`
}
