// Package aggregate computes the grouped salary means behind each scene.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
)

// ErrEmptyGroup is returned when a mean is requested over no values
var ErrEmptyGroup = errors.New("mean of empty group")

// Mean returns the arithmetic mean of values
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyGroup
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// group keeps salaries per key in first-seen order
type group struct {
	order    []string
	salaries map[string][]float64
}

func newGroup() *group {
	return &group{salaries: make(map[string][]float64)}
}

func (g *group) add(key string, salary float64) {
	if _, ok := g.salaries[key]; !ok {
		g.order = append(g.order, key)
	}
	g.salaries[key] = append(g.salaries[key], salary)
}

// buckets reduces every group to its mean. Groups are only created by add,
// so an empty one means the grouping itself is broken.
func (g *group) buckets() []models.Bucket {
	out := make([]models.Bucket, 0, len(g.order))
	for _, key := range g.order {
		vals := g.salaries[key]
		mean, err := Mean(vals)
		if err != nil {
			panic(fmt.Sprintf("aggregate: group %q: %v", key, err))
		}
		out = append(out, models.Bucket{Key: key, MeanSalary: mean, Count: len(vals)})
	}
	return out
}

// TopJobsByMeanSalary returns the n job titles with the highest mean salary.
// Equal means are ordered by job title.
func TopJobsByMeanSalary(records []models.Record, n int) []models.Bucket {
	g := newGroup()
	for _, r := range records {
		g.add(r.JobTitle, r.SalaryInUSD)
	}
	out := g.buckets()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MeanSalary != out[j].MeanSalary {
			return out[i].MeanSalary > out[j].MeanSalary
		}
		return out[i].Key < out[j].Key
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MeanSalaryByExperience averages the salaries of one job title per experience
// level. Levels without records are left out; the rest keep EN, MI, SE, EX order.
func MeanSalaryByExperience(records []models.Record, jobTitle string) []models.Bucket {
	g := newGroup()
	for _, r := range records {
		if r.JobTitle == jobTitle {
			g.add(string(r.ExperienceLevel), r.SalaryInUSD)
		}
	}
	byKey := make(map[string]models.Bucket)
	for _, b := range g.buckets() {
		byKey[b.Key] = b
	}

	var out []models.Bucket
	for _, level := range models.ExperienceLevels {
		if b, ok := byKey[string(level)]; ok {
			out = append(out, b)
		}
	}
	return out
}

// MeanSalaryByRemoteRatio averages salaries per remote ratio over the whole
// dataset. Buckets come back in the order each ratio first appears.
func MeanSalaryByRemoteRatio(records []models.Record) []models.Bucket {
	g := newGroup()
	for _, r := range records {
		g.add(strconv.Itoa(r.RemoteRatio), r.SalaryInUSD)
	}
	return g.buckets()
}

// DistinctJobs returns the sorted set of job titles in records
func DistinctJobs(records []models.Record) []string {
	seen := make(map[string]struct{})
	var jobs []string
	for _, r := range records {
		if _, ok := seen[r.JobTitle]; ok {
			continue
		}
		seen[r.JobTitle] = struct{}{}
		jobs = append(jobs, r.JobTitle)
	}
	sort.Strings(jobs)
	return jobs
}
