// Package dataset loads the salary survey and hands the filtered records to
// whoever is waiting on the ready signal.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/utils"
)

// TargetYear is the survey year the story is told about
const TargetYear = "2025"

var requiredColumns = []string{"work_year", "job_title", "experience_level", "remote_ratio", "salary_in_usd"}

// ErrNoRecords means the file parsed but nothing matched the target year
var ErrNoRecords = errors.New("no records for target year")

// DataLoadError wraps any failure to obtain the dataset
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Loader fetches the dataset once
type Loader struct {
	src      Source
	year     string
	progress *pb.ProgressBar

	once    sync.Once
	ready   chan struct{}
	records []models.Record
	err     error
}

// Option configures a Loader
type Option func(*Loader)

// WithYear overrides TargetYear
func WithYear(year string) Option {
	return func(l *Loader) { l.year = year }
}

// WithProgress reports bytes read on bar. The bar total is set from the source size.
func WithProgress(bar *pb.ProgressBar) Option {
	return func(l *Loader) { l.progress = bar }
}

// NewLoader creates a loader for src
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		src:   src,
		year:  TargetYear,
		ready: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the single load attempt in the background. Further calls do nothing.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go func() {
			l.records, l.err = l.Load(ctx)
			close(l.ready)
		}()
	})
}

// Ready is closed once the load started by Start has finished
func (l *Loader) Ready() <-chan struct{} {
	return l.ready
}

// Result returns the outcome of Start. Only valid after Ready is closed.
func (l *Loader) Result() ([]models.Record, error) {
	return l.records, l.err
}

// Load reads, coerces and filters the dataset synchronously
func (l *Loader) Load(ctx context.Context) ([]models.Record, error) {
	rc, size, err := l.src.Open(ctx)
	if err != nil {
		return nil, l.fail(err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if l.progress != nil {
		if size > 0 {
			l.progress.SetTotal(size)
		}
		l.progress.Start()
		r = l.progress.NewProxyReader(rc)
		defer l.progress.Finish()
	}

	records, err := parse(r, l.year)
	if err != nil {
		return nil, l.fail(err)
	}
	if len(records) == 0 {
		return nil, l.fail(fmt.Errorf("%w %s", ErrNoRecords, l.year))
	}
	return records, nil
}

func (l *Loader) fail(err error) error {
	return &DataLoadError{Source: l.src.Name(), Err: err}
}

func parse(r io.Reader, year string) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var records []models.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if strings.TrimSpace(row[cols["work_year"]]) != year {
			continue
		}

		rec, err := toRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func toRecord(row []string, cols map[string]int) (models.Record, error) {
	salary, err := utils.ParseSalary(row[cols["salary_in_usd"]])
	if err != nil {
		return models.Record{}, err
	}
	remote, err := utils.ParseRemoteRatio(row[cols["remote_ratio"]])
	if err != nil {
		return models.Record{}, err
	}
	level, err := models.ParseExperienceLevel(strings.TrimSpace(row[cols["experience_level"]]))
	if err != nil {
		return models.Record{}, err
	}

	return models.Record{
		WorkYear:        strings.TrimSpace(row[cols["work_year"]]),
		JobTitle:        strings.TrimSpace(row[cols["job_title"]]),
		ExperienceLevel: level,
		RemoteRatio:     remote,
		SalaryInUSD:     salary,
	}, nil
}
