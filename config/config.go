// Package config describes a fuzzy join job in YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/fuzzyjoin/join"
	"github.com/viant/fuzzyjoin/joiner"
	"github.com/viant/fuzzyjoin/matcher"
	"github.com/viant/fuzzyjoin/vectorizer"
)

// Source kinds.
const (
	SourceCSV     = "csv"
	SourceSQLite  = "sqlite"
	SourceParquet = "parquet"
)

// Source locates one input table and its join key.
type Source struct {
	Source string   `yaml:"source"`
	Path   string   `yaml:"path,omitempty"`  // csv, parquet
	DSN    string   `yaml:"dsn,omitempty"`   // sqlite
	Query  string   `yaml:"query,omitempty"` // sqlite
	Key    []string `yaml:"key"`
}

// Job is a main table joined with auxiliary tables.
type Job struct {
	Main          Source   `yaml:"main"`
	Tables        []Source `yaml:"tables"`
	MatchScore    float64  `yaml:"match_score"`
	Analyzer      string   `yaml:"analyzer,omitempty"`
	NgramRange    []int    `yaml:"ngram_range,omitempty"`
	CacheCapacity int      `yaml:"cache_capacity,omitempty"`
	ScoreColumn   string   `yaml:"score_column,omitempty"`
	Index         string   `yaml:"index,omitempty"`
	Output        string   `yaml:"output,omitempty"`
}

// Load reads and validates the job file at path.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	job, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Parse decodes, defaults and validates a job.
func Parse(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	job.applyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *Job) applyDefaults() {
	params := vectorizer.DefaultParams()
	if j.Analyzer == "" {
		j.Analyzer = string(params.Analyzer)
	}
	if len(j.NgramRange) == 0 {
		j.NgramRange = []int{params.NgramRange.Min, params.NgramRange.Max}
	}
	if j.CacheCapacity == 0 {
		j.CacheCapacity = joiner.DefaultCacheCapacity
	}
	if j.Index == "" {
		j.Index = string(matcher.Brute)
	}
}

// Validate checks the job without touching any source.
func (j *Job) Validate() error {
	var errs []error
	if err := j.Main.validate("main"); err != nil {
		errs = append(errs, err)
	}
	if len(j.Tables) == 0 {
		errs = append(errs, errors.New("tables: at least one auxiliary table is required"))
	}
	for i, t := range j.Tables {
		if err := t.validate(fmt.Sprintf("tables[%d]", i)); err != nil {
			errs = append(errs, err)
			continue
		}
		if len(j.Main.Key) > 0 && len(t.Key) != len(j.Main.Key) {
			errs = append(errs, fmt.Errorf("tables[%d]: %w: key %v, main key %v", i, join.ErrKeyArity, t.Key, j.Main.Key))
		}
	}
	if j.MatchScore < 0 || j.MatchScore > 1 {
		errs = append(errs, fmt.Errorf("match_score: %w: got %v", matcher.ErrInvalidMatchScore, j.MatchScore))
	}
	if _, err := vectorizer.ParseAnalyzer(j.Analyzer); err != nil {
		errs = append(errs, fmt.Errorf("analyzer: %w", err))
	}
	if len(j.NgramRange) != 2 {
		errs = append(errs, fmt.Errorf("ngram_range: want [min, max], got %v", j.NgramRange))
	} else if err := (vectorizer.NgramRange{Min: j.NgramRange[0], Max: j.NgramRange[1]}).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ngram_range: %w", err))
	}
	if j.CacheCapacity < 0 {
		errs = append(errs, fmt.Errorf("cache_capacity: must be positive, got %d", j.CacheCapacity))
	}
	if _, err := matcher.ParseIndexKind(j.Index); err != nil {
		errs = append(errs, fmt.Errorf("index: %w", err))
	}
	return errors.Join(errs...)
}

func (s Source) validate(name string) error {
	if len(s.Key) == 0 {
		return fmt.Errorf("%s: key is required", name)
	}
	switch s.Source {
	case SourceCSV, SourceParquet:
		if s.Path == "" {
			return fmt.Errorf("%s: path is required for %s sources", name, s.Source)
		}
	case SourceSQLite:
		if s.DSN == "" || s.Query == "" {
			return fmt.Errorf("%s: dsn and query are required for sqlite sources", name)
		}
	default:
		return fmt.Errorf("%s: unsupported source %q (expected csv, sqlite or parquet)", name, s.Source)
	}
	return nil
}

// JoinerOptions converts the job parameters into joiner options.
func (j *Job) JoinerOptions() []joiner.Option {
	opts := []joiner.Option{
		joiner.WithMatchScore(j.MatchScore),
		joiner.WithAnalyzer(vectorizer.Analyzer(j.Analyzer)),
		joiner.WithCacheCapacity(j.CacheCapacity),
		joiner.WithScoreColumn(j.ScoreColumn),
		joiner.WithIndex(matcher.IndexKind(j.Index)),
	}
	if len(j.NgramRange) == 2 {
		opts = append(opts, joiner.WithNgramRange(j.NgramRange[0], j.NgramRange[1]))
	}
	return opts
}
