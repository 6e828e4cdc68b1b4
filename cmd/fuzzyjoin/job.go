package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/viant/fuzzyjoin/config"
	"github.com/viant/fuzzyjoin/joiner"
	"github.com/viant/fuzzyjoin/table"
	"github.com/viant/fuzzyjoin/tableio"
)

const maxConcurrentLoads = 4

// runJob loads every source concurrently and joins them in job order.
func runJob(ctx context.Context, log *slog.Logger, job *config.Job) (*table.Table, error) {
	sources := append([]config.Source{job.Main}, job.Tables...)
	tables := make([]*table.Table, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, src := range sources {
		g.Go(func() error {
			started := time.Now()
			t, err := loadSource(gctx, src)
			if err != nil {
				return fmt.Errorf("source %d (%s): %w", i, src.Source, err)
			}
			tables[i] = t
			log.Debug("source loaded", "index", i, "source", src.Source, "rows", t.Len(), "duration", time.Since(started))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	aux := make([]joiner.Aux, len(job.Tables))
	for i, src := range job.Tables {
		aux[i] = joiner.Aux{Table: tables[i+1], Key: src.Key}
	}
	opts := append(job.JoinerOptions(), joiner.WithLogger(log))
	j, err := joiner.New(aux, job.Main.Key, opts...)
	if err != nil {
		return nil, err
	}
	return j.FitTransform(tables[0])
}

func loadSource(ctx context.Context, src config.Source) (*table.Table, error) {
	switch src.Source {
	case config.SourceCSV:
		return tableio.LoadCSVFile(src.Path)
	case config.SourceParquet:
		return tableio.LoadParquet(src.Path)
	case config.SourceSQLite:
		return tableio.LoadSQLiteFile(ctx, src.DSN, src.Query)
	}
	return nil, fmt.Errorf("unsupported source %q", src.Source)
}

// resolvePaths makes relative source and output paths relative to the job
// file.
func resolvePaths(job *config.Job, configPath string) {
	dir := filepath.Dir(configPath)
	fix := func(p string) string {
		if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, ":") || strings.HasPrefix(p, "file:") {
			return p
		}
		return filepath.Join(dir, p)
	}
	job.Main.Path = fix(job.Main.Path)
	for i := range job.Tables {
		job.Tables[i].Path = fix(job.Tables[i].Path)
		if job.Tables[i].Source == config.SourceSQLite {
			job.Tables[i].DSN = fix(job.Tables[i].DSN)
		}
	}
	if job.Main.Source == config.SourceSQLite {
		job.Main.DSN = fix(job.Main.DSN)
	}
	job.Output = fix(job.Output)
}
