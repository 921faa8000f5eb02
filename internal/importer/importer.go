// Package importer loads spreadsheet exports into database tables.
package importer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/schooldata/internal/db"
	"github.com/sells-group/schooldata/internal/fetcher"
)

// Loader replaces a table with the given rows.
type Loader interface {
	ImportTable(ctx context.Context, spec db.TableSpec, rows [][]any) (int64, error)
}

// Resolver maps a source to a readable local file.
type Resolver interface {
	Resolve(ctx context.Context, source string) (string, error)
}

// Table is a parsed spreadsheet ready to load.
type Table struct {
	Spec db.TableSpec
	Rows [][]any
	// Dropped counts data rows that could not be converted.
	Dropped int
}

// Outcome reports what happened to one source.
type Outcome struct {
	Source  string
	Table   string
	Rows    int64
	Skipped bool
	Err     error
}

// Summary is the result of one import run.
type Summary struct {
	BatchID  string
	Outcomes []Outcome
}

// Failed returns the number of sources that did not load.
func (s Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Loaded returns the number of tables written.
func (s Summary) Loaded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil && !o.Skipped {
			n++
		}
	}
	return n
}

// Importer parses sources concurrently and loads them one table at a time.
type Importer struct {
	loader      Loader
	resolver    Resolver
	concurrency int
}

// New creates an Importer. A nil resolver downloads remote sources into
// the OS temp dir with default fetcher options.
func New(loader Loader, resolver Resolver, concurrency int) *Importer {
	if concurrency < 1 {
		concurrency = 1
	}
	if resolver == nil {
		resolver = fetcher.NewResolver(filepath.Join(os.TempDir(), "schooldata"), fetcher.HTTPOptions{})
	}
	return &Importer{loader: loader, resolver: resolver, concurrency: concurrency}
}

type parsed struct {
	outcome Outcome
	table   *Table
}

// Run imports every source. Failures of individual sources are recorded in
// the summary and do not stop the run; only cancellation aborts it.
func (im *Importer) Run(ctx context.Context, sources []Source) (*Summary, error) {
	summary := &Summary{BatchID: uuid.NewString()}
	log := zap.L().With(zap.String("batch_id", summary.BatchID))

	sources, err := expandSources(sources)
	if err != nil {
		return nil, err
	}
	log.Info("import started", zap.Int("sources", len(sources)), zap.Int("concurrency", im.concurrency))

	results := make([]parsed, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			res := &results[i]
			res.outcome.Source = src.Path
			res.outcome.Table = src.Table
			if res.outcome.Table == "" {
				res.outcome.Table = TableName(src.Path)
			}
			if ignored(src.Path) {
				res.outcome.Skipped = true
				log.Info("ignoring source", zap.String("source", src.Path))
				return nil
			}

			table, err := im.parseSource(gctx, src, res.outcome.Table, log)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				res.outcome.Err = err
				log.Error("parse failed", zap.String("source", src.Path), zap.Error(err))
				return nil
			}
			if table == nil {
				res.outcome.Skipped = true
				return nil
			}
			res.table = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "importer: parse sources")
	}

	for i := range results {
		res := &results[i]
		if res.table != nil {
			n, err := im.loader.ImportTable(ctx, res.table.Spec, res.table.Rows)
			if err != nil {
				if ctx.Err() != nil {
					return nil, eris.Wrap(ctx.Err(), "importer: load tables")
				}
				res.outcome.Err = err
				log.Error("load failed", zap.String("table", res.outcome.Table), zap.Error(err))
			} else {
				res.outcome.Rows = n
				log.Info("table loaded",
					zap.String("table", res.outcome.Table),
					zap.Int64("rows", n),
					zap.Int("dropped", res.table.Dropped),
				)
			}
		}
		summary.Outcomes = append(summary.Outcomes, res.outcome)
	}

	log.Info("import complete",
		zap.Int("loaded", summary.Loaded()),
		zap.Int("failed", summary.Failed()),
	)
	return summary, nil
}

func (im *Importer) parseSource(ctx context.Context, src Source, table string, log *zap.Logger) (*Table, error) {
	path, err := im.resolver.Resolve(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
	if err != nil {
		return nil, err
	}
	return ParseRows(table, IsKeystone(filepath.Base(path)), rows, log)
}

// ParseRows builds a Table from sheet rows whose first row is the header.
// Sheets with fewer than two rows yield a nil table.
func ParseRows(table string, keystone bool, rows [][]string, log *zap.Logger) (*Table, error) {
	if len(rows) < 2 {
		log.Info("skipping sheet without data rows", zap.String("table", table), zap.Int("rows", len(rows)))
		return nil, nil
	}

	header := rows[0]
	if keystone {
		header = keystoneHeader(header)
	}
	layout, err := ParseHeader(table, header, log)
	if err != nil {
		return nil, err
	}

	out := &Table{Spec: layout.Spec, Rows: make([][]any, 0, len(rows)-1)}
	for i, cells := range rows[1:] {
		if keystone {
			cells, err = splitKeystoneRow(cells)
			if err != nil {
				out.Dropped++
				log.Warn("dropping row", zap.String("table", table), zap.Int("row", i+2), zap.Error(err))
				continue
			}
		}
		out.Rows = append(out.Rows, layout.Row(cells, log))
	}
	return out, nil
}

// expandSources replaces local directories with the spreadsheets inside them.
func expandSources(sources []Source) ([]Source, error) {
	var out []Source
	for _, s := range sources {
		if fetcher.IsRemote(s.Path) {
			out = append(out, s)
			continue
		}
		info, err := os.Stat(s.Path)
		if err != nil || !info.IsDir() {
			out = append(out, s)
			continue
		}
		files, err := expandDir(s.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}
