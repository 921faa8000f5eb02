package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schooldata/internal/fetcher"
	"github.com/sells-group/schooldata/internal/importer"
)

var importManifest string

var importCmd = &cobra.Command{
	Use:   "import [file|dir|url ...]",
	Short: "Load spreadsheets into the database",
	Long:  "Loads .xlsx files, directories of them, http(s) or ftp URLs, and the sources listed in a YAML manifest. Each file replaces the table named after it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("import"); err != nil {
			return err
		}

		sources, err := importSources(args, importManifest)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		resolver := fetcher.NewResolver(cfg.Import.TempDir, fetcher.HTTPOptions{
			Timeout: time.Duration(cfg.Import.HTTPTimeoutSecs) * time.Second,
		})
		summary, err := importer.New(st, resolver, cfg.Import.Concurrency).Run(ctx, sources)
		if err != nil {
			return eris.Wrap(err, "import")
		}

		if err := printSummary(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
		zap.L().Info("import complete",
			zap.String("batch_id", summary.BatchID),
			zap.Int("loaded", summary.Loaded()),
			zap.Int("failed", summary.Failed()),
		)
		if n := summary.Failed(); n > 0 {
			return eris.Errorf("import: %d of %d sources failed", n, len(summary.Outcomes))
		}
		return nil
	},
}

// importSources merges positional sources with the manifest's.
func importSources(args []string, manifest string) ([]importer.Source, error) {
	sources := make([]importer.Source, 0, len(args))
	for _, a := range args {
		sources = append(sources, importer.Source{Path: a})
	}
	if manifest != "" {
		m, err := importer.LoadManifest(manifest)
		if err != nil {
			return nil, err
		}
		sources = append(sources, m.Sources...)
	}
	if len(sources) == 0 {
		return nil, eris.New("import: no sources given (pass files or --manifest)")
	}
	return sources, nil
}

func printSummary(w io.Writer, s *importer.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTABLE\tROWS\tSTATUS")
	for _, o := range s.Outcomes {
		status := "ok"
		switch {
		case o.Err != nil:
			status = "error: " + o.Err.Error()
		case o.Skipped:
			status = "skipped"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", o.Source, o.Table, o.Rows, status)
	}
	fmt.Fprintf(tw, "\nbatch %s: %d loaded, %d failed\n", s.BatchID, s.Loaded(), s.Failed())
	return eris.Wrap(tw.Flush(), "write summary")
}

func init() {
	importCmd.Flags().StringVar(&importManifest, "manifest", "", "YAML file listing sources")
	rootCmd.AddCommand(importCmd)
}
