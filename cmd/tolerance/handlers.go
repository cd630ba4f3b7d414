package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gtech/tolerance/internal/config"
	"github.com/gtech/tolerance/internal/store"
	"github.com/gtech/tolerance/pkg/export"
	"github.com/gtech/tolerance/pkg/platform"
	"github.com/gtech/tolerance/pkg/report"
	"github.com/gtech/tolerance/pkg/stats"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("tolerance.yaml"); err == nil {
			path = "tolerance.yaml"
		}
	}
	return config.Load(path)
}

func runAnalyze(path string, save, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if path == "" {
		path, err = export.Locate(cfg.Export.Pattern, cfg.Export.FallbackDir)
		if err != nil {
			return fmt.Errorf("%w\nusage: tolerance analyze <export-file.json>", err)
		}
		fmt.Fprintf(os.Stderr, "using %s\n", path)
	}

	doc, err := export.Load(path)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if jsonOutput {
		out = io.Discard
	}

	classifier := platform.New(cfg.Platform.TweetIDDigits)
	analyzer := stats.NewAnalyzer(out,
		cfg.Buckets.LowCutoff, cfg.Buckets.HighCutoff,
		cfg.Compare.Band, cfg.Histogram.BarWidth)

	rep := report.New(out, classifier, analyzer).Run(doc)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	}

	if save {
		db, err := store.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()

		if err := saveReport(context.Background(), db, path, rep); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "recorded run for %s\n", path)
	}

	return nil
}

// saveReport records one run plus a summary row per non-empty
// platform/source distribution. Only derived numbers are stored, never the
// export's records.
func saveReport(ctx context.Context, db store.Store, path string, rep *report.Report) error {
	run := &store.Run{ExportPath: path, ExportDate: rep.ExportDate}
	if err := db.AddRun(ctx, run); err != nil {
		return err
	}

	parts := []report.PartitionReport{rep.Reddit, rep.Twitter}
	for _, p := range parts {
		sources := []struct {
			name string
			s    stats.Summary
		}{
			{"heuristic", p.Heuristic},
			{"api", p.API},
		}
		for _, src := range sources {
			if src.s.N == 0 {
				continue
			}
			sum := &store.RunSummary{
				RunID:    run.ID,
				Platform: string(p.Platform),
				Source:   src.name,
				N:        src.s.N,
				Mean:     src.s.Mean,
				Median:   src.s.Median,
				P75:      src.s.P75,
				P90:      src.s.P90,
				P95:      src.s.P95,
			}
			if err := db.AddSummary(ctx, sum); err != nil {
				return err
			}
		}
	}
	return nil
}

func runHistory(jsonOutput bool, platformFilter string, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	sums, err := db.ListSummaries(context.Background(), store.ListOpts{
		Platform: platformFilter,
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("list summaries: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sums)
	}

	if len(sums) == 0 {
		fmt.Println("no recorded runs (analyze an export with --save first)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANALYZED\tPLATFORM\tSOURCE\tN\tMEAN\tMEDIAN\tP75\tP90\tP95")
	for _, s := range sums {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%.1f\t%g\t%g\t%g\n",
			s.AnalyzedAt.Format(time.RFC3339), s.Platform, s.Source,
			s.N, s.Mean, s.Median, s.P75, s.P90, s.P95)
	}
	return w.Flush()
}
