package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtech/tolerance/internal/store"
	"github.com/gtech/tolerance/pkg/platform"
	"github.com/gtech/tolerance/pkg/report"
	"github.com/gtech/tolerance/pkg/stats"
)

func TestSaveReport(t *testing.T) {
	db, err := store.New(":memory:")
	require.NoError(t, err)
	defer db.Close()

	rep := &report.Report{
		ExportDate: "2026-08-20",
		Reddit: report.PartitionReport{
			Platform:  platform.Reddit,
			Heuristic: stats.Summary{N: 3, Mean: 50, Median: 50, P75: 60, P90: 70, P95: 75},
		},
		Twitter: report.PartitionReport{Platform: platform.Twitter},
	}

	ctx := context.Background()
	require.NoError(t, saveReport(ctx, db, "engagement-export-1.json", rep))

	runs, err := db.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "engagement-export-1.json", runs[0].ExportPath)

	// Only the non-empty distribution is recorded.
	sums, err := db.ListSummaries(ctx, store.ListOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "reddit", sums[0].Platform)
	assert.Equal(t, "heuristic", sums[0].Source)
	assert.Equal(t, 3, sums[0].N)
	assert.Equal(t, "2026-08-20", sums[0].ExportDate)
}
