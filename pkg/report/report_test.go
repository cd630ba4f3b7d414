package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtech/tolerance/pkg/export"
	"github.com/gtech/tolerance/pkg/platform"
	"github.com/gtech/tolerance/pkg/stats"
)

func newTestDriver() (*Driver, *bytes.Buffer) {
	var buf bytes.Buffer
	analyzer := stats.NewAnalyzer(&buf, 0, 0, 0, 0)
	return New(&buf, platform.New(0), analyzer), &buf
}

func TestRunTwitterOnlyExport(t *testing.T) {
	d, buf := newTestDriver()

	doc := &export.Document{
		ExportDate: "2026-08-20",
		Calibration: []export.Record{
			{Subreddit: "@bob", PostID: "", Heuristic: export.Num(30), API: export.Num(45)},
		},
	}

	rep := d.Run(doc)
	out := buf.String()

	assert.Contains(t, out, "Export Date: 2026-08-20")
	assert.Contains(t, out, "Twitter: 1")
	assert.Contains(t, out, "Reddit:  0")

	// The empty Reddit partition reports "No data" rather than erroring.
	assert.Contains(t, out, "REDDIT - Heuristic Scores: No data")
	assert.Contains(t, out, "REDDIT - API Scores: No data")
	assert.Contains(t, out, "TWITTER - Heuristic Scores")
	assert.Contains(t, out, "TWITTER - Heuristic vs API Comparison")

	assert.Equal(t, 0, rep.Reddit.Count)
	assert.Nil(t, rep.Reddit.Comparison)
	assert.Equal(t, 1, rep.Twitter.Heuristic.N)
	assert.Equal(t, 1, rep.Twitter.API.N)
	require.NotNil(t, rep.Twitter.Comparison)
	assert.Equal(t, 1, rep.Twitter.Comparison.Within)
}

func TestRunEmptyDocument(t *testing.T) {
	d, buf := newTestDriver()

	rep := d.Run(&export.Document{})
	out := buf.String()

	assert.Contains(t, out, "Export Date: unknown")
	assert.Contains(t, out, "Total Sessions: 0")
	assert.Contains(t, out, "Total Calibration Entries: 0")
	assert.NotContains(t, out, "SESSION DATA")
	assert.Empty(t, rep.Impressions)
}

func TestRunNullAPIScoreExcluded(t *testing.T) {
	d, buf := newTestDriver()

	doc := &export.Document{
		Calibration: []export.Record{
			{Subreddit: "golang", PostID: "a1", Heuristic: export.Num(55), API: export.Null()},
			{Subreddit: "golang", PostID: "a2", Heuristic: export.Num(65)},
		},
	}

	rep := d.Run(doc)

	assert.Equal(t, 2, rep.Reddit.Heuristic.N)
	assert.Equal(t, 0, rep.Reddit.API.N)
	// No complete pairs, so no comparison block.
	assert.Nil(t, rep.Reddit.Comparison)
	assert.NotContains(t, buf.String(), "Heuristic vs API Comparison")
}

func TestRunSessionBucketTallies(t *testing.T) {
	d, buf := newTestDriver()

	doc := &export.Document{
		Sessions: []export.Session{
			{Posts: []export.Record{
				{Subreddit: "golang", PostID: "r1", Bucket: "low"},
				{Subreddit: "golang", PostID: "r2", Bucket: "high"},
				{Subreddit: "golang", PostID: "r3", Bucket: "weird"},
			}},
			{Posts: []export.Record{
				{Subreddit: "golang", PostID: "r4"},
			}},
		},
	}

	rep := d.Run(doc)
	out := buf.String()

	assert.Contains(t, out, "SESSION DATA - Bucket Distribution")
	assert.Contains(t, out, "Reddit (4 impressions):")
	// Twitter partition is empty and therefore skipped.
	assert.NotContains(t, out, "Twitter (")

	require.Len(t, rep.Impressions, 1)
	tally := rep.Impressions[0]
	assert.Equal(t, platform.Reddit, tally.Platform)
	assert.Equal(t, 4, tally.Total)
	assert.Equal(t, 1, tally.Buckets["low"])
	assert.Equal(t, 1, tally.Buckets["high"])
	// Absent and unrecognized labels both fold into "unknown".
	assert.Equal(t, 2, tally.Buckets["unknown"])
	assert.Contains(t, out, "unknown: 2 (50.0%)")
}

func TestRunPartitionsBySessionPlatform(t *testing.T) {
	d, buf := newTestDriver()

	doc := &export.Document{
		Sessions: []export.Session{
			{Posts: []export.Record{
				{Subreddit: "@alice", PostID: "", Bucket: "medium"},
				{Subreddit: "golang", PostID: "r1", Bucket: "low"},
			}},
		},
	}

	rep := d.Run(doc)
	out := buf.String()

	assert.Contains(t, out, "Reddit (1 impressions):")
	assert.Contains(t, out, "Twitter (1 impressions):")
	require.Len(t, rep.Impressions, 2)
	// Reddit tallies print before Twitter.
	assert.Equal(t, platform.Reddit, rep.Impressions[0].Platform)
	assert.Equal(t, platform.Twitter, rep.Impressions[1].Platform)
}
