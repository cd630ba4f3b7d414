package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gtech/tolerance/pkg/export"
	"github.com/gtech/tolerance/pkg/platform"
	"github.com/gtech/tolerance/pkg/stats"
)

// bucketOrder is the print order for pre-assigned impression buckets.
var bucketOrder = []string{"low", "medium", "high", "unknown"}

// PartitionReport holds the analyses for one platform's calibration entries.
type PartitionReport struct {
	Platform   platform.Platform `json:"platform"`
	Count      int               `json:"count"`
	Heuristic  stats.Summary     `json:"heuristic"`
	API        stats.Summary     `json:"api"`
	Comparison *stats.Comparison `json:"comparison,omitempty"`
}

// BucketTally counts pre-assigned bucket labels for one platform's impressions.
type BucketTally struct {
	Platform platform.Platform `json:"platform"`
	Total    int               `json:"total"`
	Buckets  map[string]int    `json:"buckets"`
}

// Report is the full result of one analyze run.
type Report struct {
	ExportDate  string          `json:"export_date"`
	Sessions    int             `json:"sessions"`
	Calibration int             `json:"calibration"`
	Reddit      PartitionReport `json:"reddit"`
	Twitter     PartitionReport `json:"twitter"`
	Impressions []BucketTally   `json:"impressions,omitempty"`
}

// Driver runs the report pipeline: classify, analyze each partition and
// score source, compare paired scores, then tally session impressions.
type Driver struct {
	out        io.Writer
	classifier *platform.Classifier
	analyzer   *stats.Analyzer
}

// New creates a report driver rendering to out.
func New(out io.Writer, c *platform.Classifier, a *stats.Analyzer) *Driver {
	return &Driver{out: out, classifier: c, analyzer: a}
}

// Run renders the full calibration report for doc and returns it.
func (d *Driver) Run(doc *export.Document) *Report {
	rep := &Report{
		ExportDate:  doc.ExportDate,
		Sessions:    len(doc.Sessions),
		Calibration: len(doc.Calibration),
	}

	date := doc.ExportDate
	if date == "" {
		date = "unknown"
	}
	fmt.Fprintf(d.out, "\nExport Date: %s\n", date)
	fmt.Fprintf(d.out, "Total Sessions: %d\n", rep.Sessions)
	fmt.Fprintf(d.out, "Total Calibration Entries: %d\n", rep.Calibration)

	twitterCal, redditCal := d.classifier.Partition(doc.Calibration)

	fmt.Fprintf(d.out, "\nPlatform breakdown:\n")
	fmt.Fprintf(d.out, "  Twitter: %d\n", len(twitterCal))
	fmt.Fprintf(d.out, "  Reddit:  %d\n", len(redditCal))

	rep.Reddit = d.analyzePartition(redditCal, platform.Reddit, "REDDIT")
	rep.Twitter = d.analyzePartition(twitterCal, platform.Twitter, "TWITTER")

	d.tallyImpressions(doc, rep)
	return rep
}

// analyzePartition runs the heuristic and API score analyses plus the paired
// comparison for one platform's calibration entries. Empty score lists come
// out as "No data" notices from the analyzer; an empty pair list skips the
// comparison block entirely.
func (d *Driver) analyzePartition(records []export.Record, pf platform.Platform, label string) PartitionReport {
	var heuristic, api []float64
	var pairs []stats.Pair

	for _, r := range records {
		if r.Heuristic.Valid {
			heuristic = append(heuristic, r.Heuristic.Value)
		}
		// A null apiScore means "not yet computed" and is excluded.
		if r.API.Valid {
			api = append(api, r.API.Value)
		}
		if r.Heuristic.Valid && r.API.Valid {
			pairs = append(pairs, stats.Pair{Heuristic: r.Heuristic.Value, API: r.API.Value})
		}
	}

	p := PartitionReport{Platform: pf, Count: len(records)}
	p.Heuristic = d.analyzer.Analyze(heuristic, label+" - Heuristic Scores")
	p.API = d.analyzer.Analyze(api, label+" - API Scores")
	p.Comparison = d.analyzer.Compare(pairs, label+" - Heuristic vs API Comparison")
	return p
}

// tallyImpressions counts pre-assigned bucket labels across all session
// posts, split by platform. Platforms with no posts are skipped.
func (d *Driver) tallyImpressions(doc *export.Document, rep *Report) {
	posts := doc.AllPosts()
	if len(posts) == 0 {
		return
	}

	twitterPosts, redditPosts := d.classifier.Partition(posts)

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(d.out, "\n%s\nSESSION DATA - Bucket Distribution\n%s\n", rule, rule)

	groups := []struct {
		pf    platform.Platform
		label string
		posts []export.Record
	}{
		{platform.Reddit, "Reddit", redditPosts},
		{platform.Twitter, "Twitter", twitterPosts},
	}

	for _, g := range groups {
		if len(g.posts) == 0 {
			continue
		}

		tally := BucketTally{Platform: g.pf, Total: len(g.posts), Buckets: make(map[string]int)}
		for _, p := range g.posts {
			tally.Buckets[normalizeBucket(p.Bucket)]++
		}

		fmt.Fprintf(d.out, "\n%s (%d impressions):\n", g.label, tally.Total)
		for _, b := range bucketOrder {
			if count, ok := tally.Buckets[b]; ok {
				fmt.Fprintf(d.out, "  %s: %d (%.1f%%)\n", b, count, 100*float64(count)/float64(tally.Total))
			}
		}

		rep.Impressions = append(rep.Impressions, tally)
	}
}

// normalizeBucket folds absent and unrecognized labels into "unknown".
func normalizeBucket(b string) string {
	switch b {
	case "low", "medium", "high":
		return b
	}
	return "unknown"
}
