package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Defaults for the calibration policy constants. These mirror the bucket
// cutoffs currently deployed in the posting pipeline; changing them here
// changes the report, not the pipeline.
const (
	DefaultLowCutoff  = 40.0
	DefaultHighCutoff = 70.0
	DefaultDiffBand   = 10.0
	DefaultBarWidth   = 40
)

// histogramMax is the top decile bucket rendered (inclusive). Scores are
// nominally 0-100, so buckets run 0,10,...,100.
const histogramMax = 100

// Summary holds the headline numbers for one score distribution.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
	Low    int     `json:"low"`
	Medium int     `json:"medium"`
	High   int     `json:"high"`
}

// Comparison summarizes signed differences between paired scores.
type Comparison struct {
	Pairs    int     `json:"pairs"`
	MeanDiff float64 `json:"mean_diff"`
	Over     int     `json:"over"`   // api exceeds heuristic by more than the band
	Under    int     `json:"under"`  // api falls short by more than the band
	Within   int     `json:"within"` // inside the closed band
}

// Pair couples the two scores recorded for one post.
type Pair struct {
	Heuristic float64
	API       float64
}

// Analyzer computes score distributions and renders them as text reports.
type Analyzer struct {
	out        io.Writer
	lowCutoff  float64
	highCutoff float64
	diffBand   float64
	barWidth   int
}

// NewAnalyzer creates an analyzer writing to out. Zero thresholds fall back
// to the defaults.
func NewAnalyzer(out io.Writer, lowCutoff, highCutoff, diffBand float64, barWidth int) *Analyzer {
	if lowCutoff == 0 {
		lowCutoff = DefaultLowCutoff
	}
	if highCutoff == 0 {
		highCutoff = DefaultHighCutoff
	}
	if diffBand == 0 {
		diffBand = DefaultDiffBand
	}
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	return &Analyzer{
		out:        out,
		lowCutoff:  lowCutoff,
		highCutoff: highCutoff,
		diffBand:   diffBand,
		barWidth:   barWidth,
	}
}

// Analyze prints the distribution report for scores under the given label
// and returns the summary. An empty input prints a "No data" notice and
// returns a zero summary; it is never an error.
//
// The "median" is deliberately sorted[n/2], the upper-middle element for
// even n. Downstream consumers calibrated against that value, so it stays.
func (a *Analyzer) Analyze(scores []float64, label string) Summary {
	if len(scores) == 0 {
		fmt.Fprintf(a.out, "\n%s: No data\n", label)
		return Summary{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	n := len(sorted)

	sum := 0.0
	for _, s := range sorted {
		sum += s
	}

	// Nearest-rank with a truncating index, clamped to the last element.
	percentile := func(p int) float64 {
		idx := n * p / 100
		if idx > n-1 {
			idx = n - 1
		}
		return sorted[idx]
	}

	s := Summary{
		N:      n,
		Mean:   sum / float64(n),
		Median: sorted[n/2],
		Min:    sorted[0],
		Max:    sorted[n-1],
		P10:    percentile(10),
		P25:    percentile(25),
		P50:    percentile(50),
		P75:    percentile(75),
		P90:    percentile(90),
		P95:    percentile(95),
	}

	for _, v := range sorted {
		switch {
		case v < a.lowCutoff:
			s.Low++
		case v < a.highCutoff:
			s.Medium++
		default:
			s.High++
		}
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(a.out, "\n%s\n%s\n%s\n", rule, label, rule)
	fmt.Fprintf(a.out, "Total posts: %d\n", n)
	fmt.Fprintf(a.out, "\nBasic Stats:\n")
	fmt.Fprintf(a.out, "  Min: %g, Max: %g\n", s.Min, s.Max)
	fmt.Fprintf(a.out, "  Mean: %.1f, Median: %.1f\n", s.Mean, s.Median)
	fmt.Fprintf(a.out, "\nPercentiles:\n")
	fmt.Fprintf(a.out, "  10th: %g\n", s.P10)
	fmt.Fprintf(a.out, "  25th: %g\n", s.P25)
	fmt.Fprintf(a.out, "  50th (median): %g\n", s.P50)
	fmt.Fprintf(a.out, "  75th: %g\n", s.P75)
	fmt.Fprintf(a.out, "  90th: %g\n", s.P90)
	fmt.Fprintf(a.out, "  95th: %g\n", s.P95)

	fmt.Fprintf(a.out, "\nCurrent Bucket Distribution (low<%g, med %g-%g, high>=%g):\n",
		a.lowCutoff, a.lowCutoff, a.highCutoff-1, a.highCutoff)
	fmt.Fprintf(a.out, "  Low:    %4d (%.1f%%)\n", s.Low, 100*float64(s.Low)/float64(n))
	fmt.Fprintf(a.out, "  Medium: %4d (%.1f%%)\n", s.Medium, 100*float64(s.Medium)/float64(n))
	fmt.Fprintf(a.out, "  High:   %4d (%.1f%%)\n", s.High, 100*float64(s.High)/float64(n))

	a.printHistogram(sorted)

	fmt.Fprintf(a.out, "\nSuggested Thresholds (based on percentiles):\n")
	fmt.Fprintf(a.out, "  For ~33%% high engagement: threshold >= %g (75th percentile)\n", s.P75)
	fmt.Fprintf(a.out, "  For ~10-20%% high engagement: threshold >= %g (90th percentile)\n", s.P90)

	return s
}

// printHistogram renders decile buckets 0..100 with bars scaled to the
// fullest bucket. Empty buckets still get a row.
func (a *Analyzer) printHistogram(sorted []float64) {
	buckets := make(map[int]int)
	for _, v := range sorted {
		b := int(math.Floor(v/10)) * 10
		buckets[b]++
	}

	maxCount := 0
	for _, c := range buckets {
		if c > maxCount {
			maxCount = c
		}
	}

	fmt.Fprintf(a.out, "\nScore Histogram:\n")
	for b := 0; b <= histogramMax; b += 10 {
		count := buckets[b]
		barLen := 0
		if maxCount > 0 {
			barLen = a.barWidth * count / maxCount
		}
		fmt.Fprintf(a.out, "  %3d-%3d: %s %d\n", b, b+9, strings.Repeat("█", barLen), count)
	}
}

// Compare summarizes API-minus-heuristic differences for paired scores and
// prints the comparison block. Empty input prints nothing and returns nil.
func (a *Analyzer) Compare(pairs []Pair, label string) *Comparison {
	if len(pairs) == 0 {
		return nil
	}

	c := &Comparison{Pairs: len(pairs)}
	sum := 0.0
	for _, p := range pairs {
		d := p.API - p.Heuristic
		sum += d
		switch {
		case d > a.diffBand:
			c.Over++
		case d < -a.diffBand:
			c.Under++
		default:
			c.Within++
		}
	}
	c.MeanDiff = sum / float64(len(pairs))

	rule := strings.Repeat("=", 60)
	n := float64(c.Pairs)
	fmt.Fprintf(a.out, "\n%s\n%s\n%s\n", rule, label, rule)
	fmt.Fprintf(a.out, "Paired samples: %d\n", c.Pairs)
	fmt.Fprintf(a.out, "Mean difference (API - Heuristic): %+.1f\n", c.MeanDiff)
	fmt.Fprintf(a.out, "API scores higher by >%g: %d (%.1f%%)\n", a.diffBand, c.Over, 100*float64(c.Over)/n)
	fmt.Fprintf(a.out, "API scores lower by >%g:  %d (%.1f%%)\n", a.diffBand, c.Under, 100*float64(c.Under)/n)
	fmt.Fprintf(a.out, "Within ±%g:               %d (%.1f%%)\n", a.diffBand, c.Within, 100*float64(c.Within)/n)

	return c
}
