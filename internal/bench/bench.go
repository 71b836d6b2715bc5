// Package bench times and memory-profiles index construction and search.
package bench

import (
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/viniciusth/suffixidx"
	"github.com/viniciusth/suffixidx/internal/seqgen"
)

// Index is a built structure that answers pattern queries.
type Index interface {
	Search(pattern string) int
}

// Structure names an index and how to build it.
type Structure struct {
	Name  string
	Build func(text string) Index
}

// Structures returns the trie, tree and suffix array, in that order.
func Structures() []Structure {
	return []Structure{
		{Name: "trie", Build: func(text string) Index { return suffixidx.BuildTrie(text) }},
		{Name: "tree", Build: func(text string) Index { return suffixidx.BuildTree(text) }},
		{Name: "array", Build: func(text string) Index { return suffixidx.BuildSuffixArray(text) }},
	}
}

// Select returns the structures with the given names, all of them if names is empty.
func Select(names []string) ([]Structure, error) {
	all := Structures()
	if len(names) == 0 {
		return all, nil
	}
	var selected []Structure
	for _, name := range names {
		found := false
		for _, s := range all {
			if s.Name == name {
				selected = append(selected, s)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("bench: unknown structure %q", name)
		}
	}
	return selected, nil
}

// SizesFromRange expands start, stop, step into the sizes start, start+step, ... below stop.
func SizesFromRange(start, stop, step int) ([]int, error) {
	if step <= 0 {
		return nil, errors.Errorf("bench: step must be positive, got %d", step)
	}
	if start < 0 {
		return nil, errors.Errorf("bench: start must not be negative, got %d", start)
	}
	var sizes []int
	for n := start; n < stop; n += step {
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.Errorf("bench: empty range [%d, %d)", start, stop)
	}
	return sizes, nil
}

type Config struct {
	Sizes       []int
	PatternSize int
	Rounds      int
	Seed        int64
	Alphabet    string
	// Reference, when set, replaces the random texts: a text of size n is its
	// prefix of length n.
	Reference      string
	SampleInterval time.Duration
}

// Measurement is one build followed by one search.
type Measurement struct {
	Build         time.Duration
	Query         time.Duration
	PeakAlloc     uint64
	RetainedAlloc uint64
	RSS           uint64
	Match         int
}

// Measure builds s over text and searches it for pattern. Heap figures are
// relative to the heap in use before the build started.
func Measure(s Structure, text, pattern string, interval time.Duration) Measurement {
	runtime.GC()
	baseline := currentAlloc()
	mm := newMemMonitor(interval)
	start := time.Now()
	idx := s.Build(text)
	build := time.Since(start)
	peak := mm.Stop()

	start = time.Now()
	match := idx.Search(pattern)
	query := time.Since(start)

	runtime.GC()
	retained := currentAlloc()
	rss := residentMemory()
	runtime.KeepAlive(idx)

	return Measurement{
		Build:         build,
		Query:         query,
		PeakAlloc:     subFloor(peak, baseline),
		RetainedAlloc: subFloor(retained, baseline),
		RSS:           rss,
		Match:         match,
	}
}

func subFloor(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// Result aggregates the rounds of one structure at one text size.
type Result struct {
	Structure      string  `csv:"structure"`
	TextSize       int     `csv:"text_size"`
	PatternSize    int     `csv:"pattern_size"`
	Rounds         int     `csv:"rounds"`
	BuildMeanNs    float64 `csv:"build_mean_ns"`
	BuildMedianNs  float64 `csv:"build_median_ns"`
	QueryMeanNs    float64 `csv:"query_mean_ns"`
	PeakMeanBytes  float64 `csv:"peak_mean_bytes"`
	RetainedBytes  float64 `csv:"retained_mean_bytes"`
	RSSMeanBytes   float64 `csv:"rss_mean_bytes"`
	MatchMeanChars float64 `csv:"match_mean"`
}

type samples struct {
	build, query, peak, retained, rss, match []float64
}

func (s *samples) add(m Measurement) {
	s.build = append(s.build, float64(m.Build.Nanoseconds()))
	s.query = append(s.query, float64(m.Query.Nanoseconds()))
	s.peak = append(s.peak, float64(m.PeakAlloc))
	s.retained = append(s.retained, float64(m.RetainedAlloc))
	s.rss = append(s.rss, float64(m.RSS))
	s.match = append(s.match, float64(m.Match))
}

// Run measures every structure at every size. Each round draws a new text and
// pattern and builds fresh instances of every structure.
func Run(cfg Config, structures []Structure, logger zerolog.Logger) ([]Result, error) {
	if cfg.Rounds <= 0 {
		return nil, errors.Errorf("bench: rounds must be positive, got %d", cfg.Rounds)
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = seqgen.DNA
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 10 * time.Millisecond
	}
	gen := seqgen.New(cfg.Seed, cfg.Alphabet)

	var results []Result
	for _, size := range cfg.Sizes {
		if cfg.Reference != "" && size > len(cfg.Reference) {
			return nil, errors.Errorf("bench: text size %d exceeds reference length %d", size, len(cfg.Reference))
		}
		logger.Info().Int("text_size", size).Msg("processing sequence length")

		perStructure := make([]samples, len(structures))
		for round := 0; round < cfg.Rounds; round++ {
			text := cfg.Reference[:min(size, len(cfg.Reference))]
			if cfg.Reference == "" {
				text = gen.String(size)
			}
			pattern, err := gen.Substring(text, cfg.PatternSize)
			if err != nil {
				return nil, errors.Wrapf(err, "bench: text size %d", size)
			}

			for j, s := range structures {
				m := Measure(s, text, pattern, cfg.SampleInterval)
				logger.Debug().
					Str("structure", s.Name).
					Int("round", round).
					Dur("build", m.Build).
					Dur("query", m.Query).
					Str("peak", humanize.Bytes(m.PeakAlloc)).
					Int("match", m.Match).
					Msg("measured")
				perStructure[j].add(m)
			}
		}

		for j, s := range structures {
			r, err := aggregate(perStructure[j])
			if err != nil {
				return nil, errors.Wrapf(err, "bench: aggregating %s at size %d", s.Name, size)
			}
			r.Structure = s.Name
			r.TextSize = size
			r.PatternSize = cfg.PatternSize
			r.Rounds = cfg.Rounds
			results = append(results, r)
		}
	}
	return results, nil
}

func aggregate(s samples) (Result, error) {
	var r Result
	var err error
	if r.BuildMeanNs, err = stats.Mean(s.build); err != nil {
		return r, err
	}
	if r.BuildMedianNs, err = stats.Median(s.build); err != nil {
		return r, err
	}
	if r.QueryMeanNs, err = stats.Mean(s.query); err != nil {
		return r, err
	}
	if r.PeakMeanBytes, err = stats.Mean(s.peak); err != nil {
		return r, err
	}
	if r.RetainedBytes, err = stats.Mean(s.retained); err != nil {
		return r, err
	}
	if r.RSSMeanBytes, err = stats.Mean(s.rss); err != nil {
		return r, err
	}
	if r.MatchMeanChars, err = stats.Mean(s.match); err != nil {
		return r, err
	}
	return r, nil
}
