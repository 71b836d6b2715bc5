package main

import (
	"io"
	"os"
	"runtime/pprof"
	"strings"

	arg "github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/viniciusth/suffixidx/internal/bench"
	"github.com/viniciusth/suffixidx/internal/fasta"
)

type args struct {
	TextRange   []int    `arg:"--text-range,required" help:"text sizes as START STOP STEP"`
	PatternSize int      `arg:"--pattern-size,required" help:"pattern size"`
	Rounds      int      `arg:"--rounds" help:"number of rounds to run each structure"`
	Seed        int64    `arg:"--seed" help:"seed for random texts and patterns"`
	Alphabet    string   `arg:"--alphabet" help:"alphabet of random texts"`
	Reference   string   `arg:"--reference" help:"FASTA file whose first record replaces random texts"`
	Structures  []string `arg:"--structures" help:"structures to measure: trie, tree, array (default all)"`
	CSV         string   `arg:"--csv" help:"write results to this file instead of stdout"`
	Plot        string   `arg:"--plot" help:"directory to render charts into"`
	CPUProfile  string   `arg:"--cpuprofile" help:"write CPU profile to file"`
	LogLevel    string   `arg:"--log-level" help:"zerolog level"`
}

func (args) Description() string {
	return "Measures build and query cost of the suffix trie, suffix tree and suffix array."
}

func main() {
	a := args{
		Rounds:   10,
		Alphabet: "ACGT",
		LogLevel: "info",
	}
	p := arg.MustParse(&a)
	if len(a.TextRange) != 3 {
		p.Fail("--text-range takes exactly three values: START STOP STEP")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(a.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid log level")
	}
	logger = logger.Level(level)

	if err := run(a, logger); err != nil {
		logger.Fatal().Err(err).Msg("benchmark failed")
	}
}

func run(a args, logger zerolog.Logger) error {
	if a.CPUProfile != "" {
		f, err := os.Create(a.CPUProfile)
		if err != nil {
			return errors.Wrap(err, "could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	sizes, err := bench.SizesFromRange(a.TextRange[0], a.TextRange[1], a.TextRange[2])
	if err != nil {
		return err
	}
	structures, err := bench.Select(a.Structures)
	if err != nil {
		return err
	}

	cfg := bench.Config{
		Sizes:       sizes,
		PatternSize: a.PatternSize,
		Rounds:      a.Rounds,
		Seed:        a.Seed,
		Alphabet:    a.Alphabet,
	}
	if a.Reference != "" {
		rec, err := fasta.First(a.Reference)
		if err != nil {
			return err
		}
		logger.Info().Str("id", rec.ID).Int("length", len(rec.Sequence)).Msg("loaded reference")
		cfg.Reference = rec.Sequence
	}

	results, err := bench.Run(cfg, structures, logger)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if a.CSV != "" {
		f, err := os.Create(a.CSV)
		if err != nil {
			return errors.Wrapf(err, "could not create %s", a.CSV)
		}
		defer f.Close()
		out = f
	}
	if err := bench.WriteCSV(out, results); err != nil {
		return err
	}

	if a.Plot != "" {
		if err := os.MkdirAll(a.Plot, 0o755); err != nil {
			return errors.Wrapf(err, "could not create %s", a.Plot)
		}
		files, err := bench.RenderCharts(results, a.Plot)
		if err != nil {
			return err
		}
		logger.Info().Str("charts", strings.Join(files, ",")).Msg("rendered charts")
	}
	return nil
}
