package bench

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart"
)

// WriteCSV writes one row per result with a header line.
func WriteCSV(w io.Writer, results []Result) error {
	return errors.Wrap(gocsv.Marshal(&results, w), "bench: error writing csv")
}

type metric struct {
	file  string
	title string
	yName string
	value func(Result) float64
}

var metrics = []metric{
	{"build_time.png", "Build Time vs Sequence Length", "Build Time (ns)", func(r Result) float64 { return r.BuildMeanNs }},
	{"query_time.png", "Query Time vs Sequence Length", "Query Time (ns)", func(r Result) float64 { return r.QueryMeanNs }},
	{"memory_usage.png", "Memory Usage vs Sequence Length", "Peak Heap (bytes)", func(r Result) float64 { return r.PeakMeanBytes }},
}

// RenderCharts draws one PNG per metric into dir, with a line per structure.
// Each structure needs results for at least two text sizes.
func RenderCharts(results []Result, dir string) ([]string, error) {
	var order []string
	byStructure := make(map[string][]Result)
	for _, r := range results {
		if _, ok := byStructure[r.Structure]; !ok {
			order = append(order, r.Structure)
		}
		byStructure[r.Structure] = append(byStructure[r.Structure], r)
	}
	if len(order) == 0 {
		return nil, errors.New("bench: no results to chart")
	}

	var files []string
	for _, m := range metrics {
		var series []chart.Series
		for i, name := range order {
			var xs, ys []float64
			for _, r := range byStructure[name] {
				xs = append(xs, float64(r.TextSize))
				ys = append(ys, m.value(r))
			}
			if len(xs) < 2 {
				return nil, errors.Errorf("bench: %s has %d text sizes, charts need at least 2", name, len(xs))
			}
			series = append(series, chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.GetAlternateColor(i),
				},
			})
		}

		graph := chart.Chart{
			Title:      fmt.Sprintf("%s (|P|=%d)", m.title, results[0].PatternSize),
			TitleStyle: chart.StyleShow(),
			XAxis: chart.XAxis{
				Name:      "Sequence Length",
				NameStyle: chart.StyleShow(),
				Style:     chart.StyleShow(),
			},
			YAxis: chart.YAxis{
				Name:      m.yName,
				NameStyle: chart.StyleShow(),
				Style:     chart.StyleShow(),
			},
			Series: series,
		}
		graph.Elements = []chart.Renderable{
			chart.LegendLeft(&graph),
		}

		path := filepath.Join(dir, m.file)
		if err := renderPNG(&graph, path); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func renderPNG(graph *chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "bench: error creating %s", path)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return errors.Wrapf(err, "bench: error rendering %s", path)
	}
	return errors.Wrapf(f.Close(), "bench: error closing %s", path)
}
