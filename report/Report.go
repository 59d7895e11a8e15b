// Package report renders the results of a finished experiment as an
// HTML page of learning curves.
package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment"
)

// LearningCurve writes an HTML page to path with two charts: the
// return of every learning episode, and the average reward the greedy
// policy earned at each evaluation round. The episodic returns are
// summarized by their mean and standard deviation.
func LearningCurve(path string, returns []float64,
	points []experiment.EvalPoint) error {
	page := components.NewPage()
	page.AddCharts(returnsChart(returns), evalChart(points))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("learningCurve: could not create report file: "+
			"%v", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("learningCurve: could not render report: %v",
			err)
	}
	return nil
}

// returnsChart plots the return of each learning episode.
func returnsChart(returns []float64) *charts.Line {
	mean := stat.Mean(returns, nil)
	stddev := stat.StdDev(returns, nil)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Return per learning episode",
			Subtitle: fmt.Sprintf("mean %.3f, standard deviation %.3f "+
				"over %v episodes", mean, stddev, len(returns)),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	episodes := make([]string, len(returns))
	items := make([]opts.LineData, len(returns))
	for i, ret := range returns {
		episodes[i] = strconv.Itoa(i + 1)
		items[i] = opts.LineData{Value: ret}
	}

	line.SetXAxis(episodes)
	line.AddSeries("return", items)
	return line
}

// evalChart plots the average reward of the greedy policy after each
// multiple of the evaluation interval.
func evalChart(points []experiment.EvalPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Greedy policy average reward",
			Subtitle: "measured on the testing environment",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	observations := make([]string, len(points))
	items := make([]opts.LineData, len(points))
	for i, point := range points {
		observations[i] = strconv.Itoa(point.Observation)
		items[i] = opts.LineData{Value: point.AverageReward}
	}

	line.SetXAxis(observations)
	line.AddSeries("average reward", items)
	return line
}
