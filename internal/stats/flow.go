// Package stats derives the dashboard's aggregate structures from parsed
// SWAT-MODFLOW output: multi-year per-cell statistics for the GW/SW
// exchange heatmap and element-wise monthly means for the recharge raster.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
)

// FlowSummary holds the per-cell monthly statistics plus the global display
// range the heatmap colorbar is normalized against.
type FlowSummary struct {
	Stats  []domain.MonthlyStat
	Months []int // distinct months present, ascending
	Range  DisplayRange
}

// DisplayRange is the global color scale across every month, taken over the
// mean and standard-deviation columns combined so the scale holds steady
// when the user flips between statistics.
type DisplayRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Zmid float64 `json:"zmid"` // Min/2, stretches the positive half of the scale
}

// AggregateFlow groups records by (month, row, column) and computes the
// mean and sample standard deviation of the exchange rate within each
// group. A cell with records in only one year keeps a NaN standard
// deviation: a spread over a single observation is undefined, and mapping
// it to zero would paint false certainty on the dashboard. Cells with no
// records are simply absent.
func AggregateFlow(records []domain.FlowRecord) FlowSummary {
	groups := make(map[domain.CellKey][]float64)
	for _, rec := range records {
		key := domain.CellKey{Month: rec.Month, Row: rec.Row, Column: rec.Column}
		groups[key] = append(groups[key], rec.Rate)
	}

	keys := make([]domain.CellKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Column < b.Column
	})

	summary := FlowSummary{
		Stats: make([]domain.MonthlyStat, 0, len(keys)),
		Range: DisplayRange{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	monthSeen := make(map[int]bool)

	for _, key := range keys {
		rates := groups[key]
		mean := stat.Mean(rates, nil)
		sd := math.NaN()
		if len(rates) > 1 {
			sd = stat.StdDev(rates, nil)
		}
		summary.Stats = append(summary.Stats, domain.MonthlyStat{
			Month:   key.Month,
			Row:     key.Row,
			Column:  key.Column,
			Mean:    mean,
			StdDev:  sd,
			Samples: len(rates),
		})
		summary.Range.Min = math.Min(summary.Range.Min, mean)
		summary.Range.Max = math.Max(summary.Range.Max, mean)
		if !math.IsNaN(sd) {
			summary.Range.Min = math.Min(summary.Range.Min, sd)
			summary.Range.Max = math.Max(summary.Range.Max, sd)
		}
		monthSeen[key.Month] = true
	}

	for month := range monthSeen {
		summary.Months = append(summary.Months, month)
	}
	sort.Ints(summary.Months)
	summary.Range.Zmid = summary.Range.Min / 2

	return summary
}

// StatGrid materializes one month's statistic as a rows×cols grid for the
// heatmap: Mean or StdDev placed at (Row-1, Column-1), NaN everywhere no
// cell reported. Records outside the shape are dropped, matching the
// original dashboard's bounds check.
func StatGrid(summary FlowSummary, month, rows, cols int, useStdDev bool) *domain.Grid {
	g := domain.NewGrid(rows, cols)
	for _, s := range summary.Stats {
		if s.Month != month {
			continue
		}
		r, c := s.Row-1, s.Column-1
		if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		if useStdDev {
			g.Set(r, c, s.StdDev)
		} else {
			g.Set(r, c, s.Mean)
		}
	}
	return g
}
