package stats

import (
	"math"
	"sort"

	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
)

// MonthlyRechargeMean computes, for each calendar month, the element-wise
// mean of every year's recharge grid for that month. Missing (NaN) cells
// are excluded from the mean; a cell missing in every contributing year
// stays missing. All grids must share one shape — the parser guarantees
// that within a file.
func MonthlyRechargeMean(grids map[domain.GridKey]*domain.Grid) map[int]*domain.Grid {
	byMonth := make(map[int][]*domain.Grid)
	for key, g := range grids {
		byMonth[key.Month] = append(byMonth[key.Month], g)
	}

	means := make(map[int]*domain.Grid, len(byMonth))
	for month, monthGrids := range byMonth {
		means[month] = meanGrid(monthGrids)
	}
	return means
}

// RechargeMonths returns the sorted distinct months present in a monthly
// mean map.
func RechargeMonths(means map[int]*domain.Grid) []int {
	months := make([]int, 0, len(means))
	for m := range means {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// meanGrid reduces same-shaped grids cell by cell, ignoring NaN entries.
func meanGrid(grids []*domain.Grid) *domain.Grid {
	rows, cols := grids[0].Rows(), grids[0].Cols()
	out := domain.NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sum float64
			var n int
			for _, g := range grids {
				v := g.At(r, c)
				if math.IsNaN(v) {
					continue
				}
				sum += v
				n++
			}
			if n > 0 {
				out.Set(r, c, sum/float64(n))
			}
		}
	}
	return out
}
