package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
)

// fillGrid builds a rows×cols grid with every cell set to v.
func fillGrid(rows, cols int, v float64) *domain.Grid {
	g := domain.NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(r, c, v)
		}
	}
	return g
}

func TestMonthlyRechargeMean(t *testing.T) {
	t.Run("mean across years per month", func(t *testing.T) {
		grids := map[domain.GridKey]*domain.Grid{
			{Year: 2020, Month: 6}: fillGrid(2, 2, 1),
			{Year: 2021, Month: 6}: fillGrid(2, 2, 3),
			{Year: 2020, Month: 7}: fillGrid(2, 2, 10),
		}

		means := MonthlyRechargeMean(grids)
		require.Len(t, means, 2)
		assert.Equal(t, 2.0, means[6].At(0, 0))
		assert.Equal(t, 2.0, means[6].At(1, 1))
		assert.Equal(t, 10.0, means[7].At(0, 1))
	})

	t.Run("missing cells are excluded from the mean", func(t *testing.T) {
		partial := fillGrid(2, 2, 9)
		partial.Set(0, 0, math.NaN())

		grids := map[domain.GridKey]*domain.Grid{
			{Year: 2020, Month: 1}: fillGrid(2, 2, 5),
			{Year: 2021, Month: 1}: partial,
		}

		means := MonthlyRechargeMean(grids)
		// (0,0): only 2020 contributed
		assert.Equal(t, 5.0, means[1].At(0, 0))
		// elsewhere both years contributed
		assert.Equal(t, 7.0, means[1].At(1, 1))
	})

	t.Run("all-missing year does not drag the mean", func(t *testing.T) {
		grids := map[domain.GridKey]*domain.Grid{
			{Year: 2020, Month: 4}: fillGrid(2, 2, 5),
			{Year: 2021, Month: 4}: domain.NewGrid(2, 2),
		}

		means := MonthlyRechargeMean(grids)
		assert.Equal(t, 5.0, means[4].At(0, 0))
		assert.Equal(t, 5.0, means[4].At(1, 1))
	})

	t.Run("cell missing in every year stays missing", func(t *testing.T) {
		grids := map[domain.GridKey]*domain.Grid{
			{Year: 2020, Month: 2}: domain.NewGrid(2, 2),
			{Year: 2021, Month: 2}: domain.NewGrid(2, 2),
		}

		means := MonthlyRechargeMean(grids)
		assert.True(t, math.IsNaN(means[2].At(0, 0)))
	})
}

func TestRechargeMonths(t *testing.T) {
	means := map[int]*domain.Grid{
		11: domain.NewGrid(1, 1),
		2:  domain.NewGrid(1, 1),
		7:  domain.NewGrid(1, 1),
	}
	assert.Equal(t, []int{2, 7, 11}, RechargeMonths(means))
}
