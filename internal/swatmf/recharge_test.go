package swatmf

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
)

// rechargeBlock renders a month header plus a rows×cols grid of the given
// fill value in the model's text format.
func rechargeBlock(year, month, rows, cols int, fill float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, " month: %d  year: %d\n", month, year)
	b.WriteString("Grid data:\n")
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.4f", fill)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestParseRecharge(t *testing.T) {
	t.Run("two blocks", func(t *testing.T) {
		input := "Monthly Averaged Recharge Values\n" +
			rechargeBlock(1990, 1, 3, 4, 1.5) +
			rechargeBlock(1990, 2, 3, 4, 2.5)

		res, err := ParseRecharge(strings.NewReader(input), 3, 4, Options{})
		require.NoError(t, err)
		require.Len(t, res.Grids, 2)

		jan := res.Grids[domain.GridKey{Year: 1990, Month: 1}]
		require.NotNil(t, jan)
		assert.Equal(t, 1.5, jan.At(0, 0))
		assert.Equal(t, 1.5, jan.At(2, 3))

		feb := res.Grids[domain.GridKey{Year: 1990, Month: 2}]
		require.NotNil(t, feb)
		assert.Equal(t, 2.5, feb.At(1, 1))
	})

	t.Run("header with no rows becomes all-missing grid", func(t *testing.T) {
		input := " month: 7  year: 1991\n"

		res, err := ParseRecharge(strings.NewReader(input), 2, 2, Options{})
		require.NoError(t, err)

		g := res.Grids[domain.GridKey{Year: 1991, Month: 7}]
		require.NotNil(t, g)
		for r := 0; r < 2; r++ {
			for c := 0; c < 2; c++ {
				assert.True(t, math.IsNaN(g.At(r, c)), "cell (%d,%d)", r, c)
			}
		}
	})

	t.Run("wrong row count is a shape error", func(t *testing.T) {
		input := strings.Join([]string{
			" month: 4  year: 1990",
			"1.0 2.0 3.0 4.0",
			"5.0 6.0 7.0 8.0",
		}, "\n")

		_, err := ParseRecharge(strings.NewReader(input), 3, 4, Options{})
		require.Error(t, err)

		var se *domain.ShapeError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 1990, se.Year)
		assert.Equal(t, 4, se.Month)
		assert.Equal(t, 2, se.GotRows)
		assert.Equal(t, 3, se.WantRows)
	})

	t.Run("wrong column count is a shape error", func(t *testing.T) {
		input := strings.Join([]string{
			" month: 4  year: 1990",
			"1.0 2.0 3.0 4.0",
			"5.0 6.0 7.0",
			"1.0 2.0 3.0 4.0",
		}, "\n")

		_, err := ParseRecharge(strings.NewReader(input), 3, 4, Options{})
		require.Error(t, err)

		var se *domain.ShapeError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 2, se.BadRow)
		assert.Contains(t, err.Error(), "row 2 has 3 columns, want 4")
	})

	t.Run("non-numeric row is skipped without ending the block", func(t *testing.T) {
		input := strings.Join([]string{
			" month: 4  year: 1990",
			"1.0 2.0",
			"oops not-a-number",
			"3.0 4.0",
		}, "\n")

		res, err := ParseRecharge(strings.NewReader(input), 2, 2, Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Skipped)

		g := res.Grids[domain.GridKey{Year: 1990, Month: 4}]
		require.NotNil(t, g)
		assert.Equal(t, 3.0, g.At(1, 0))
	})

	t.Run("section markers and blanks are ignored", func(t *testing.T) {
		input := strings.Join([]string{
			"Monthly Averaged Recharge Values",
			"",
			" month: 9  year: 1992",
			"Grid data:",
			"",
			"1.0 2.0",
			"3.0 4.0",
		}, "\n")

		res, err := ParseRecharge(strings.NewReader(input), 2, 2, Options{})
		require.NoError(t, err)
		assert.Zero(t, res.Skipped)
		require.Len(t, res.Grids, 1)
	})

	t.Run("numeric lines before any header are ignored", func(t *testing.T) {
		input := strings.Join([]string{
			"1.0 2.0",
			" month: 1  year: 1990",
			"1.0 2.0",
			"3.0 4.0",
		}, "\n")

		res, err := ParseRecharge(strings.NewReader(input), 2, 2, Options{})
		require.NoError(t, err)
		require.Len(t, res.Grids, 1)
		g := res.Grids[domain.GridKey{Year: 1990, Month: 1}]
		assert.Equal(t, 1.0, g.At(0, 0))
	})

	t.Run("strict mode fails on skipped lines", func(t *testing.T) {
		input := strings.Join([]string{
			" month: 4  year: 1990",
			"bad row here",
			"1.0 2.0",
			"3.0 4.0",
		}, "\n")

		_, err := ParseRecharge(strings.NewReader(input), 2, 2, Options{Strict: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strict recharge parse")
	})
}
