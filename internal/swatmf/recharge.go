package swatmf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
)

// Recharge section markers skipped unconditionally.
const (
	markerGridData   = "Grid data:"
	markerMonthlyAvg = "Monthly Averaged Recharge Values"
)

// RechargeResult is the outcome of scanning a recharge file.
type RechargeResult struct {
	Grids   map[domain.GridKey]*domain.Grid
	Skipped int
}

// rechargeState is the scanner's position within the file: between blocks,
// or accumulating grid rows for the current key.
type rechargeState int

const (
	awaitingBlock rechargeState = iota
	readingRows
)

// ParseRechargeFile reads a recharge file from disk.
func ParseRechargeFile(path string, rows, cols int, opts Options) (RechargeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return RechargeResult{}, fmt.Errorf("open recharge file: %w", err)
	}
	defer f.Close()
	return ParseRecharge(f, rows, cols, opts)
}

// ParseRecharge scans a recharge stream and builds one rows×cols grid per
// month/year block. A block whose accumulated rows do not match the
// configured shape is a *domain.ShapeError — the file and the watershed
// discretization disagree, and silently truncating would corrupt every
// downstream mean. A header block with no data rows at all becomes an
// all-missing grid.
func ParseRecharge(r io.Reader, rows, cols int, opts Options) (RechargeResult, error) {
	res := RechargeResult{Grids: make(map[domain.GridKey]*domain.Grid)}

	var (
		state   rechargeState
		current domain.GridKey
		acc     = make(map[domain.GridKey][][]float64)
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "month:"):
			if month, year, ok := parseMonthHeader(line); ok {
				current = domain.GridKey{Year: year, Month: month}
				acc[current] = nil
				state = readingRows
			} else {
				res.Skipped++
				state = awaitingBlock
			}
		case strings.HasPrefix(line, markerGridData), strings.HasPrefix(line, markerMonthlyAvg):
			// section markers
		case strings.TrimSpace(line) == "":
			// blank
		case state == readingRows:
			parts := strings.Fields(line)
			if len(parts) <= 1 {
				res.Skipped++
				continue
			}
			row, err := parseFloatRow(parts)
			if err != nil {
				res.Skipped++
				continue
			}
			acc[current] = append(acc[current], row)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan recharge file: %w", err)
	}

	for key, blockRows := range acc {
		if len(blockRows) == 0 {
			res.Grids[key] = domain.NewGrid(rows, cols)
			continue
		}
		grid, err := domain.GridFromRows(blockRows, rows, cols)
		if err != nil {
			var se *domain.ShapeError
			if errors.As(err, &se) {
				se.Year, se.Month = key.Year, key.Month
			}
			return res, err
		}
		res.Grids[key] = grid
	}

	if opts.Strict && res.Skipped > 0 {
		return res, fmt.Errorf("strict recharge parse: %d malformed lines", res.Skipped)
	}
	return res, nil
}

func parseFloatRow(parts []string) ([]float64, error) {
	row := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}
