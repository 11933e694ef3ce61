package swatmf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
)

// Options controls parser strictness.
type Options struct {
	// Strict turns nonzero skipped/orphan line counts into an error after
	// the scan completes. The default (false) matches the model's
	// best-effort output conventions.
	Strict bool
}

// FlowResult is the outcome of scanning a GW/SW exchange file. Skipped and
// Orphans let callers decide whether a degraded file is acceptable.
type FlowResult struct {
	Records []domain.FlowRecord
	Skipped int // malformed lines dropped
	Orphans int // data lines seen before any month/year header
}

// blockContext is the month/year state established by the last valid
// "month:" header. Both fields update atomically: a header that fails to
// parse leaves the previous context in place.
type blockContext struct {
	year, month int
	valid       bool
}

// ParseFlowFile reads a GW/SW exchange file from disk.
func ParseFlowFile(path string, opts Options) (FlowResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return FlowResult{}, fmt.Errorf("open flow file: %w", err)
	}
	defer f.Close()
	return ParseFlow(f, opts)
}

// ParseFlow scans a GW/SW exchange stream and emits one FlowRecord per
// valid four-token data line under an established month/year context.
// Data lines before the first valid header are orphans: they are counted
// and dropped rather than emitted with an undefined month and year.
func ParseFlow(r io.Reader, opts Options) (FlowResult, error) {
	var res FlowResult
	var blk blockContext

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "month:"):
			if month, year, ok := parseMonthHeader(line); ok {
				blk = blockContext{year: year, month: month, valid: true}
			} else {
				res.Skipped++
			}
		case strings.Contains(line, "Layer"):
			// column header
		case strings.TrimSpace(line) == "":
			// blank
		default:
			parts := strings.Fields(line)
			if len(parts) != 4 {
				res.Skipped++
				continue
			}
			layer, err1 := strconv.Atoi(parts[0])
			row, err2 := strconv.Atoi(parts[1])
			col, err3 := strconv.Atoi(parts[2])
			rate, err4 := strconv.ParseFloat(parts[3], 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				res.Skipped++
				continue
			}
			if !blk.valid {
				res.Orphans++
				continue
			}
			res.Records = append(res.Records, domain.FlowRecord{
				Year:   blk.year,
				Month:  blk.month,
				Layer:  layer,
				Row:    row,
				Column: col,
				Rate:   rate,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan flow file: %w", err)
	}

	if opts.Strict && (res.Skipped > 0 || res.Orphans > 0) {
		return res, fmt.Errorf("strict flow parse: %d malformed lines, %d orphan data lines", res.Skipped, res.Orphans)
	}
	return res, nil
}

// parseMonthHeader extracts month and year from a "month: M ... Y" line.
// The month token sits at position 1 and the year token at position 3.
func parseMonthHeader(line string) (month, year int, ok bool) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return 0, 0, false
	}
	month, err1 := strconv.Atoi(parts[1])
	year, err2 := strconv.Atoi(parts[3])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return month, year, true
}
