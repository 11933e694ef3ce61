// Command validate performs integrity checks over a pair of SWAT-MODFLOW
// output files before they are handed to the dashboard: parse totals,
// skipped-line and orphan-line counts, month coverage, grid shape, and
// aggregate sanity.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -flow data/swatmf_out_MF_gwsw_monthly.txt \
//	  -recharge data/swatmf_out_MF_recharge_monthly.txt \
//	  -rows 68 -cols 94
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/kokihydro/swatmf-dashboard-service/internal/stats"
	"github.com/kokihydro/swatmf-dashboard-service/internal/swatmf"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	flowPath := flag.String("flow", "", "path to the GW/SW exchange file")
	rechargePath := flag.String("recharge", "", "path to the recharge file")
	rows := flag.Int("rows", 68, "grid rows")
	cols := flag.Int("cols", 94, "grid columns")
	flag.Parse()

	if *flowPath == "" || *rechargePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*flowPath, *rechargePath, *rows, *cols); code != 0 {
		os.Exit(code)
	}
}

func run(flowPath, rechargePath string, rows, cols int) int {
	fmt.Println("=== SWAT-MODFLOW Output Validation ===")
	fmt.Println()

	flowRes, err := swatmf.ParseFlowFile(flowPath, swatmf.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse flow file: %v\n", err)
		return 1
	}
	fmt.Printf("flow: %d records, %d skipped, %d orphans\n", len(flowRes.Records), flowRes.Skipped, flowRes.Orphans)

	rechargeRes, rechargeErr := swatmf.ParseRechargeFile(rechargePath, rows, cols, swatmf.Options{})
	fmt.Printf("recharge: %d grids, %d skipped\n", len(rechargeRes.Grids), rechargeRes.Skipped)

	phases := []*phase{
		validateFlow(flowRes),
		validateRecharge(rechargeRes, rechargeErr),
		validateAggregates(flowRes),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("validation FAILED")
		return 1
	}
	fmt.Println("validation passed")
	return 0
}

func validateFlow(res swatmf.FlowResult) *phase {
	p := &phase{name: "flow file integrity"}

	if len(res.Records) == 0 {
		p.errorf("no records parsed")
		return p
	}
	if res.Orphans > 0 {
		p.errorf("%d data lines before any month header", res.Orphans)
	}
	if res.Skipped > 0 {
		p.errorf("%d malformed lines skipped", res.Skipped)
	}
	for i, rec := range res.Records {
		if rec.Month < 1 || rec.Month > 12 {
			p.errorf("record %d: month %d out of range", i, rec.Month)
			break
		}
		if rec.Row < 1 || rec.Column < 1 {
			p.errorf("record %d: non-positive cell (%d,%d)", i, rec.Row, rec.Column)
			break
		}
	}
	return p
}

func validateRecharge(res swatmf.RechargeResult, err error) *phase {
	p := &phase{name: "recharge file integrity"}

	if err != nil {
		p.errorf("parse: %v", err)
		return p
	}
	if len(res.Grids) == 0 {
		p.errorf("no grids parsed")
		return p
	}
	if res.Skipped > 0 {
		p.errorf("%d malformed lines skipped", res.Skipped)
	}
	for key, g := range res.Grids {
		allMissing := true
		for r := 0; r < g.Rows() && allMissing; r++ {
			for c := 0; c < g.Cols(); c++ {
				if !math.IsNaN(g.At(r, c)) {
					allMissing = false
					break
				}
			}
		}
		if allMissing {
			p.errorf("year %d month %d: grid entirely missing", key.Year, key.Month)
		}
	}
	return p
}

func validateAggregates(res swatmf.FlowResult) *phase {
	p := &phase{name: "aggregate sanity"}

	summary := stats.AggregateFlow(res.Records)
	if len(summary.Stats) == 0 {
		p.errorf("aggregation produced no cells")
		return p
	}
	if math.IsInf(summary.Range.Min, 0) || math.IsInf(summary.Range.Max, 0) {
		p.errorf("display range is unbounded")
	}
	for _, month := range summary.Months {
		if month < 1 || month > 12 {
			p.errorf("aggregated month %d out of range", month)
		}
	}
	return p
}
