// Command genmock writes synthetic SWAT-MODFLOW output files in the exact
// monthly text format the parsers consume, for local development and the
// dashboard demo. Values are deterministic for a given seed so fixtures are
// reproducible.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -flow-out data/swatmf_out_MF_gwsw_monthly.txt \
//	  -recharge-out data/swatmf_out_MF_recharge_monthly.txt \
//	  -years 1990-1992 -rows 68 -cols 94
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	flowOut := flag.String("flow-out", "", "output path for the GW/SW exchange file")
	rechargeOut := flag.String("recharge-out", "", "output path for the recharge file")
	years := flag.String("years", "1990-1992", "inclusive year range, e.g. 1990-1992")
	rows := flag.Int("rows", 68, "grid rows")
	cols := flag.Int("cols", 94, "grid columns")
	cells := flag.Int("cells", 200, "active flow cells per month")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	if *flowOut == "" || *rechargeOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -flow-out, -recharge-out")
	}

	firstYear, lastYear, err := parseYearRange(*years)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := writeFlowFile(*flowOut, firstYear, lastYear, *rows, *cols, *cells, rng); err != nil {
		return fmt.Errorf("writing flow file: %w", err)
	}
	log.Printf("wrote flow file: %s", *flowOut)

	if err := writeRechargeFile(*rechargeOut, firstYear, lastYear, *rows, *cols, rng); err != nil {
		return fmt.Errorf("writing recharge file: %w", err)
	}
	log.Printf("wrote recharge file: %s", *rechargeOut)

	return nil
}

func parseYearRange(s string) (first, last int, err error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid -years %q, want e.g. 1990-1992", s)
	}
	first, err1 := strconv.Atoi(lo)
	last, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil || first > last {
		return 0, 0, fmt.Errorf("invalid -years %q, want e.g. 1990-1992", s)
	}
	return first, last, nil
}

// writeFlowFile emits month blocks with a "Layer Row Column Rate" header
// line and four-token data lines, mirroring the model's Fortran output.
func writeFlowFile(path string, firstYear, lastYear, rows, cols, cells int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for year := firstYear; year <= lastYear; year++ {
		for month := 1; month <= 12; month++ {
			fmt.Fprintf(w, " month: %d  year: %d\n", month, year)
			fmt.Fprintf(w, "   Layer   Row   Column   Rate(m3/day)\n")
			for i := 0; i < cells; i++ {
				row := 1 + rng.Intn(rows)
				col := 1 + rng.Intn(cols)
				// Exchange rates center near zero; negative means the
				// stream is losing water to the aquifer.
				rate := (rng.Float64() - 0.55) * 400
				fmt.Fprintf(w, "   1   %d   %d   %.4f\n", row, col, rate)
			}
			fmt.Fprintln(w)
		}
	}
	return w.Flush()
}

// writeRechargeFile emits month blocks of full rows×cols grids behind the
// literal section markers the parser skips.
func writeRechargeFile(path string, firstYear, lastYear, rows, cols int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Monthly Averaged Recharge Values")
	for year := firstYear; year <= lastYear; year++ {
		for month := 1; month <= 12; month++ {
			fmt.Fprintf(w, " month: %d  year: %d\n", month, year)
			fmt.Fprintln(w, "Grid data:")
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					if c > 0 {
						fmt.Fprint(w, " ")
					}
					fmt.Fprintf(w, "%.5E", rng.Float64()*2.5)
				}
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w)
		}
	}
	return w.Flush()
}
