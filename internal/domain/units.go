package domain

// daysInMonth is the model's non-leap-year calendar. SWAT-MODFLOW monthly
// output never emits a February 29.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the calendar days of month (1–12) in the model's
// non-leap-year calendar. Panics outside that range; callers validate.
func DaysInMonth(month int) int {
	if month < 1 || month > 12 {
		panic("domain: month out of range 1-12")
	}
	return daysInMonth[month]
}

// RechargeDepthMM converts a per-day volumetric recharge rate (m³/day) into
// the equivalent depth over one calendar month (mm/month) for a cell of
// areaM2 square meters:
//
//	m³/day × days/month ÷ m² → m/month, × 1000 → mm/month
//
// Pure and total for month in 1–12; NaN input passes through as NaN.
func RechargeDepthMM(ratePerDay float64, month int, areaM2 float64) float64 {
	return ratePerDay * float64(DaysInMonth(month)) / areaM2 * 1000
}
