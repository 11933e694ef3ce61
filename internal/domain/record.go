package domain

// FlowRecord is one row of simulated groundwater/surface-water exchange:
// one grid cell, one month of one simulated year. Records are immutable
// once parsed.
type FlowRecord struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"` // 1–12
	Layer  int     `json:"layer"`
	Row    int     `json:"row"`    // 1-based model row
	Column int     `json:"column"` // 1-based model column
	Rate   float64 `json:"rate"`   // m³/day; positive = aquifer discharging
}

// CellKey addresses one model cell within a calendar month, across years.
type CellKey struct {
	Month  int
	Row    int
	Column int
}

// MonthlyStat is the multi-year aggregate of FlowRecord rates sharing a
// CellKey. StdDev is the sample standard deviation and is NaN when only a
// single year contributed — a spread over one observation is undefined,
// not zero.
type MonthlyStat struct {
	Month   int     `json:"month"`
	Row     int     `json:"row"`
	Column  int     `json:"column"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Samples int     `json:"samples"`
}

// GridKey addresses one recharge raster: a specific month of a specific
// simulated year.
type GridKey struct {
	Year  int
	Month int
}
