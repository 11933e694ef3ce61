// Package domain models SWAT-MODFLOW simulation output for the watershed
// dashboard.
//
// # Data Source
//
// The coupled SWAT-MODFLOW model writes plain-text monthly summaries at the
// end of each simulation run. Two of those files feed this service:
//
//	swatmf_out_MF_gwsw_monthly       groundwater/surface-water exchange rates
//	swatmf_out_MF_recharge_monthly   groundwater recharge grids
//
// Both are fixed-format ASCII written by Fortran WRITE statements and
// occasionally touched up by hand, so the parsers in internal/swatmf are
// deliberately lenient: malformed lines are counted and dropped, never fatal
// on their own.
//
// # GW/SW Exchange File Conventions
//
// Block header lines carry the literal marker "month:":
//
//	month: 3   year: 1990
//	(month token at position 1, year token at position 3)
//
// A header line containing "Layer" labels the columns and is skipped. Data
// lines are exactly four whitespace-separated tokens:
//
//	<layer> <row> <column> <rate>
//
// layer, row, and column are 1-based integers; rate is m³/day exchanged at
// that cell. Positive rates are groundwater discharging to the stream,
// negative rates are stream water recharging the aquifer.
//
// # Recharge File Conventions
//
// The same "month:" headers introduce each block. The literal section
// markers "Grid data:" and "Monthly Averaged Recharge Values" precede the
// numbers and are skipped. Grid rows follow as whitespace-separated floats,
// one model row per line, until the block's fixed shape (rows × columns,
// 68×94 for this watershed) is complete or the next "month:" appears.
//
// # Missing Values
//
// A cell with no data is NaN, never zero. Zero is a real simulated value
// (no net exchange / no recharge); NaN means the model never reported the
// cell. Aggregations exclude NaN contributions, and the JSON encoding maps
// NaN to null because dashboards cannot parse NaN literals.
//
// # Units
//
// Exchange rates and recharge values are volumetric (m³/day per cell).
// [RechargeDepthMM] converts recharge to depth (mm/month) using the calendar
// days of the month and the fixed cell footprint; the model calendar has no
// leap years.
package domain
