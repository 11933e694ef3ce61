// Package swatmf parses the fixed-format text files SWAT-MODFLOW writes at
// the end of a simulation run. See the internal/domain package documentation
// for the file conventions.
//
// The parsers are lenient by policy: a malformed line is counted and
// dropped, not an error. Callers that want hand-edited files to fail loudly
// set Options.Strict, which turns nonzero skip or orphan counts into an
// error after the scan completes.
package swatmf
