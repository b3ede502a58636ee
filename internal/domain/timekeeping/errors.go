package timekeeping

import "errors"

// Timekeeping domain errors
var (
	// Classification errors
	ErrMissingShiftDefinition = errors.New("no shift definition resolvable for the date")
	ErrOverlappingRawLogs     = errors.New("raw attendance logs overlap in time")
	ErrNightBandMisconfigured = errors.New("night differential band boundaries are inverted")

	// Lookup errors
	ErrSummaryNotFound       = errors.New("day summary not found")
	ErrCutoffSummaryNotFound = errors.New("cutoff summary not found")

	// Request errors
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrInvalidDateRange   = errors.New("date range end must not precede its start")
)
