package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidReportPeriod is returned when the requested period is not weekly or monthly.
	ErrInvalidReportPeriod = errors.New("report period must be 'weekly' or 'monthly'")

	// ErrInvalidLookback is returned when a lookback window is not positive.
	ErrInvalidLookback = errors.New("lookback window must be positive")
)

// ReportErrorCode defines error codes for report errors.
type ReportErrorCode string

const (
	ErrCodeInvalidReportPeriod ReportErrorCode = "RPT-010001"
	ErrCodeInvalidLookback     ReportErrorCode = "RPT-010002"
)
