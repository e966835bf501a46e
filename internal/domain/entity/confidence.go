package entity

// Confidence is a three-level ordinal expressing certainty of a heuristic
// classification (duplicate or recurring pattern).
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// rank orders confidences for sorting (HIGH > MEDIUM > LOW).
func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Above reports whether c is strictly more certain than other.
func (c Confidence) Above(other Confidence) bool {
	return c.rank() > other.rank()
}
