package model

// ThroughputSnapshot is the operator-facing rollup for one shift.  It
// is derived on demand from its inputs and never mutated in place.
//
// Fields:
//  CompletedPours    – total completed pours in the shift.
//  PoursPerHour      – completed rate per hour, UI-assist boost
//                      applied, rounded to the nearest integer.
//  AvgSecondsPerPour – shift seconds divided by completed pours;
//                      zero when no pours completed.
//  PendingCount      – pending-ticket estimate for the shift.
//  StatusCounts      – pour counts keyed by consent status.
type ThroughputSnapshot struct {
	CompletedPours    uint                   `json:"completed_pours"`
	PoursPerHour      int                    `json:"pours_per_hour"`
	AvgSecondsPerPour float64                `json:"avg_seconds_per_pour"`
	PendingCount      uint                   `json:"pending_count"`
	StatusCounts      map[ConsentStatus]uint `json:"status_counts"`
}

// CategoryShare is one tribe's slice of the selection distribution.
type CategoryShare struct {
	Category Category `json:"tribe"`
	Count    uint     `json:"count"`
	Percent  int      `json:"percent"`
}

// CategoryDistribution lists tribe shares ordered by count, ties
// broken by tribe enumeration order.  Tribes with zero selections are
// omitted.
type CategoryDistribution []CategoryShare
