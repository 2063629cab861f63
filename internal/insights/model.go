package insights

// SegmentRollup accumulates one named segment inside a calendar bucket.
type SegmentRollup struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Planned float64 `json:"planned"`
}

// BucketRollup aggregates the sessions that fell into one calendar week or
// month: a session count plus per-segment totals keyed by segment name.
type BucketRollup struct {
	Count    int                      `json:"count"`
	Segments map[string]SegmentRollup `json:"segments"`
}

// Summary holds the overall usage statistics of a report.
type Summary struct {
	TotalSessions    int     `json:"totalSessions"`
	AverageDuration  int     `json:"averageDuration"`
	MostUsedType     string  `json:"mostUsedType"`
	AverageSentiment float64 `json:"averageSentiment"`
}

// Report is the dashboard-ready insights payload for one user. It is built
// fresh on every request and never persisted. Recommendations is reserved
// for a future version and always serializes as null.
type Report struct {
	Summary         Summary                 `json:"summary"`
	Weekly          map[string]BucketRollup `json:"weekly"`
	Monthly         map[string]BucketRollup `json:"monthly"`
	Keywords        []string                `json:"keywords"`
	Recommendations []string                `json:"recommendations"`
}
