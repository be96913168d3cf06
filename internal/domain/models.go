package domain

import "time"

// Display sentinels for fields the backend did not send (or sent broken).
const (
	NA          = "N/A"
	InvalidDate = "Invalid Date"
	InvalidTime = "Invalid Time"
)

// Record is one scored data point from the backend. Nothing on the wire is
// guaranteed, so every field is a pointer to allow nil.
type Record struct {
	ID         *int64   `json:"id"`
	Timestamp  *string  `json:"timestamp"`
	Value      *float64 `json:"value"`
	IsAnomaly  *bool    `json:"isAnomaly"`
	Confidence *float64 `json:"confidence"`
}

// Anomalous reads the classification flag, treating nil as normal.
func (r Record) Anomalous() bool {
	return r.IsAnomaly != nil && *r.IsAnomaly
}

// Statistics is the backend's own summary. It is refetched independently of
// the record list and may lag behind it.
type Statistics struct {
	TotalRecords      int64     `json:"totalRecords"`
	AnomaliesCount    int64     `json:"anomaliesCount"`
	DetectionAccuracy float64   `json:"detectionAccuracy"`
	FetchedAt         time.Time `json:"fetchedAt"`
}
