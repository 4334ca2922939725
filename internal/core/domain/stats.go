package domain

import "time"

// ReindexStats summarizes one full corpus ingestion pass.
type ReindexStats struct {
	Files      int           `json:"files"`
	Units      int           `json:"units"`
	Chunks     int           `json:"chunks"`
	ErrorUnits int           `json:"error_units"`
	Duration   time.Duration `json:"duration"`
}
