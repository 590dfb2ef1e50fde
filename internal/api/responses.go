package api

import (
	"github.com/jonesrussell/vidwatch/internal/domain"
)

// VideoListResponse represents a list of videos with metadata.
type VideoListResponse struct {
	Videos []*domain.Video `json:"videos"`
	Total  int             `json:"total"`
}

// ReportListResponse represents the stored daily reports, newest first.
type ReportListResponse struct {
	Reports []*domain.DailyReport `json:"reports"`
	Total   int                   `json:"total"`
}

// StatusResponse describes the scheduler for the ops endpoint.
type StatusResponse struct {
	State     string       `json:"state"`
	LastCycle *CycleStatus `json:"last_cycle,omitempty"`
}

// CycleStatus is the wire form of a completed cycle summary.
type CycleStatus struct {
	ID           string `json:"id"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at"`
	Sources      int    `json:"sources"`
	Fetched      int    `json:"fetched"`
	Stored       int    `json:"stored"`
	Duplicates   int    `json:"duplicates"`
	Irrelevant   int    `json:"irrelevant"`
	SourceErrors int    `json:"source_errors"`
}
