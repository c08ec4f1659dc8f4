package domain

import "time"

// JobStatus represents the lifecycle state of a scrape job.
// Values include JobStatusPending, JobStatusRunning, JobStatusCompleted,
// JobStatusFailed, and JobStatusCancelled.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
// Parameters: none.
// Returns:
//   - bool: true for completed, failed, and cancelled.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// ScrapeJob represents an image scraping job and its progress metadata.
// Records live only in process memory; they are never persisted.
type ScrapeJob struct {
	ID            string    `json:"jobId"`
	SearchTerm    string    `json:"searchTerm"`
	Status        JobStatus `json:"status"`
	ImagesScraped int       `json:"imagesScraped"`
	TotalImages   int       `json:"totalImages"`
	FolderPath    string    `json:"folderPath"`
	ErrorLog      string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Clone returns a copy of the record safe to hand outside the job table.
func (j *ScrapeJob) Clone() *ScrapeJob {
	c := *j
	return &c
}
