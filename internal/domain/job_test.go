package domain

import "testing"

func TestJobStatusTerminal(t *testing.T) {
	testCases := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobStatusPending, false},
		{JobStatusRunning, false},
		{JobStatusCompleted, true},
		{JobStatusFailed, true},
		{JobStatusCancelled, true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			if got := tc.status.Terminal(); got != tc.terminal {
				t.Errorf("Terminal() for %q: got %v, want %v", tc.status, got, tc.terminal)
			}
		})
	}
}

func TestScrapeJobCloneIsIndependent(t *testing.T) {
	job := &ScrapeJob{
		ID:            "abc",
		SearchTerm:    "cats",
		Status:        JobStatusRunning,
		ImagesScraped: 2,
		TotalImages:   5,
	}

	clone := job.Clone()
	clone.Status = JobStatusCompleted
	clone.ImagesScraped = 5

	if job.Status != JobStatusRunning {
		t.Errorf("mutating clone changed original status: %q", job.Status)
	}
	if job.ImagesScraped != 2 {
		t.Errorf("mutating clone changed original progress: %d", job.ImagesScraped)
	}
}
