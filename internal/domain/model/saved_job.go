package model

import "time"

// SavedJob marks one job identifier as saved by the user.
// At most one record per JobID exists in the persisted set.
type SavedJob struct {
	JobID   string    `json:"jobId"`
	SavedAt time.Time `json:"savedAt"`
}

// SavedSet is the persisted collection of saved jobs, keyed by JobID.
type SavedSet []SavedJob

// Contains reports membership of jobID in the set.
func (s SavedSet) Contains(jobID string) bool {
	for _, r := range s {
		if r.JobID == jobID {
			return true
		}
	}
	return false
}

// Without returns a copy of the set with jobID removed.
func (s SavedSet) Without(jobID string) SavedSet {
	out := make(SavedSet, 0, len(s))
	for _, r := range s {
		if r.JobID != jobID {
			out = append(out, r)
		}
	}
	return out
}
