package service

import "fmt"

// JobSummary reports a batch automation run. Failures are isolated per record:
// one bad row lands in Errors and the batch keeps going.
type JobSummary struct {
	Job       string   `json:"job"`
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

func (s *JobSummary) fail(id uint, err error) {
	s.Failed++
	s.Errors = append(s.Errors, fmt.Sprintf("record %d: %v", id, err))
}

func (s *JobSummary) Message() string {
	return fmt.Sprintf("%s: %d processed, %d skipped, %d failed", s.Job, s.Processed, s.Skipped, s.Failed)
}
