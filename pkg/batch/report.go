// Package batch runs the multi-item dumps: rosters over a range of years,
// recruiting classes and all-time swims for lists of swimmers
package batch

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of one batch item
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result records what happened to one batch item
type Result struct {
	Item   string
	Status Status
	Rows   int
	Reason string
}

// Report collects the results of one batch run
type Report struct {
	RunID    string
	Name     string
	Started  time.Time
	Finished time.Time
	Results  []Result
}

func newReport(name string, now func() time.Time) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Name:    name,
		Started: now(),
	}
}

func (r *Report) ok(item string, rows int) {
	r.Results = append(r.Results, Result{Item: item, Status: StatusOK, Rows: rows})
}

func (r *Report) skip(item, reason string) {
	r.Results = append(r.Results, Result{Item: item, Status: StatusSkipped, Reason: reason})
}

func (r *Report) fail(item string, err error) {
	r.Results = append(r.Results, Result{Item: item, Status: StatusFailed, Reason: err.Error()})
}

// Count returns the number of results with the given status
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Rows returns the total number of rows gathered
func (r *Report) Rows() int {
	n := 0
	for _, res := range r.Results {
		n += res.Rows
	}
	return n
}

// Duration is the wall time of the run
func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
