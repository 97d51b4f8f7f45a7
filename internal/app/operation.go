package app

import "time"

// Operation tracks a single CLI invocation. Its ID tags every log line
// written during the run.
type Operation struct {
	ID         string
	Name       string
	Parameters string
	StartedAt  time.Time
	Status     string // "success" or "error"
}

// NewOperation creates an operation that starts at now.
func NewOperation(id, name, parameters string, now time.Time) *Operation {
	return &Operation{
		ID:         id,
		Name:       name,
		Parameters: parameters,
		StartedAt:  now,
		Status:     "success",
	}
}

// Fail marks the operation as failed. A nil err leaves the status unchanged.
func (op *Operation) Fail(err error) {
	if err != nil {
		op.Status = "error"
	}
}

// Elapsed returns the time since the operation started.
func (op *Operation) Elapsed(now time.Time) time.Duration {
	return now.Sub(op.StartedAt)
}
