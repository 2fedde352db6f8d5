package jobs

import (
	"time"

	"github.com/anodeen/HeadShot/pkg/enums"
)

const (
	// Jobs sit in the queue for the first 8 seconds, then process until
	// second 25, after which they are complete. Time is the only input;
	// nothing is persisted and nothing transitions a job backwards.
	queuedWindowSeconds   = 8
	completedAfterSeconds = 25
)

// Status is the derived lifecycle position of a job at one instant.
type Status struct {
	State            enums.JobStatus
	SecondsRemaining int
}

// Derive computes a job's status from elapsed wall-clock time. Callers must
// sample "now" once per request and reuse it so a response never shows a job
// in two states.
func Derive(now, createdAt time.Time) Status {
	elapsed := int(now.Sub(createdAt) / time.Second)
	if elapsed < queuedWindowSeconds {
		remaining := queuedWindowSeconds - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return Status{State: enums.JobStatusQueued, SecondsRemaining: remaining}
	}
	if elapsed < completedAfterSeconds {
		remaining := completedAfterSeconds - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return Status{State: enums.JobStatusProcessing, SecondsRemaining: remaining}
	}
	return Status{State: enums.JobStatusCompleted, SecondsRemaining: 0}
}
