package enums

// JobStatus is the derived processing state of a generation job. It is never
// persisted; it is recomputed from the job's age on every read.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
)

// String implements fmt.Stringer.
func (j JobStatus) String() string {
	return string(j)
}
