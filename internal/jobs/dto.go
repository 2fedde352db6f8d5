package jobs

import (
	"time"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
)

// CreateJobInput carries the submission payload after transport decoding.
type CreateJobInput struct {
	OrderID     int64
	Plan        enums.Plan
	Style       string
	Background  string
	Outfit      string
	UploadCount int
}

// JobView is the wire shape for a job, including its live-derived status.
type JobView struct {
	ID               int64           `json:"id"`
	OrderID          int64           `json:"orderId"`
	SourceJobID      *int64          `json:"sourceJobId"`
	Plan             enums.Plan      `json:"plan"`
	Style            string          `json:"style"`
	Background       string          `json:"background"`
	Outfit           string          `json:"outfit"`
	UploadCount      int             `json:"uploadCount"`
	Status           enums.JobStatus `json:"status"`
	SecondsRemaining int             `json:"secondsRemaining"`
}

func viewOf(job *models.Job, now time.Time) JobView {
	status := Derive(now, job.CreatedAt)
	return JobView{
		ID:               job.ID,
		OrderID:          job.OrderID,
		SourceJobID:      job.SourceJobID,
		Plan:             job.Plan,
		Style:            job.Style,
		Background:       job.Background,
		Outfit:           job.Outfit,
		UploadCount:      job.UploadCount,
		Status:           status.State,
		SecondsRemaining: status.SecondsRemaining,
	}
}
