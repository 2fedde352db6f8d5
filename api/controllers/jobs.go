package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/api/validators"
	"github.com/anodeen/HeadShot/internal/catalog"
	"github.com/anodeen/HeadShot/internal/jobs"
	"github.com/anodeen/HeadShot/pkg/enums"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/anodeen/HeadShot/pkg/logger"
)

type createJobResponse struct {
	ID               int64           `json:"id"`
	OrderID          int64           `json:"orderId"`
	Status           enums.JobStatus `json:"status"`
	SecondsRemaining int             `json:"secondsRemaining"`
	Message          string          `json:"message"`
}

type rerunResponse struct {
	ID               int64           `json:"id"`
	SourceJobID      int64           `json:"sourceJobId"`
	Status           enums.JobStatus `json:"status"`
	SecondsRemaining int             `json:"secondsRemaining"`
	Message          string          `json:"message"`
}

// CreateJob admits a generation job against a paid order. Field checks run in
// a fixed order so a payload with several problems always reports the same
// one.
func CreateJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		body, err := validators.DecodeJSONMap(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		missing := validators.MissingFields(body, "orderId", "plan", "style", "background", "outfit", "uploadCount")
		if len(missing) > 0 {
			msg := fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", "))
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, msg))
			return
		}

		plan, _ := validators.StringValue(body["plan"])
		if _, ok := catalog.LookupPackage(enums.Plan(plan)); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Unknown package."))
			return
		}

		orderID, orderOK := validators.NumberValue(body["orderId"])
		uploadCount, uploadOK := validators.NumberValue(body["uploadCount"])
		if !orderOK || !uploadOK {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "orderId and uploadCount must be numbers."))
			return
		}

		style, _ := validators.StringValue(body["style"])
		background, _ := validators.StringValue(body["background"])
		outfit, _ := validators.StringValue(body["outfit"])

		job, err := svc.Create(r.Context(), tenant.ID, jobs.CreateJobInput{
			OrderID:     int64(orderID),
			Plan:        enums.Plan(plan),
			Style:       style,
			Background:  background,
			Outfit:      outfit,
			UploadCount: int(uploadCount),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createJobResponse{
			ID:               job.ID,
			OrderID:          job.OrderID,
			Status:           job.Status,
			SecondsRemaining: job.SecondsRemaining,
			Message:          "Generation job accepted.",
		})
	}
}

// ListJobs returns the caller's latest jobs with live-derived status.
func ListJobs(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		views, err := svc.List(r.Context(), tenant.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"jobs": views})
	}
}

// GetJob returns a single job with live-derived status.
func GetJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		jobID, err := validators.ParseIDParam(r, "jobID", "Invalid job id.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), tenant.ID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteJob removes a job together with its assets.
func DeleteJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		jobID, err := validators.ParseIDParam(r, "jobID", "Invalid job id.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenant.ID, jobID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"ok": true, "deleted": "job", "id": jobID})
	}
}

// RerunJob clones a prior job's selectors as a new job, spending one rerun
// credit from the parent order.
func RerunJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		body, err := validators.DecodeJSONMap(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, ok := validators.NumberValue(body["jobId"])
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "jobId is required."))
			return
		}

		view, err := svc.Rerun(r.Context(), tenant.ID, int64(jobID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var sourceID int64
		if view.SourceJobID != nil {
			sourceID = *view.SourceJobID
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, rerunResponse{
			ID:               view.ID,
			SourceJobID:      sourceID,
			Status:           view.Status,
			SecondsRemaining: view.SecondsRemaining,
			Message:          "Rerun started.",
		})
	}
}
