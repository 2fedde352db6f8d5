package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/api/validators"
	"github.com/anodeen/HeadShot/internal/assets"
	"github.com/anodeen/HeadShot/pkg/logger"
)

// ListJobAssets returns the deliverables for a completed job.
func ListJobAssets(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		jobID, err := validators.ParseIDParam(r, "jobID", "Invalid job id.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.ListForJob(r.Context(), tenant.ID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"assets": views})
	}
}

// ResolveDownload exchanges a download token for its asset descriptor.
func ResolveDownload(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		token := strings.TrimSpace(chi.URLParam(r, "token"))
		view, err := svc.ResolveDownload(r.Context(), tenant.ID, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
