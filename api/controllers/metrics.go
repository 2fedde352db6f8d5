package controllers

import (
	"net/http"

	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/internal/metrics"
	"github.com/anodeen/HeadShot/pkg/logger"
)

// DashboardMetrics returns the caller's aggregate counters.
func DashboardMetrics(svc metrics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		snapshot, err := svc.Snapshot(r.Context(), tenant.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
