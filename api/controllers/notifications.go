package controllers

import (
	"net/http"

	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/internal/notifications"
	"github.com/anodeen/HeadShot/pkg/logger"
)

// ListNotifications returns the caller's latest notifications, newest first.
func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		entries, err := svc.List(r.Context(), tenant.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"notifications": entries})
	}
}
