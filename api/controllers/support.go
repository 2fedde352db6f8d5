package controllers

import (
	"net/http"

	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/api/validators"
	"github.com/anodeen/HeadShot/internal/support"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/anodeen/HeadShot/pkg/logger"
)

type supportResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// CreateSupportTicket stores a contact request. The optional order reference
// is recorded as given, not checked against the caller's orders.
func CreateSupportTicket(svc support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		body, err := validators.DecodeJSONMap(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawEmail, _ := validators.StringValue(body["email"])
		rawMessage, _ := validators.StringValue(body["message"])
		email := validators.SanitizeString(rawEmail, 320)
		message := validators.SanitizeString(rawMessage, 4000)

		var orderID *int64
		if raw, present := body["orderId"]; present && raw != nil && raw != "" {
			value, ok := validators.NumberValue(raw)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "orderId must be a number if provided."))
				return
			}
			id := int64(value)
			orderID = &id
		}

		receipt, err := svc.CreateTicket(r.Context(), tenant.ID, support.CreateTicketInput{
			Email:   email,
			Message: message,
			OrderID: orderID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, supportResponse{
			ID:      receipt.ID,
			Message: "Support request received. We'll follow up by email.",
		})
	}
}
