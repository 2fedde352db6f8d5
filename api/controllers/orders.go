package controllers

import (
	"net/http"

	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/api/validators"
	"github.com/anodeen/HeadShot/internal/catalog"
	"github.com/anodeen/HeadShot/internal/entitlements"
	"github.com/anodeen/HeadShot/pkg/enums"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/anodeen/HeadShot/pkg/logger"
)

type createOrderResponse struct {
	entitlements.OrderSummary
	Message string `json:"message"`
}

// CreateOrder purchases a package. The amount is always recomputed
// server-side; a client-supplied price is ignored.
func CreateOrder(svc entitlements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		body, err := validators.DecodeJSONMap(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, _ := validators.StringValue(body["plan"])
		if _, ok := catalog.LookupPackage(enums.Plan(plan)); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Unknown package."))
			return
		}

		teamSize := 1
		if raw, present := body["teamSize"]; present && raw != nil {
			value, ok := validators.NumberValue(raw)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "teamSize must be a number."))
				return
			}
			teamSize = int(value)
		}

		order, err := svc.CreateOrder(r.Context(), tenant.ID, entitlements.CreateOrderInput{
			Plan:     enums.Plan(plan),
			TeamSize: teamSize,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createOrderResponse{
			OrderSummary: *order,
			Message:      "Payment successful. Order created.",
		})
	}
}

// ListOrders returns the caller's latest orders, newest first.
func ListOrders(svc entitlements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		orders, err := svc.ListOrders(r.Context(), tenant.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": orders})
	}
}

// DeleteOrder removes an order together with its jobs and their assets.
func DeleteOrder(svc entitlements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())

		orderID, err := validators.ParseIDParam(r, "orderID", "Invalid order id.")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOrder(r.Context(), tenant.ID, orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"ok": true, "deleted": "order", "id": orderID})
	}
}
