package controllers

import (
	"net/http"
	"strings"

	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/api/validators"
	"github.com/anodeen/HeadShot/internal/sessions"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/anodeen/HeadShot/pkg/logger"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a tenant account.
func Register(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), sessions.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"user": user})
	}
}

// Login exchanges credentials for a bearer token.
func Login(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), sessions.LoginInput{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// Logout revokes the presented session token. Revoking an already-dead token
// still succeeds.
func Logout(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("Authorization"))
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[7:])
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"ok": true})
	}
}

// Me returns the authenticated tenant's identity.
func Me(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := middleware.TenantFromContext(r.Context())
		if tenant == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid or expired session."))
			return
		}
		responses.WriteSuccess(w, map[string]any{"user": sessions.TenantSummary{
			ID:        tenant.ID,
			Email:     tenant.Email,
			CreatedAt: tenant.CreatedAt,
		}})
	}
}
