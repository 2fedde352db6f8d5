package controllers

import (
	"net/http"

	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/internal/catalog"
	"github.com/anodeen/HeadShot/pkg/config"
)

// ListPackages exposes the purchasable package catalog.
func ListPackages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"packages": catalog.Packages()})
	}
}

// ListBrandingPreviews exposes the fixed branding preset catalog.
func ListBrandingPreviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"previews": catalog.BrandingPresets()})
	}
}

// PrivacyPolicy reports the retention windows enforced by the sweeper.
func PrivacyPolicy(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"inputRetentionDays":  cfg.Retention.InputDays,
			"outputRetentionDays": cfg.Retention.OutputDays,
			"message":             "Users can delete jobs and orders immediately from dashboard.",
		})
	}
}
