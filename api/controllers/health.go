package controllers

import (
	"net/http"

	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/pkg/config"
)

func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HeadShot-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]bool{"ok": true})
	}
}
