package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
)

// ParseIDParam reads a positive integer route parameter, surfacing the
// endpoint's own message when the value is not a usable id.
func ParseIDParam(r *http.Request, name, message string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, message)
	}
	return id, nil
}
