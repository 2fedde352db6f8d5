package validators

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const invalidPayloadMessage = "Invalid JSON payload."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeJSONBody decodes the request body into dest and runs struct-tag
// validation. Malformed JSON always surfaces the same client message.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, invalidPayloadMessage)
	}
	if err := validate.Struct(dest); err != nil {
		if _, invalid := err.(*validator.InvalidValidationError); invalid {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, invalidPayloadMessage)
	}
	return nil
}

// DecodeJSONMap decodes the body into a generic map for endpoints that have
// to tell absent fields apart from present-but-mistyped ones.
func DecodeJSONMap(r *http.Request) (map[string]any, error) {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	body := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if err == io.EOF {
			return body, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, invalidPayloadMessage)
	}
	return body, nil
}
