package validators

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
)

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{nope"))
	var dest struct {
		Plan string `json:"plan"`
	}
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "Invalid JSON payload." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeJSONMapAllowsEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(""))
	body, err := DecodeJSONMap(r)
	if err != nil {
		t.Fatalf("DecodeJSONMap: %v", err)
	}
	if len(body) != 0 {
		t.Fatalf("expected empty map, got %v", body)
	}
}

func TestMissingFieldsPreservesOrder(t *testing.T) {
	body := map[string]any{"plan": "basic", "style": nil}
	missing := MissingFields(body, "orderId", "plan", "style", "uploadCount")
	want := []string{"orderId", "style", "uploadCount"}
	if len(missing) != len(want) {
		t.Fatalf("expected %v, got %v", want, missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, missing)
		}
	}
}

func TestNumberValueRejectsStrings(t *testing.T) {
	if _, ok := NumberValue("12"); ok {
		t.Fatal("string should not coerce to number")
	}
	f, ok := NumberValue(float64(12))
	if !ok || f != 12 {
		t.Fatalf("expected 12, got %v ok=%v", f, ok)
	}
}

func TestIntValueRejectsFractions(t *testing.T) {
	if _, ok := IntValue(12.5); ok {
		t.Fatal("fractional value should not coerce to int")
	}
	n, ok := IntValue(float64(8))
	if !ok || n != 8 {
		t.Fatalf("expected 8, got %v ok=%v", n, ok)
	}
}

func TestParseIDParam(t *testing.T) {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("jobID", "42")
	r := httptest.NewRequest(http.MethodGet, "/api/jobs/42", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))

	id, err := ParseIDParam(r, "jobID", "Invalid job id.")
	if err != nil {
		t.Fatalf("ParseIDParam: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	routeCtx.URLParams = chi.RouteParams{}
	routeCtx.URLParams.Add("jobID", "abc")
	if _, err := ParseIDParam(r, "jobID", "Invalid job id."); err == nil {
		t.Fatal("expected error for non-numeric id")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Message() != "Invalid job id." {
		t.Fatalf("unexpected error: %v", err)
	}
}
