package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/anodeen/HeadShot/internal/assets"
	"github.com/anodeen/HeadShot/internal/entitlements"
	"github.com/anodeen/HeadShot/internal/jobs"
	metricsvc "github.com/anodeen/HeadShot/internal/metrics"
	"github.com/anodeen/HeadShot/internal/notifications"
	"github.com/anodeen/HeadShot/internal/sessions"
	"github.com/anodeen/HeadShot/internal/support"
	"github.com/anodeen/HeadShot/internal/tenants"
	"github.com/anodeen/HeadShot/pkg/config"
	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	runner := gormTxRunner{db: db}
	cfg := &config.Config{}
	logg := logger.New(logger.Options{ServiceName: "router-test"})

	notificationRepo := notifications.NewRepository(db)
	notificationSvc, err := notifications.NewService(notificationRepo)
	require.NoError(t, err)

	sessionSvc, err := sessions.NewService(sessions.ServiceParams{
		TenantRepo:  tenants.NewRepository(db),
		SessionRepo: sessions.NewRepository(db),
		TxRunner:    runner,
	})
	require.NoError(t, err)

	orderRepo := entitlements.NewRepository(db)
	orderSvc, err := entitlements.NewService(entitlements.ServiceParams{
		Repo:          orderRepo,
		TxRunner:      runner,
		Notifications: notificationSvc,
	})
	require.NoError(t, err)

	jobRepo := jobs.NewRepository(db)
	assetSvc, err := assets.NewService(assets.ServiceParams{
		Repo: assets.NewRepository(db),
		Jobs: jobRepo,
	})
	require.NoError(t, err)

	jobSvc, err := jobs.NewService(jobs.ServiceParams{
		Repo:          jobRepo,
		Orders:        orderRepo,
		Assets:        assetSvc,
		Notifications: notificationSvc,
		TxRunner:      runner,
	})
	require.NoError(t, err)

	supportRepo := support.NewRepository(db)
	supportSvc, err := support.NewService(supportRepo)
	require.NoError(t, err)

	metricsSvc, err := metricsvc.NewService(metricsvc.ServiceParams{
		Orders:  orderRepo,
		Jobs:    jobRepo,
		Support: supportRepo,
	})
	require.NoError(t, err)

	return NewRouter(cfg, logg, nil, nil, Services{
		Sessions:      sessionSvc,
		Orders:        orderSvc,
		Jobs:          jobSvc,
		Assets:        assetSvc,
		Support:       supportSvc,
		Notifications: notificationSvc,
		Metrics:       metricsSvc,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	decoded := map[string]any{}
	if resp.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, handler http.Handler, email string) string {
	t.Helper()
	creds := map[string]any{"email": email, "password": "hunter22"}
	resp, _ := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp, body := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, resp.Code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPublicEndpoints(t *testing.T) {
	handler := setupRouter(t)

	resp, body := doJSON(t, handler, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, true, body["ok"])

	resp, body = doJSON(t, handler, http.MethodGet, "/api/packages", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	packages, ok := body["packages"].(map[string]any)
	require.True(t, ok)
	require.Len(t, packages, 3)

	resp, body = doJSON(t, handler, http.MethodGet, "/api/branding-previews", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, body["previews"], 3)

	resp, body = doJSON(t, handler, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "Route not found.", body["error"])
}

func TestTenantScopedRoutesRequireAuth(t *testing.T) {
	handler := setupRouter(t)

	for _, path := range []string{"/api/orders", "/api/jobs", "/api/notifications", "/api/metrics"} {
		resp, body := doJSON(t, handler, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code, path)
		require.Equal(t, "Missing bearer token.", body["error"], path)
	}
}

func TestOrderJobLifecycle(t *testing.T) {
	handler := setupRouter(t)
	token := registerAndLogin(t, handler, "owner@example.com")

	resp, body := doJSON(t, handler, http.MethodPost, "/api/orders", token, map[string]any{
		"plan":     "professional",
		"teamSize": 10,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, float64(44100), body["amountCents"])
	require.Equal(t, float64(1), body["rerunCredits"])
	require.Equal(t, "Payment successful. Order created.", body["message"])
	orderID := int64(body["id"].(float64))

	resp, body = doJSON(t, handler, http.MethodPost, "/api/jobs", token, map[string]any{
		"orderId":     orderID,
		"plan":        "professional",
		"style":       "studio",
		"background":  "white",
		"outfit":      "suit",
		"uploadCount": 9,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, "queued", body["status"])
	require.Equal(t, float64(8), body["secondsRemaining"])
	jobID := int64(body["id"].(float64))

	// Assets remain gated until the processing window elapses.
	resp, body = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/jobs/%d/assets", jobID), token, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "Assets are available after completion.", body["error"])

	resp, body = doJSON(t, handler, http.MethodPost, "/api/rerun", token, map[string]any{"jobId": jobID})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, float64(jobID), body["sourceJobId"])
	require.Equal(t, "Rerun started.", body["message"])

	resp, body = doJSON(t, handler, http.MethodPost, "/api/rerun", token, map[string]any{"jobId": jobID})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "No rerun credits available.", body["error"])

	resp, body = doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, true, body["ok"])
	require.Equal(t, "order", body["deleted"])

	resp, body = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/jobs/%d", jobID), token, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "Job not found.", body["error"])
}

func TestJobValidationMessages(t *testing.T) {
	handler := setupRouter(t)
	token := registerAndLogin(t, handler, "validator@example.com")

	resp, body := doJSON(t, handler, http.MethodPost, "/api/jobs", token, map[string]any{"plan": "basic"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "Missing required fields: orderId, style, background, outfit, uploadCount", body["error"])

	resp, body = doJSON(t, handler, http.MethodPost, "/api/jobs", token, map[string]any{
		"orderId":     "1",
		"plan":        "basic",
		"style":       "studio",
		"background":  "white",
		"outfit":      "suit",
		"uploadCount": 9,
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "orderId and uploadCount must be numbers.", body["error"])
}

func TestCrossTenantReadsAsNotFound(t *testing.T) {
	handler := setupRouter(t)
	ownerToken := registerAndLogin(t, handler, "first@example.com")
	otherToken := registerAndLogin(t, handler, "second@example.com")

	resp, body := doJSON(t, handler, http.MethodPost, "/api/orders", ownerToken, map[string]any{"plan": "basic"})
	require.Equal(t, http.StatusCreated, resp.Code)
	orderID := int64(body["id"].(float64))

	resp, body = doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), otherToken, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "Order not found.", body["error"])
}

func TestSupportAndMetrics(t *testing.T) {
	handler := setupRouter(t)
	token := registerAndLogin(t, handler, "support@example.com")

	resp, body := doJSON(t, handler, http.MethodPost, "/api/support", token, map[string]any{
		"email":   "support@example.com",
		"message": "The preview looks off.",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, "Support request received. We'll follow up by email.", body["message"])

	resp, body = doJSON(t, handler, http.MethodGet, "/api/metrics", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, float64(1), body["supportTickets"])
}
