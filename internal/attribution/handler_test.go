package attribution

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"funnel_backend/platform/httpkit"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type tokenConfig struct{}

func (tokenConfig) GetVisitorTokenSecret() string     { return "test-secret" }
func (tokenConfig) GetVisitorTokenTTL() time.Duration { return time.Hour }

func newTestRouter() (*gin.Engine, *Module) {
	gin.SetMode(gin.TestMode)
	module := NewModule(tokenConfig{}, validator.New(), logger.New("development"))

	engine := gin.New()
	engine.POST("/session", module.handler.HandleCapture)
	return engine, module
}

func capture(t *testing.T, engine *gin.Engine, body CaptureRequest, token string) (*httptest.ResponseRecorder, CaptureResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(httpkit.VisitorTokenHeader, token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var resp CaptureResponse
	if rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

func TestHandleCapture_NewVisitorGetsTokenAndSnapshot(t *testing.T) {
	engine, _ := newTestRouter()

	rec, resp := capture(t, engine, CaptureRequest{
		EntryURL: "https://example.com/?utm_source=google&gclid=g1",
		Referrer: "https://google.com",
	}, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp.VisitorToken == "" {
		t.Fatalf("expected visitor token in response")
	}
	if !resp.Captured {
		t.Fatalf("expected first capture to store the snapshot")
	}
	if resp.Snapshot.UTM["utm_source"] != "google" || resp.Snapshot.ClickIDs.AdsClickID != "g1" {
		t.Fatalf("unexpected snapshot: %+v", resp.Snapshot)
	}
}

func TestHandleCapture_ReturningVisitorKeepsFirstSnapshot(t *testing.T) {
	engine, _ := newTestRouter()

	first, firstResp := capture(t, engine, CaptureRequest{
		EntryURL: "https://example.com/?utm_source=google",
	}, "")
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first capture, got %d", first.Code)
	}

	second, secondResp := capture(t, engine, CaptureRequest{
		EntryURL: "https://example.com/?utm_source=bing",
	}, firstResp.VisitorToken)

	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat capture, got %d", second.Code)
	}
	if secondResp.Captured {
		t.Fatalf("repeat capture should be a no-op")
	}
	if secondResp.Snapshot.UTM["utm_source"] != "google" {
		t.Fatalf("expected first snapshot kept, got %v", secondResp.Snapshot.UTM)
	}
}

func TestHandleCapture_MissingEntryURLRejected(t *testing.T) {
	engine, _ := newTestRouter()

	rec, _ := capture(t, engine, CaptureRequest{Referrer: "https://google.com"}, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
