package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// stubSessionService scripts the coordinator for handler tests
type stubSessionService struct {
	submitSess *models.SessionContext
	submitErr  error
	spinResult *models.SpinResult
	spinErr    error
	claimErr   error
	history    []models.SpinRecord
}

func (s *stubSessionService) Submit(ctx context.Context, name, rawPhone string) (*models.SessionContext, error) {
	return s.submitSess, s.submitErr
}

func (s *stubSessionService) Spin(ctx context.Context, rawPhone string) (*models.SpinResult, error) {
	return s.spinResult, s.spinErr
}

func (s *stubSessionService) Claim(ctx context.Context, rawPhone string) error { return s.claimErr }

func (s *stubSessionService) History(ctx context.Context, rawPhone string) ([]models.SpinRecord, error) {
	return s.history, nil
}

func (s *stubSessionService) CleanupExpired() {}

func newTestRouter(svc services.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSessionHandler(svc)
	router := gin.New()
	router.POST("/sessions", h.Submit)
	router.POST("/sessions/spin", h.Spin)
	router.POST("/sessions/claim", h.Claim)
	router.GET("/history/:phone", h.History)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionHandler_Submit(t *testing.T) {
	t.Run("allowed check returns the session", func(t *testing.T) {
		svc := &stubSessionService{
			submitSess: &models.SessionContext{Phone: "+994501234567", Name: "Aysel", ServerSpinNumber: 1, FirstSpin: true, State: models.SessionReady},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions", `{"name":"Aysel","phone":"0501234567"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Allowed bool                   `json:"allowed"`
			Session models.SessionContext `json:"session"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if !resp.Allowed || resp.Session.Phone != "+994501234567" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("missing fields are rejected by binding", func(t *testing.T) {
		w := doJSON(t, newTestRouter(&stubSessionService{}), http.MethodPost, "/sessions", `{"name":"Aysel"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation errors map to 400 with the localized message", func(t *testing.T) {
		svc := &stubSessionService{submitErr: &services.ValidationError{Message: services.MsgPhoneInvalid}}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions", `{"name":"Aysel","phone":"bad"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), services.MsgPhoneInvalid) {
			t.Errorf("missing localized message: %s", w.Body.String())
		}
	})

	t.Run("resubmit during a spin maps to 409", func(t *testing.T) {
		svc := &stubSessionService{submitErr: services.ErrSpinInFlight}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions", `{"name":"Aysel","phone":"0501234567"}`)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("denial maps to 403 with the server message verbatim", func(t *testing.T) {
		svc := &stubSessionService{submitErr: &services.EligibilityError{Message: "Limit bitdi"}}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions", `{"name":"Aysel","phone":"0501234567"}`)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Limit bitdi") {
			t.Errorf("server message not passed through: %s", w.Body.String())
		}
	})
}

func TestSessionHandler_Spin(t *testing.T) {
	t.Run("disabled wheel refuses the trigger", func(t *testing.T) {
		svc := &stubSessionService{spinErr: services.ErrWheelDisabled}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions/spin", `{"phone":"0501234567"}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("missing session asks for the form first", func(t *testing.T) {
		svc := &stubSessionService{spinErr: services.ErrNoSession}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions/spin", `{"phone":"0501234567"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), services.MsgNoSession) {
			t.Errorf("missing localized message: %s", w.Body.String())
		}
	})

	t.Run("log failure still delivers the outcome", func(t *testing.T) {
		svc := &stubSessionService{
			spinResult: &models.SpinResult{Gift: models.Gift{ID: "F1", Name: "Qazanmadın", Tier: models.TierF}, Ordinal: 1, SpinNumber: 1},
			spinErr:    errTransport{},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions/spin", `{"phone":"0501234567"}`)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"F1"`) {
			t.Errorf("outcome missing from error response: %s", w.Body.String())
		}
	})

	t.Run("successful spin returns the result", func(t *testing.T) {
		svc := &stubSessionService{
			spinResult: &models.SpinResult{Gift: models.Gift{ID: "B2", Name: "54 AZN", Tier: models.TierB}, Ordinal: 4, SpinNumber: 2, AllowedNextSpin: true, Logged: true},
		}
		w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions/spin", `{"phone":"0501234567"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var result models.SpinResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if result.Gift.ID != "B2" || !result.AllowedNextSpin || !result.Logged {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}

func TestSessionHandler_History(t *testing.T) {
	svc := &stubSessionService{
		history: []models.SpinRecord{{SpinNumber: 2, GiftID: "B2"}, {SpinNumber: 1, GiftID: "F1"}},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/history/0501234567", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Spins []models.SpinRecord `json:"spins"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Spins) != 2 || resp.Spins[0].SpinNumber != 2 {
		t.Errorf("unexpected history: %+v", resp.Spins)
	}
}

// errTransport stands in for a promo log transport failure
type errTransport struct{}

func (errTransport) Error() string { return "promo log: connection reset" }
