package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roamly/models"
	"roamly/services/cancel"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeIntakeService struct {
	lastClaim models.CancellationClaim
	result    *models.CancellationResult
	err       *cancel.CancelError
}

func (f *fakeIntakeService) CreateCancellationRequest(ctx context.Context, claim models.CancellationClaim) (*models.CancellationResult, *cancel.CancelError) {
	f.lastClaim = claim
	return f.result, f.err
}

func (f *fakeIntakeService) GetCancellationRequest(ctx context.Context, id string) (*models.CancellationRequest, *cancel.CancelError) {
	return nil, cancel.NewCancelError(cancel.CodeBookingNotFound, "no cancellation request found")
}

func setupRouter(svc cancel.CancellationIntakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCancellationHandler(svc, zap.NewNop())
	r.POST("/api/cancellation-requests", h.CreateCancellationRequest)
	r.GET("/api/cancellation-requests/:id", h.GetCancellationRequest)
	return r
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/cancellation-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCancellationRequest_TokenBodyBecomesTokenClaim(t *testing.T) {
	svc := &fakeIntakeService{result: &models.CancellationResult{RequestID: "req-1", Message: "ok"}}
	r := setupRouter(svc)

	w := postJSON(r, `{"token":"abc","reason":"plans changed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	claim, ok := svc.lastClaim.(models.TokenClaim)
	if !ok {
		t.Fatalf("expected a TokenClaim, got %T", svc.lastClaim)
	}
	if claim.Token != "abc" || claim.Reason != "plans changed" {
		t.Errorf("unexpected claim: %+v", claim)
	}

	var resp struct {
		Success   bool   `json:"success"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.RequestID != "req-1" {
		t.Errorf("unexpected response: %s", w.Body.String())
	}
}

func TestCreateCancellationRequest_ManualBodyBecomesManualClaim(t *testing.T) {
	svc := &fakeIntakeService{result: &models.CancellationResult{RequestID: "req-1", Message: "ok"}}
	r := setupRouter(svc)

	w := postJSON(r, `{"orderNumber":"A0GWPTWH","customerEmail":"test@example.com","customerName":"Mario Rossi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	claim, ok := svc.lastClaim.(models.ManualClaim)
	if !ok {
		t.Fatalf("expected a ManualClaim, got %T", svc.lastClaim)
	}
	if claim.OrderNumber != "A0GWPTWH" || claim.CustomerEmail != "test@example.com" || claim.CustomerName != "Mario Rossi" {
		t.Errorf("unexpected claim: %+v", claim)
	}
}

func TestCreateCancellationRequest_MissingFields(t *testing.T) {
	svc := &fakeIntakeService{}
	r := setupRouter(svc)

	cases := []string{
		`{}`,
		`{"orderNumber":"A0GWPTWH"}`,
		`{"orderNumber":"A0GWPTWH","customerEmail":"test@example.com"}`,
		`{"reason":"no claim at all"}`,
	}
	for _, body := range cases {
		w := postJSON(r, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), cancel.CodeMissingFields) {
			t.Errorf("body %s: expected %s error, got %s", body, cancel.CodeMissingFields, w.Body.String())
		}
	}
	if svc.lastClaim != nil {
		t.Error("the service should not be called without a complete claim")
	}
}

func TestCreateCancellationRequest_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code       string
		wantStatus int
	}{
		{cancel.CodeInvalidToken, http.StatusBadRequest},
		{cancel.CodeTokenMismatch, http.StatusBadRequest},
		{cancel.CodeTokenExpired, http.StatusBadRequest},
		{cancel.CodeAlreadyCancelled, http.StatusBadRequest},
		{cancel.CodeAlreadyApproved, http.StatusBadRequest},
		{cancel.CodeBookingNotFound, http.StatusNotFound},
		{cancel.CodeCreationFailed, http.StatusInternalServerError},
		{cancel.CodeInternalError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			svc := &fakeIntakeService{err: cancel.NewCancelError(tc.code, "boom")}
			r := setupRouter(svc)

			w := postJSON(r, `{"token":"abc"}`)
			if w.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, w.Code)
			}

			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp.Error != tc.code {
				t.Errorf("expected error code %q, got %q", tc.code, resp.Error)
			}
		})
	}
}

func TestCreateCancellationRequest_AlreadyExistsInBody(t *testing.T) {
	svc := &fakeIntakeService{result: &models.CancellationResult{RequestID: "req-1", Message: "ok", AlreadyExists: true}}
	r := setupRouter(svc)

	w := postJSON(r, `{"token":"abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		AlreadyExists bool `json:"alreadyExists"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.AlreadyExists {
		t.Errorf("expected alreadyExists to be true: %s", w.Body.String())
	}
}

func TestGetCancellationRequest_NotFound(t *testing.T) {
	r := setupRouter(&fakeIntakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/cancellation-requests/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
