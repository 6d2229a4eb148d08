package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lamf-backoffice/internal/domain/apperr"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("loan", "L1"), http.StatusNotFound},
		{&apperr.TransitionError{Entity: "application", From: "DRAFT", To: "APPROVED"}, http.StatusConflict},
		{&apperr.StateError{Entity: "loan", ID: "L1", Status: "CLOSED", Op: "repay"}, http.StatusConflict},
		{&apperr.AmountError{Field: "amount", Amount: decimal.Zero, Reason: "must be positive"}, http.StatusUnprocessableEntity},
		{&apperr.RangeError{Amount: decimal.NewFromInt(1), Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(20)}, http.StatusUnprocessableEntity},
		{apperr.Invalid("isin", "is not a valid ISIN"), http.StatusUnprocessableEntity},
		{apperr.Persistence("update loan", errors.New("deadlock")), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", apperr.NotFound("product", "P")), http.StatusNotFound},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError_HidesStoreDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := writeError(c, apperr.Persistence("list loans", errors.New("password authentication failed"))); err != nil {
		t.Fatalf("writeError: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("driver error leaked: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = writeError(c, &apperr.TransitionError{Entity: "application", From: "APPROVED", To: "SUBMITTED"})
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !strings.Contains(body.Error, "APPROVED") || !strings.Contains(body.Error, "SUBMITTED") {
		t.Fatalf("message must name both statuses: %q", body.Error)
	}
}
