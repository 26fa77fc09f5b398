package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type useCaseStub struct {
	resp *createBooking.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	return s.resp, s.err
}

func doRequest(t *testing.T, stub *useCaseStub, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(stub, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	req.RemoteAddr = "192.0.2.10:54321"
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func validBody() string {
	return `{"day":"friday","timeSlot":"10:00","date":"2026-01-16","name":"Visitor","email":"v@example.com"}`
}

func TestHandler_Created(t *testing.T) {
	stub := &useCaseStub{
		resp: &createBooking.Response{
			ID:        "a1",
			Day:       "friday",
			TimeSlot:  "10:00",
			Date:      "2026-01-16",
			Name:      "Visitor",
			Email:     "v@example.com",
			Status:    "pending",
			CreatedAt: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		},
	}

	rec := doRequest(t, stub, validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandler_InvalidBody(t *testing.T) {
	rec := doRequest(t, &useCaseStub{}, `{"day":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Неизвестные поля отклоняются
	rec = doRequest(t, &useCaseStub{}, `{"day":"friday","unknown":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_BadTimeFormat(t *testing.T) {
	rec := doRequest(t, &useCaseStub{}, `{"day":"friday","timeSlot":"10am","date":"2026-01-16","name":"V","email":"v@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{
			name:       "maintenance",
			err:        &createBooking.MaintenanceError{Message: "back soon"},
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   handlers.KindMaintenanceActive,
		},
		{
			name:       "day unavailable",
			err:        createBooking.ErrDayUnavailable,
			wantStatus: http.StatusBadRequest,
			wantKind:   handlers.KindDayUnavailable,
		},
		{
			name:       "rate limited",
			err:        &createBooking.RateLimitedError{RetryAfter: 90 * time.Second},
			wantStatus: http.StatusTooManyRequests,
			wantKind:   handlers.KindRateLimited,
		},
		{
			name:       "duplicate",
			err:        createBooking.ErrDuplicateBooking,
			wantStatus: http.StatusConflict,
			wantKind:   handlers.KindDuplicateBooking,
		},
		{
			name:       "slot full",
			err:        createBooking.ErrSlotFull,
			wantStatus: http.StatusConflict,
			wantKind:   handlers.KindSlotFull,
		},
		{
			name:       "concurrency exhausted",
			err:        createBooking.ErrConcurrencyExhausted,
			wantStatus: http.StatusConflict,
			wantKind:   handlers.KindConcurrencyExhausted,
		},
		{
			name:       "invalid input",
			err:        createBooking.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantKind:   handlers.KindInvalidRequest,
		},
		{
			name:       "store unavailable",
			err:        createBooking.ErrStoreUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   handlers.KindStoreUnavailable,
		},
		{
			name:       "internal",
			err:        createBooking.ErrInternal,
			wantStatus: http.StatusInternalServerError,
			wantKind:   handlers.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &useCaseStub{err: tt.err}, validBody())
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Error)
		})
	}
}

func TestHandler_MaintenanceMessagePassedThrough(t *testing.T) {
	rec := doRequest(t, &useCaseStub{err: &createBooking.MaintenanceError{Message: "back at noon"}}, validBody())
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "back at noon", resp.Message)
}

func TestHandler_RetryAfterHeader(t *testing.T) {
	rec := doRequest(t, &useCaseStub{err: &createBooking.RateLimitedError{RetryAfter: 90 * time.Second}}, validBody())
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "90", rec.Header().Get("Retry-After"))
}
