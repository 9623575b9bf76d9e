package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/api/middleware"
	createAppointment "github.com/apptbook/appointment-service/internal/usecase/create_appointment"
)

// fakeUseCase возвращает заранее заданный результат или ошибку
type fakeUseCase struct {
	resp *createAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *createAppointment.Request) (*createAppointment.Response, error) {
	return f.resp, f.err
}

// nopLogger глушит логи в тестах
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"customerName": "Анна",
	"customerPhone": "+79990001122",
	"startTime": "2025-11-03T10:00:00Z",
	"serviceIds": [1]
}`

// doRequest прогоняет запрос через auth middleware и handler
func doRequest(uc CreateAppointmentUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if withUser {
		req.Header.Set("X-User-ID", "42")
	}

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:              1,
		CustomerName:    "Анна",
		CustomerPhone:   "+79990001122",
		StartTime:       start,
		EndTime:         start.Add(45 * time.Minute),
		DurationMinutes: 45,
		Status:          "CONFIRMED",
		TotalPrice:      30.0,
	}}

	rec := doRequest(uc, validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-11-03T10:45:00Z", resp.EndTime)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestHandle_ConflictWithList(t *testing.T) {
	uc := &fakeUseCase{err: &createAppointment.ConflictError{
		Conflicts: []createAppointment.ConflictInfo{
			{ID: 7, CustomerName: "Ирина"},
		},
	}}

	rec := doRequest(uc, validBody, true)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(7), resp.Conflicts[0].ID)
}

func TestHandle_AvailabilityReasons(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{name: "closed day", err: createAppointment.ErrClosedDay, reason: "CLOSED_DAY"},
		{name: "outside hours", err: createAppointment.ErrOutsideHours, reason: "OUTSIDE_HOURS"},
		{name: "break time", err: createAppointment.ErrBreakTime, reason: "BREAK_TIME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{err: tt.err}, validBody, true)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp ReasonResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "service not found", err: createAppointment.ErrServiceNotFound, expected: http.StatusNotFound},
		{name: "service not bookable", err: createAppointment.ErrServiceNotBookable, expected: http.StatusBadRequest},
		{name: "invalid input", err: createAppointment.ErrInvalidInput, expected: http.StatusBadRequest},
		{name: "internal error", err: createAppointment.ErrInternal, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{err: tt.err}, validBody, true)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandle_BadRequestBodies(t *testing.T) {
	uc := &fakeUseCase{}

	assert.Equal(t, http.StatusBadRequest, doRequest(uc, `{broken`, true).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(uc, `{"startTime": "03.11.2025 10:00"}`, true).Code)
}

func TestHandle_MissingUserID(t *testing.T) {
	rec := doRequest(&fakeUseCase{}, validBody, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
