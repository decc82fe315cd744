package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rckarchitects/crashboard/internal/api/middleware"
	getAvailability "github.com/rckarchitects/crashboard/internal/usecase/get_availability"
)

type fakeUseCase struct {
	gotReq *getAvailability.Request
	resp   *getAvailability.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUTCHandler(uc GetAvailabilityUseCase) *Handler {
	return NewHandler(uc, time.UTC, nopLogger{})
}

func serve(h *Handler, target, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailability.Response{
		From: from,
		To:   from.AddDate(0, 0, 14),
		Days: []getAvailability.Day{
			{Date: from, TotalFreeMinutes: 420, Summary: "9am-1pm, 2pm-5pm"},
		},
	}}
	h := newUTCHandler(uc)

	rec := serve(h, "/api/v1/availability", "42")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(42), uc.gotReq.UserID)
	assert.True(t, uc.gotReq.From.IsZero())

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-10-13", resp.From)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "9am-1pm, 2pm-5pm", resp.Days[0].Summary)
	assert.Equal(t, 420, resp.Days[0].TotalFreeMinutes)
}

func TestHandle_ExplicitWindowPassedThrough(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{}}
	h := newUTCHandler(uc)

	rec := serve(h, "/api/v1/availability?from=2025-10-13&to=2025-10-20", "42")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), uc.gotReq.From)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), uc.gotReq.To)
}

func TestHandle_WindowParsedInConfiguredTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	uc := &fakeUseCase{resp: &getAvailability.Response{}}
	h := NewHandler(uc, loc, nopLogger{})

	rec := serve(h, "/api/v1/availability?from=2025-10-13&to=2025-10-14", "42")

	require.Equal(t, http.StatusOK, rec.Code)
	// Полночь в таймзоне расчёта, не в UTC: UTC-полночь для отрицательного
	// смещения попадает в предыдущий локальный день и сдвигает окно назад
	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, loc), uc.gotReq.From)
	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, loc), uc.gotReq.To)
}

func TestHandle_InvalidDate(t *testing.T) {
	uc := &fakeUseCase{}
	h := newUTCHandler(uc)

	rec := serve(h, "/api/v1/availability?from=13-10-2025&to=2025-10-20", "42")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_InvalidRange(t *testing.T) {
	uc := &fakeUseCase{err: getAvailability.ErrInvalidRange}
	h := newUTCHandler(uc)

	rec := serve(h, "/api/v1/availability?from=2025-10-20&to=2025-10-13", "42")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: getAvailability.ErrInternal}
	h := newUTCHandler(uc)

	rec := serve(h, "/api/v1/availability", "42")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandle_Unauthorized(t *testing.T) {
	h := newUTCHandler(&fakeUseCase{})

	rec := serve(h, "/api/v1/availability", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
