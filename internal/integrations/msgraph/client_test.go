package msgraph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rckarchitects/crashboard/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const calendarViewBody = `{
	"value": [
		{
			"subject": "Standup",
			"isAllDay": false,
			"start": {"dateTime": "2025-10-13T10:00:00.0000000", "timeZone": "UTC"},
			"end": {"dateTime": "2025-10-13T10:30:00.0000000", "timeZone": "UTC"},
			"responseStatus": {"response": "accepted"}
		},
		{
			"subject": "Broken",
			"isAllDay": false,
			"start": {"dateTime": "not-a-date", "timeZone": "UTC"},
			"end": {"dateTime": "2025-10-13T12:00:00.0000000", "timeZone": "UTC"},
			"responseStatus": {"response": "accepted"}
		},
		{
			"subject": "Optional sync",
			"isAllDay": false,
			"start": {"dateTime": "2025-10-13T15:00:00.0000000", "timeZone": "UTC"},
			"end": {"dateTime": "2025-10-13T16:00:00.0000000", "timeZone": "UTC"},
			"responseStatus": {"response": "declined"}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 5*time.Second, nopLogger{})
}

func TestGetCalendarView(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("startDateTime"))
		assert.NotEmpty(t, r.URL.Query().Get("endDateTime"))
		fmt.Fprint(w, calendarViewBody)
	})

	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	events, err := client.GetCalendarView(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)

	// Событие с нечитаемой меткой пропускается, остальные возвращаются
	require.Len(t, events, 2)
	assert.Equal(t, "Standup", events[0].Subject)
	assert.Equal(t, time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, domain.ResponseAccepted, events[0].ResponseStatus)
	assert.True(t, events[1].IsDeclined())
}

func TestGetCalendarView_Pagination(t *testing.T) {
	var srv *httptest.Server
	var pages atomic.Int32

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pages.Add(1) == 1 {
			fmt.Fprintf(w, `{
				"value": [{
					"subject": "First",
					"start": {"dateTime": "2025-10-13T09:00:00.0000000", "timeZone": "UTC"},
					"end": {"dateTime": "2025-10-13T10:00:00.0000000", "timeZone": "UTC"},
					"responseStatus": {"response": "organizer"}
				}],
				"@odata.nextLink": "%s/me/calendarView?page=2"
			}`, srv.URL)
			return
		}
		fmt.Fprint(w, `{
			"value": [{
				"subject": "Second",
				"start": {"dateTime": "2025-10-14T09:00:00.0000000", "timeZone": "UTC"},
				"end": {"dateTime": "2025-10-14T10:00:00.0000000", "timeZone": "UTC"},
				"responseStatus": {"response": "accepted"}
			}]
		}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "test-token", 5*time.Second, nopLogger{})

	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	events, err := client.GetCalendarView(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "First", events[0].Subject)
	assert.Equal(t, "Second", events[1].Subject)
}

func TestGetCalendarView_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"value": []}`)
	})

	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	events, err := client.GetCalendarView(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetCalendarView_UnauthorizedNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	_, err := client.GetCalendarView(context.Background(), from, from.AddDate(0, 0, 7))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load(), "auth errors must not be retried")
}

func TestGetCalendarView_StructuredErrorSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"InvalidAuthenticationToken","message":"Access token has expired."}}`))
	})

	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	_, err := client.GetCalendarView(context.Background(), from, from.AddDate(0, 0, 7))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "InvalidAuthenticationToken")
	assert.Contains(t, err.Error(), "Access token has expired.")
}

func TestEvents_GracefulDegradation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	_, err := client.Events(context.Background(), from, from.AddDate(0, 0, 7))
	require.ErrorIs(t, err, ErrServiceDegraded)
}
