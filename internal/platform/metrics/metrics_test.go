package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/campus-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func TestHandleEventCountsByType(t *testing.T) {
	t.Parallel()
	m := newTestMetrics()

	for _, eventType := range []string{
		events.TypeStudentEnrolled,
		events.TypeStudentEnrolled,
		events.TypeGradeAssigned,
	} {
		event, err := events.NewEvent(eventType, events.EnrollmentPayload{})
		require.NoError(t, err)
		require.NoError(t, m.HandleEvent(context.Background(), event))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DirectoryEvents.WithLabelValues(events.TypeStudentEnrolled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DirectoryEvents.WithLabelValues(events.TypeGradeAssigned)))
}

func TestObserveRequest(t *testing.T) {
	t.Parallel()
	m := newTestMetrics()

	m.ObserveRequest(http.MethodGet, "/students/{studentID}", http.StatusOK, time.Now())
	m.ObserveRequest(http.MethodGet, "/students/{studentID}", http.StatusNotFound, time.Now())

	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	t.Parallel()
	m := newTestMetrics()
	event, err := events.NewEvent(events.TypeCourseCreated, events.EntityCreatedPayload{ID: "c1"})
	require.NoError(t, err)
	require.NoError(t, m.HandleEvent(context.Background(), event))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `campus_directory_events_total{type="course.created"} 1`), body)
}
