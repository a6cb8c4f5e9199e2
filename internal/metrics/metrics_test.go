package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProfileStep(t *testing.T) {
	before := testutil.ToFloat64(profileSteps.WithLabelValues("step1", "rejected"))

	RecordProfileStep("step1", errors.New("bad"))

	assert.Equal(t, before+1, testutil.ToFloat64(profileSteps.WithLabelValues("step1", "rejected")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordSurvey("create")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "volunteer_platform_surveys_events_total")
}
