package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"trivia-service/internal/domain"
)

func TestObserveScore(t *testing.T) {
	m := New()
	m.ObserveScore(domain.AggregatedScore{
		Overall:  0.5,
		Sections: []domain.SectionScore{{Code: "a", Score: 1}, {Code: "b", Score: 0}},
	}, 1)
	m.ObserveScore(domain.AggregatedScore{Overall: 0, Sections: []domain.SectionScore{}}, 0)

	if got := testutil.ToFloat64(m.aggregations); got != 2 {
		t.Fatalf("expected 2 aggregations, got %v", got)
	}
	if got := testutil.ToFloat64(m.sections); got != 2 {
		t.Fatalf("expected 2 sections, got %v", got)
	}
	if got := testutil.ToFloat64(m.sectionsClamped); got != 1 {
		t.Fatalf("expected 1 clamped section, got %v", got)
	}
	if got := testutil.CollectAndCount(m.overall); got != 1 {
		t.Fatalf("expected overall histogram to be collected, got %d", got)
	}
}

func TestInstancesDoNotShareState(t *testing.T) {
	a, b := New(), New()
	a.ObserveGradeError("bank_not_found")
	if got := testutil.ToFloat64(b.gradeErrors.WithLabelValues("bank_not_found")); got != 0 {
		t.Fatalf("expected independent registries, got %v", got)
	}
	if got := testutil.ToFloat64(a.gradeErrors.WithLabelValues("bank_not_found")); got != 1 {
		t.Fatalf("expected 1 grading error, got %v", got)
	}
}

func TestRegistryGathersOnlyOwnSeries(t *testing.T) {
	a, b := New(), New()
	a.ObserveGradeError("bank_not_found")
	a.ObserveGradeError("entry_not_found")

	if n, err := testutil.GatherAndCount(a.Registry(), "trivia_grading_errors_total"); err != nil || n != 2 {
		t.Fatalf("expected 2 grading error series, got %d (%v)", n, err)
	}
	if n, err := testutil.GatherAndCount(b.Registry(), "trivia_grading_errors_total"); err != nil || n != 0 {
		t.Fatalf("expected no grading error series on a fresh registry, got %d (%v)", n, err)
	}
}

func TestHandlerExposesHTTPMetrics(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest("/v1/scores", http.MethodPost, "200", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `trivia_http_requests_total{method="POST",route="/v1/scores",status="200"} 1`) {
		t.Fatalf("expected request counter in output, got:\n%s", body)
	}
}
