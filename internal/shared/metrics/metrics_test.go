package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesCountersAndHistograms(t *testing.T) {
	IncExtractionFailed()
	ObserveAnalysisDurationMs(150)
	ObserveAnalysisDurationMs(-5)

	out := Render()
	for _, want := range []string{
		"# TYPE resume_extraction_failed_total counter",
		"# TYPE resume_analysis_duration_ms histogram",
		`resume_analysis_duration_ms_bucket{le="250"}`,
		`resume_analysis_duration_ms_bucket{le="+Inf"}`,
		"resume_upstream_retry_total",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}
	if snap.sum != 555 {
		t.Fatalf("expected sum 555, got %v", snap.sum)
	}
}
