package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordsFetchOutcomes(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RunStarted()
	m.FetchObserved("JBL", 10*time.Millisecond, nil)
	m.FetchObserved("APPLE", 20*time.Millisecond, errors.New("boom"))
	m.RowsObserved("JBL", 3, 1)

	if got := testutil.ToFloat64(m.IngestRuns); got != 1 {
		t.Fatalf("unexpected runs: %v", got)
	}
	if got := testutil.ToFloat64(m.CategoryFetches.WithLabelValues("APPLE", "error")); got != 1 {
		t.Fatalf("unexpected APPLE error count: %v", got)
	}
	if got := testutil.ToFloat64(m.ProductsTotal.WithLabelValues("JBL")); got != 3 {
		t.Fatalf("unexpected JBL products: %v", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RunStarted()
	m.FetchObserved("JBL", time.Second, nil)
	m.RowsObserved("JBL", 1, 1)
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RunStarted()

	ts := httptest.NewServer(m.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "stcatalog_ingest_runs_total 1") {
		t.Fatalf("metrics output missing run counter:\n%s", body)
	}
}
