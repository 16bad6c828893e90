package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"

	"stcatalog/catalog"
	"stcatalog/config"
	"stcatalog/importer"
	"stcatalog/internal/observability"
)

type fakeIngest struct {
	result *importer.Result
	err    error
	runs   atomic.Int32
}

func (f *fakeIngest) Run(ctx context.Context) (*importer.Result, error) {
	f.runs.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Contact.WhatsAppNumber = "+54 9 11 5555-1234"
	return cfg
}

func testResult() *importer.Result {
	return &importer.Result{
		Products: []catalog.Product{
			{ID: "JBL:Flip 6", Category: "JBL", Name: "Flip 6", PriceList: price(99000), PriceCash: price(93000)},
			{ID: "APPLE:AirPods Pro", Category: "APPLE", Name: "AirPods Pro", ModelURL: "https://example.com/airpods"},
		},
		Failures: []importer.CategoryFailure{
			{Category: "VAPER", Endpoint: "465325186", Err: errors.New("status 500")},
		},
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body %s: %v", path, err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_CatalogPageRendersProducts(t *testing.T) {
	t.Parallel()

	ing := &fakeIngest{result: testResult()}
	ts := httptest.NewServer(NewServer(ing, testConfig(), WithLogger(quietLogger())))
	defer ts.Close()

	status, body := get(t, ts, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, want := range []string{"Flip 6", "AirPods Pro", "https://example.com/airpods", "https://wa.me/5491155551234", "RELOJ SMART", "VAPER"} {
		if !strings.Contains(body, want) {
			t.Fatalf("catalog page missing %q: %s", want, body)
		}
	}
	if ing.runs.Load() != 1 {
		t.Fatalf("expected one ingestion run per page load, got %d", ing.runs.Load())
	}
}

func TestServer_CatalogPageFiltersByCategoryAndQuery(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(&fakeIngest{result: testResult()}, testConfig(), WithLogger(quietLogger())))
	defer ts.Close()

	_, body := get(t, ts, "/?category=APPLE")
	if strings.Contains(body, "Flip 6") || !strings.Contains(body, "AirPods Pro") {
		t.Fatalf("unexpected category filter result: %s", body)
	}

	_, body = get(t, ts, "/?q=flip")
	if !strings.Contains(body, "Flip 6") || strings.Contains(body, "AirPods Pro") {
		t.Fatalf("unexpected search result: %s", body)
	}
}

func TestServer_CatalogPageIngestionError(t *testing.T) {
	t.Parallel()

	ing := &fakeIngest{err: importer.ErrInternal}
	ts := httptest.NewServer(NewServer(ing, testConfig(), WithLogger(quietLogger())))
	defer ts.Close()

	status, _ := get(t, ts, "/")
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
}

func TestServer_APIProducts(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(&fakeIngest{result: testResult()}, testConfig(), WithLogger(quietLogger())))
	defer ts.Close()

	status, body := get(t, ts, "/api/products?category=JBL")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var payload productsResponse
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Products) != 1 || payload.Products[0].ID != "JBL:Flip 6" {
		t.Fatalf("unexpected products: %+v", payload.Products)
	}
	if payload.Products[0].PriceCash == nil || *payload.Products[0].PriceCash != 93000 {
		t.Fatalf("unexpected cash price: %+v", payload.Products[0])
	}
	if len(payload.FailedCategories) != 1 || payload.FailedCategories[0] != "VAPER" {
		t.Fatalf("unexpected failed categories: %+v", payload.FailedCategories)
	}
}

func TestServer_APIProductsEncodesEmptyFailuresAsArray(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(&fakeIngest{result: &importer.Result{}}, testConfig(), WithLogger(quietLogger())))
	defer ts.Close()

	_, body := get(t, ts, "/api/products")
	if !strings.Contains(body, `"failedCategories":[]`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestServer_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	metrics.RunStarted()

	ts := httptest.NewServer(NewServer(&fakeIngest{result: testResult()}, testConfig(), WithLogger(quietLogger()), WithMetrics(metrics)))
	defer ts.Close()

	status, body := get(t, ts, "/healthz")
	if status != http.StatusOK || body != "ok" {
		t.Fatalf("unexpected health response: %d %q", status, body)
	}

	status, body = get(t, ts, "/metrics")
	if status != http.StatusOK || !strings.Contains(body, "stcatalog_ingest_runs_total") {
		t.Fatalf("unexpected metrics response: %d %s", status, body)
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(&fakeIngest{result: testResult()}, testConfig(), WithLogger(quietLogger())))
	defer ts.Close()

	if status, _ := get(t, ts, "/metrics"); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestServer_ImageOpenedNotifiesObserver(t *testing.T) {
	t.Parallel()

	events := make(chan ImageOpened, 1)
	observer := ImageObserverFunc(func(_ context.Context, event ImageOpened) {
		events <- event
	})

	ts := httptest.NewServer(NewServer(&fakeIngest{result: testResult()}, testConfig(), WithLogger(quietLogger()), WithImageObserver(observer)))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/events/image-open", "application/json", strings.NewReader(`{"source":"/assets/products/JBL/Flip-6.jpg","alt":"Flip 6"}`))
	if err != nil {
		t.Fatalf("post event: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	select {
	case event := <-events:
		if event.Source != "/assets/products/JBL/Flip-6.jpg" || event.Alt != "Flip 6" {
			t.Fatalf("unexpected event: %+v", event)
		}
	default:
		t.Fatalf("expected observer to receive the event")
	}
}

func TestServer_ImageOpenedRejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(&fakeIngest{result: testResult()}, testConfig(), WithLogger(quietLogger())))
	defer ts.Close()

	for _, body := range []string{`not json`, `{"alt":"Flip 6"}`} {
		resp, err := http.Post(ts.URL+"/api/events/image-open", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post event: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, resp.StatusCode)
		}
	}
}

func TestServer_ChipsFollowServedCategories(t *testing.T) {
	t.Parallel()

	served := []catalog.CategorySource{{Category: "JBL", Endpoint: "0"}}
	ts := httptest.NewServer(NewServer(&fakeIngest{result: testResult()}, testConfig(), WithLogger(quietLogger()), WithCategories(served)))
	defer ts.Close()

	_, body := get(t, ts, "/")
	if !strings.Contains(body, `href="/?category=JBL"`) {
		t.Fatalf("catalog page missing JBL chip: %s", body)
	}
	if strings.Contains(body, "RELOJ SMART") || strings.Contains(body, `href="/?category=APPLE"`) {
		t.Fatalf("catalog page shows chips for categories that are not served: %s", body)
	}
}
