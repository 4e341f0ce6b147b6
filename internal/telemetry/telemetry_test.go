package telemetry

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/splitledger/internal/ledger"
)

func TestMetricsCountsEvents(t *testing.T) {
	m := NewMetrics()

	m.Publish(context.Background(), ledger.DebtCreated{Amount: 10})
	m.Publish(context.Background(), ledger.DebtCreated{Amount: 10})
	m.Publish(context.Background(), ledger.CaseAdded{Amount: 30})

	if got := testutil.ToFloat64(m.Events.WithLabelValues("debt_created")); got != 2 {
		t.Errorf("debt_created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Events.WithLabelValues("case_added")); got != 1 {
		t.Errorf("case_added = %v, want 1", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.RPCRequests.WithLabelValues("/x", "ok").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "splitledger_rpc_requests_total") {
		t.Errorf("expected rpc counter in exposition, got:\n%s", body)
	}
}

func TestSetupTracingDisabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "splitledger-test", "")
	if err != nil {
		t.Fatalf("SetupTracing failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
	if Tracer() == nil {
		t.Error("expected a tracer")
	}
}
