// SPDX-License-Identifier: EPL-2.0

package observe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// InitProvider registers with the default Prometheus registry, so only this
// test may call it.
func TestMetricsHandler(t *testing.T) {
	mp, err := InitProvider(context.Background(), ProviderConfig{ServiceVersion: "test"})
	if err != nil {
		t.Fatalf("InitProvider() error = %v", err)
	}
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	m.BlocksProcessed.Add(context.Background(), 3)

	srv := httptest.NewServer(MetricsHandler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "dmaudio_blocks_processed") {
		t.Errorf("/metrics does not expose dmaudio_blocks_processed:\n%s", body)
	}

	resp, err = http.Get(srv.URL + "/other")
	if err != nil {
		t.Fatalf("GET /other error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /other status = %d, want 404", resp.StatusCode)
	}
}
