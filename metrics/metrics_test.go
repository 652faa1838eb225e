package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersOnRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	var registerer prometheus.Registerer = prometheus.WrapRegistererWithPrefix("realestate_", reg)

	m := New(registerer, reg)
	m.DatasetListings.Set(7)
	m.MessagesTotal.WithLabelValues("greeting").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	for _, want := range []string{
		"realestate_dataset_listings 7",
		`realestate_bot_messages_total{outcome="greeting"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("scrape output missing %q:\n%s", want, text)
		}
	}
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, reg)

	defer func() {
		if recover() == nil {
			t.Error("registering the collectors twice on one registry should panic")
		}
	}()
	New(reg, reg)
}
