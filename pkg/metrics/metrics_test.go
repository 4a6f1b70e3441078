package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不能panic（重复注册）

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, BooksIssuedTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestRecordIssue(t *testing.T) {
	InitMetrics()
	issued := counterValue(t, BooksIssuedTotal)
	failures := counterValue(t, LendingFailuresTotal.WithLabelValues("issue", "40010"))

	RecordIssue("", true)
	RecordIssue("40010", false)
	RecordIssue("40010", false)

	assert.Equal(t, issued+1, counterValue(t, BooksIssuedTotal))
	assert.Equal(t, failures+2, counterValue(t, LendingFailuresTotal.WithLabelValues("issue", "40010")))
}

func TestRecordReturn(t *testing.T) {
	InitMetrics()
	SetCatalogSize(3, 1)
	before := histogramCount(t, ReturnFines)

	RecordReturn(60, "", true)

	assert.Equal(t, before+1, histogramCount(t, ReturnFines))
	assert.Equal(t, 0.0, gaugeValue(t, BooksOnLoan))
	assert.Equal(t, 3.0, gaugeValue(t, CatalogBooks))
}

func TestRecordSave(t *testing.T) {
	InitMetrics()
	ok := counterValue(t, CatalogSavesTotal.WithLabelValues("file", "success"))
	failed := counterValue(t, CatalogSavesTotal.WithLabelValues("file", "failure"))

	RecordSave("file", 0.002, nil)
	RecordSave("file", 0.5, errors.New("disk full"))

	assert.Equal(t, ok+1, counterValue(t, CatalogSavesTotal.WithLabelValues("file", "success")))
	assert.Equal(t, failed+1, counterValue(t, CatalogSavesTotal.WithLabelValues("file", "failure")))
}

func TestBreakerMetrics(t *testing.T) {
	SetBreakerState("storage", 1)
	assert.Equal(t, 1.0, gaugeValue(t, CircuitBreakerState.WithLabelValues("storage")))

	before := counterValue(t, CircuitBreakerRequests.WithLabelValues("storage", "rejected"))
	RecordBreakerRequest("storage", "rejected")
	assert.Equal(t, before+1, counterValue(t, CircuitBreakerRequests.WithLabelValues("storage", "rejected")))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}
