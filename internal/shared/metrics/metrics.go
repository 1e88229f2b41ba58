package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	generationTotal = newCounterVec("provider", "outcome")
	renderTotal     = newCounterVec("mode", "outcome")
	artifactsTotal  = newCounterVec("type", "op")

	generationDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
	renderPollAttempts = newHistogram([]float64{1, 2, 3, 5, 8, 10})
)

// ObserveGeneration records one completion call and its duration.
func ObserveGeneration(provider, outcome string, elapsed time.Duration) {
	generationTotal.Inc(provider, outcome)
	generationDuration.Observe(float64(elapsed.Milliseconds()))
}

// ObserveRender records one render request and the number of status checks it took.
func ObserveRender(mode, outcome string, pollAttempts int) {
	renderTotal.Inc(mode, outcome)
	if pollAttempts > 0 {
		renderPollAttempts.Observe(float64(pollAttempts))
	}
}

// IncArtifact counts an artifact store operation.
func IncArtifact(kind, op string) {
	artifactsTotal.Inc(kind, op)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "generation_requests_total", "Completion requests by provider and outcome", generationTotal)
	writeHistogram(&buf, "generation_duration_ms", "Completion latency in milliseconds", generationDuration.Snapshot())
	writeCounterVec(&buf, "render_requests_total", "PDF render requests by mode and outcome", renderTotal)
	writeHistogram(&buf, "render_poll_attempts", "Status checks per asynchronous render", renderPollAttempts.Snapshot())
	writeCounterVec(&buf, "artifact_operations_total", "Artifact store operations by type", artifactsTotal)
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	labels []string
	values map[string]uint64
}

func newCounterVec(labels ...string) *counterVec {
	return &counterVec{labels: labels, values: make(map[string]uint64)}
}

func (v *counterVec) Inc(values ...string) {
	pairs := make([]string, len(v.labels))
	for i, name := range v.labels {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		pairs[i] = fmt.Sprintf("%s=%q", name, val)
	}
	key := strings.Join(pairs, ",")
	v.mu.Lock()
	v.values[key]++
	v.mu.Unlock()
}

func (v *counterVec) snapshot() ([]string, map[string]uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]uint64, len(v.values))
	keys := make([]string, 0, len(v.values))
	for k, n := range v.values {
		out[k] = n
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound it fits; writeHistogram accumulates.
func (h *histogram) Observe(value float64) {
	if value < 0 {
		value = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounterVec(buf *bytes.Buffer, name, help string, v *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys, values := v.snapshot()
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
