package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Minimal, low-overhead request telemetry designed for local usage.
// - By default only slow requests are logged (see slowThreshold).
// - Per-request spans are only recorded when a request is sampled (very low default sampling).

type ctxKeyType struct{}

var (
	writerOnce    sync.Once
	writerCh      chan []byte
	requestCtr    uint64
	spanCtr       uint64
	sampleRate    = 0.001 // 0.1% default sampling for full traces
	slowThreshold = 200 * time.Millisecond
	outDir        = "./logs"
	outMu         sync.Mutex
)

// SetOutputDir sets the directory telemetry lines are appended to. Must be
// called before the first request flows through the middleware.
func SetOutputDir(dir string) {
	if dir == "" {
		return
	}
	outMu.Lock()
	outDir = dir
	outMu.Unlock()
}

// Span is a simple span relative to request start (milliseconds)
type Span struct {
	ID       string         `json:"id"`
	ParentID string         `json:"parent_id,omitempty"`
	Op       string         `json:"op"`
	StartMs  int64          `json:"start_ms"`
	Duration int64          `json:"duration_ms"`
	Data     map[string]any `json:"data,omitempty"`
}

// Telemetry holds the per-request trace and metadata.
type Telemetry struct {
	RequestID string `json:"request_id"`
	Op        string `json:"op"`
	StartMs   int64  `json:"start_ms"`
	Duration  int64  `json:"duration_ms"`
	Status    int    `json:"status"`
	Spans     []Span `json:"spans,omitempty"`

	// internal
	startTime time.Time
	mu        sync.Mutex
	spanStack []string
}

// initWriter lazily starts a background writer that appends text lines to
// <outDir>/telemetry.jsonl.
func initWriter() {
	writerCh = make(chan []byte, 1024)
	go func() {
		outMu.Lock()
		dir := outDir
		outMu.Unlock()
		_ = os.MkdirAll(dir, 0o755)
		f, err := os.OpenFile(filepath.Join(dir, "telemetry.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		for b := range writerCh {
			_, _ = f.Write(append(b, '\n'))
		}
	}()
}

// Middleware wraps the provided handler and records request timing and sampled spans.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := genRequestID()
		sampled := shouldSample(r)

		var tel *Telemetry
		if sampled {
			op := r.Header.Get("X-Operation")
			if op == "" {
				op = r.URL.Path
			}
			tel = &Telemetry{
				RequestID: reqID,
				Op:        op,
				startTime: start,
				StartMs:   start.UnixNano() / 1e6,
			}
			rootID := genSpanID()
			tel.Spans = append(tel.Spans, Span{ID: rootID, Op: tel.Op, StartMs: 0})
			tel.spanStack = append(tel.spanStack, rootID)
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyType{}, tel))
		}

		srw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(srw, r)

		dur := time.Since(start)
		if tel != nil {
			tel.mu.Lock()
			tel.Status = srw.status
			tel.Duration = dur.Milliseconds()
			b := renderTelemetryText(tel)
			tel.mu.Unlock()
			writerOnce.Do(initWriter)
			select {
			case writerCh <- b:
			default:
				// drop if channel full to avoid blocking
			}
			return
		}

		if dur > slowThreshold {
			op := r.Header.Get("X-Operation")
			if op == "" {
				op = r.URL.Path
			}
			b := []byte(fmt.Sprintf("SLOW %s op=%s duration_ms=%d status=%d", reqID, op, dur.Milliseconds(), srw.status))
			writerOnce.Do(initWriter)
			select {
			case writerCh <- b:
			default:
			}
		}
	})
}

// StartSpan returns an end function for a named span. If telemetry isn't
// enabled for the request, StartSpan returns a no-op end function.
func StartSpan(ctx context.Context, name string) func() {
	tel, ok := ctx.Value(ctxKeyType{}).(*Telemetry)
	if !ok {
		return func() {}
	}
	startRel := time.Since(tel.startTime).Milliseconds()
	id := genSpanID()

	tel.mu.Lock()
	parent := ""
	if len(tel.spanStack) > 0 {
		parent = tel.spanStack[len(tel.spanStack)-1]
	}
	tel.Spans = append(tel.Spans, Span{ID: id, ParentID: parent, Op: name, StartMs: startRel})
	tel.spanStack = append(tel.spanStack, id)
	idx := len(tel.Spans) - 1
	tel.mu.Unlock()

	return func() {
		endRel := time.Since(tel.startTime).Milliseconds()
		tel.mu.Lock()
		if idx < len(tel.Spans) {
			tel.Spans[idx].Duration = endRel - tel.Spans[idx].StartMs
		}
		if len(tel.spanStack) > 0 {
			tel.spanStack = tel.spanStack[:len(tel.spanStack)-1]
		}
		tel.mu.Unlock()
	}
}

// SetSpanData attaches a key/value to the currently active span for the
// request (no-op if telemetry isn't enabled or no active span).
func SetSpanData(ctx context.Context, key string, value any) {
	tel, ok := ctx.Value(ctxKeyType{}).(*Telemetry)
	if !ok {
		return
	}
	tel.mu.Lock()
	defer tel.mu.Unlock()
	if len(tel.spanStack) == 0 {
		return
	}
	top := tel.spanStack[len(tel.spanStack)-1]
	for i := len(tel.Spans) - 1; i >= 0; i-- {
		if tel.Spans[i].ID == top {
			if tel.Spans[i].Data == nil {
				tel.Spans[i].Data = make(map[string]any)
			}
			tel.Spans[i].Data[key] = value
			return
		}
	}
}

// renderTelemetryText renders a sampled Telemetry as an indented text block.
func renderTelemetryText(t *Telemetry) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "REQUEST %s op=%s start_ms=%d duration_ms=%d status=%d\n", t.RequestID, t.Op, t.StartMs, t.Duration, t.Status)

	children := make(map[string][]Span)
	for _, sp := range t.Spans {
		children[sp.ParentID] = append(children[sp.ParentID], sp)
	}

	var printSpan func(id string, depth int)
	printSpan = func(id string, depth int) {
		list := children[id]
		sort.SliceStable(list, func(i, j int) bool { return list[i].StartMs < list[j].StartMs })
		for _, sp := range list {
			indent := strings.Repeat("  ", depth)
			dataStr := ""
			if len(sp.Data) > 0 {
				var parts []string
				for k, v := range sp.Data {
					parts = append(parts, fmt.Sprintf("%s=%v", k, v))
				}
				dataStr = " data=" + strings.Join(parts, ",")
			}
			fmt.Fprintf(&b, "%s- %s id=%s start_ms=%d duration_ms=%d%s\n", indent, sp.Op, sp.ID, sp.StartMs, sp.Duration, dataStr)
			printSpan(sp.ID, depth+1)
		}
	}
	printSpan("", 1)
	return []byte(b.String())
}

// shouldSample decides whether a request records a full trace. Sampling can
// be forced via the header `X-Debug-Telemetry: 1`.
func shouldSample(r *http.Request) bool {
	if r.Header.Get("X-Debug-Telemetry") == "1" {
		return true
	}
	if sampleRate <= 0 {
		return false
	}
	denom := int64(1 / sampleRate)
	if denom <= 1 {
		return true
	}
	n := int64(atomic.AddUint64(&requestCtr, 1))
	return (n % denom) == 0
}

func genRequestID() string {
	n := atomic.AddUint64(&requestCtr, 1)
	return fmt.Sprintf("r-%s-%d", time.Now().Format("20060102T150405"), n)
}

func genSpanID() string {
	return fmt.Sprintf("s-%d", atomic.AddUint64(&spanCtr, 1))
}

// SetSampleRate sets the approximate sampling rate for full traces (0..1).
// A rate of 0 disables full tracing (only slow requests will be logged).
func SetSampleRate(r float64) {
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	sampleRate = r
}

// SetSlowThreshold sets the duration above which non-sampled requests get a
// lightweight log.
func SetSlowThreshold(d time.Duration) {
	if d < 0 {
		d = 0
	}
	slowThreshold = d
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
