package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"canteen-orders/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request-id propagation, request
// metrics and a structured access log line.
func (s *Server) instrument(handler string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)

		status := strconv.Itoa(rec.status)
		s.metrics.Requests.WithLabelValues(handler, status).Inc()
		s.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
		logging.Log(logging.Fields{
			Service:    "api",
			RequestID:  reqID,
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     status,
			DurationMS: time.Since(start).Milliseconds(),
		})
	}
}
