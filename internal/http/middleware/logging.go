package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int64
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Flush lets streamed downloads pass through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Logging middleware logs HTTP requests. An incoming X-Request-ID is reused,
// otherwise a new one is generated; either way it is echoed on the response.
func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" || len(requestID) > 100 {
				requestID = uuid.New().String()
			}

			r.Header.Set(RequestIDHeader, requestID)
			w.Header().Set(RequestIDHeader, requestID)

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status_code", rw.statusCode),
				zap.Int64("response_size", rw.written),
				zap.Duration("duration", duration),
			}

			reqLog := log
			if userCtx, ok := auth.FromContext(r.Context()); ok {
				reqLog = logger.WithCaller(log, userCtx)
			}

			msg := fmt.Sprintf("%s %-30s -> %3d (%s)",
				r.Method,
				r.URL.Path,
				rw.statusCode,
				duration.Truncate(time.Microsecond),
			)
			if rw.statusCode >= http.StatusInternalServerError {
				reqLog.Error(msg, fields...)
				return
			}
			reqLog.Info(msg, fields...)
		})
	}
}

// Recovery turns a panic in a handler into a 500 response
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.WithRequest(log, r.Method, r.URL.Path, r.Header.Get(RequestIDHeader)).Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal Server Error","message":"An unexpected error occurred"}`))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
