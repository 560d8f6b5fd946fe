package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, buf
}

func TestLoggingMiddleware(t *testing.T) {
	log, buf := newTestLogger()

	var sawLogger bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := GetLogger(r.Context())
		sawLogger = entry.Data["path"] == "/test"
		w.WriteHeader(http.StatusTeapot)
	})

	loggedHandler := Chain(handler, RequestID(), Logging(log))

	req, err := http.NewRequest("GET", "/test", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	loggedHandler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusTeapot {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusTeapot)
	}
	if !sawLogger {
		t.Error("expected request-scoped logger in context")
	}
	if !strings.Contains(buf.String(), `"status":418`) {
		t.Errorf("expected completion log with status, got %s", buf.String())
	}
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Error("expected request id header")
	}
}

func TestRequestID_PreservesIncomingHeader(t *testing.T) {
	var got string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got != "fixed-id" {
		t.Errorf("expected fixed-id, got %q", got)
	}
	if rr.Header().Get(RequestIDHeader) != "fixed-id" {
		t.Errorf("expected response header fixed-id, got %q", rr.Header().Get(RequestIDHeader))
	}
}

func TestRecovery(t *testing.T) {
	log, buf := newTestLogger()
	handler := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "Panic recovered") {
		t.Errorf("expected panic to be logged, got %s", buf.String())
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(time.Hour, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("first request: got %d want %d", rr.Code, http.StatusOK)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d want %d", rr.Code, http.StatusTooManyRequests)
	}

	expected := `{"error":"Rate limit exceeded"}`
	if strings.TrimSpace(rr.Body.String()) != expected {
		t.Errorf("unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestRateLimiter_RejectHandler(t *testing.T) {
	reject := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("<p>slow down</p>"))
	})
	limiter := NewRateLimiter(time.Hour, 1, WithRejectHandler(reject))
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/generate", nil))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("got %d want %d", rr.Code, http.StatusTooManyRequests)
	}
	if rr.Body.String() != "<p>slow down</p>" {
		t.Errorf("expected custom rejection body, got %q", rr.Body.String())
	}
}
