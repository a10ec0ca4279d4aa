package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apierrors "whisper-server/internal/api/errors"
	"whisper-server/internal/app/logging"
	"whisper-server/internal/app/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var fromContext string
	router.GET("/ping", func(c *gin.Context) {
		fromContext = logging.RequestID(c.Request.Context())
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
		assert.Equal(t, id, fromContext)
	})

	t.Run("echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "client-supplied")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "client-supplied", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "client-supplied", fromContext)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name         string
		config       CORSConfig
		method       string
		origin       string
		wantStatus   int
		wantOrigin   string
		wantNextCall bool
	}{
		{
			name:         "wildcard origin",
			config:       DefaultCORSConfig(),
			method:       http.MethodPost,
			origin:       "http://localhost:3000",
			wantStatus:   http.StatusOK,
			wantOrigin:   "*",
			wantNextCall: true,
		},
		{
			name:       "preflight",
			config:     DefaultCORSConfig(),
			method:     http.MethodOptions,
			origin:     "http://localhost:3000",
			wantStatus: http.StatusNoContent,
			wantOrigin: "*",
		},
		{
			name:         "listed origin",
			config:       CORSConfig{AllowOrigins: []string{"https://debate.example"}},
			method:       http.MethodPost,
			origin:       "https://debate.example",
			wantStatus:   http.StatusOK,
			wantOrigin:   "https://debate.example",
			wantNextCall: true,
		},
		{
			name:         "unlisted origin",
			config:       CORSConfig{AllowOrigins: []string{"https://debate.example"}},
			method:       http.MethodPost,
			origin:       "https://evil.example",
			wantStatus:   http.StatusOK,
			wantOrigin:   "",
			wantNextCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			router := gin.New()
			router.Use(CORS(tt.config))
			router.Any("/transcribe", func(c *gin.Context) {
				called = true
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/transcribe", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantNextCall, called)
		})
	}
}

func TestCORS_MaxAgeHeader(t *testing.T) {
	router := gin.New()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_ListedOriginVariesAndExposesRequestID(t *testing.T) {
	router := gin.New()
	router.Use(CORS(CORSConfig{
		AllowOrigins:  []string{"https://debate.example"},
		ExposeHeaders: []string{RequestIDHeader},
	}))
	router.POST("/transcribe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/transcribe", nil)
	req.Header.Set("Origin", "https://debate.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	assert.Equal(t, RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"), "unset lists produce no header")
	assert.Empty(t, rec.Header().Get("Access-Control-Max-Age"))
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(RequestID())
	router.Use(ErrorHandler(logger))
	router.GET("/panic-error", func(c *gin.Context) { panic(errors.New("nil map write")) })
	router.GET("/panic-value", func(c *gin.Context) { panic("something odd") })
	router.GET("/api-error", func(c *gin.Context) { HandleError(c, apierrors.NewBadRequestError("No file part")) })
	router.GET("/plain-error", func(c *gin.Context) { HandleError(c, errors.New("disk full")) })

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/panic-error", http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"/panic-value", http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"/api-error", http.StatusBadRequest, `{"error":"No file part"}`},
		{"/plain-error", http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}

	assert.Equal(t, 2, logs.FilterMessage("Internal server error").Len())
	assert.Equal(t, 1, logs.FilterMessage("Unknown panic occurred").Len())
}

func TestStructuredLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(RequestID())
	router.Use(StructuredLogging(zap.New(core)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/transcribe", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	req := httptest.NewRequest(http.MethodPost, "/transcribe", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1, "health checks are not logged")

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/transcribe", fields["path"])
	assert.Equal(t, int64(http.StatusBadRequest), fields["status"])
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	router := gin.New()
	router.Use(Metrics(m))
	router.POST("/transcribe", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/transcribe", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/transcribe", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	expected := `
# HELP whisper_server_http_requests_total HTTP requests by method, route and status code.
# TYPE whisper_server_http_requests_total counter
whisper_server_http_requests_total{method="GET",route="unmatched",status="404"} 1
whisper_server_http_requests_total{method="POST",route="/transcribe",status="200"} 2
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "whisper_server_http_requests_total")
	assert.NoError(t, err)
}
