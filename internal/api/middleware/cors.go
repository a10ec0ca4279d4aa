package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CORSConfig lists what browsers may do cross-origin. A "*" entry in
// AllowOrigins admits every origin.
type CORSConfig struct {
	AllowOrigins  []string
	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string
	MaxAge        int
}

// DefaultCORSConfig admits any origin for the endpoints the server exposes.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Accept", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        3600,
	}
}

// CORS sets the CORS response headers and answers preflight requests with 204.
func CORS(config CORSConfig) gin.HandlerFunc {
	anyOrigin := lo.Contains(config.AllowOrigins, "*")

	// Fixed headers are computed once, not per request.
	static := lo.PickBy(map[string]string{
		"Access-Control-Allow-Methods":  strings.Join(config.AllowMethods, ", "),
		"Access-Control-Allow-Headers":  strings.Join(config.AllowHeaders, ", "),
		"Access-Control-Expose-Headers": strings.Join(config.ExposeHeaders, ", "),
	}, func(_ string, v string) bool { return v != "" })
	if config.MaxAge > 0 {
		static["Access-Control-Max-Age"] = strconv.Itoa(config.MaxAge)
	}

	return func(c *gin.Context) {
		switch origin := c.GetHeader("Origin"); {
		case anyOrigin:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(config.AllowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		for k, v := range static {
			c.Header(k, v)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
