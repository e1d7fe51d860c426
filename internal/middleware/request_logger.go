package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"todolist/internal/logger"
	"todolist/internal/services"
)

type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

func (m *Metrics) observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// requestUser reads the userId from the bearer token without verifying it.
func requestUser(c *gin.Context) string {
	token, ok := BearerToken(c)
	if !ok {
		return "-"
	}
	claims, err := services.DecodeUnverified(token)
	if err != nil || claims.UserID == 0 {
		return "-"
	}
	return strconv.FormatInt(claims.UserID, 10)
}

func responseBytes(c *gin.Context) int {
	if v := c.Writer.Header().Get("Content-Length"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if n := c.Writer.Size(); n > 0 {
		return n
	}
	return 0
}

// RequestLogger writes one line per completed request:
//
//	[GET] [/users/me] [status 200] [1.234ms] [ip 127.0.0.1] [user 1] [83 bytes] [accept-language en-US] - curl/8.0
func RequestLogger(log logger.Logger, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.observe(c.Request.Method, route, status, elapsed)

		log.Log("[%s] [%s] [status %d] [%.3fms] [ip %s] [user %s] [%d bytes] [accept-language %s] - %s",
			c.Request.Method,
			c.Request.URL.RequestURI(),
			status,
			float64(elapsed.Microseconds())/1000,
			c.ClientIP(),
			requestUser(c),
			responseBytes(c),
			c.GetHeader("Accept-Language"),
			c.Request.UserAgent(),
		)
	}
}
