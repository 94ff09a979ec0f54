package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	CheckInCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_checkins_total",
			Help: "Daily progress check-ins",
		},
		[]string{"result"}, // "complete" | "incomplete"
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, CheckInCount)
}
