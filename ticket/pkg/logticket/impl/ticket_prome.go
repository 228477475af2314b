package impl

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"relay/ticket/pkg/logticket"
)

const outcomeLogged = "logged"

var (
	ticketForwardTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_ticket_forward_total",
			Help: "工单转发结果计数 (logged 或失败原因)",
		},
		[]string{"outcome"},
	)

	ticketForwardDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_ticket_forward_duration_seconds",
			Help:    "工单转发耗时（秒）",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(ticketForwardTotal)
	prometheus.MustRegister(ticketForwardDuration)
}

func observeLogged(start time.Time) {
	ticketForwardTotal.WithLabelValues(outcomeLogged).Inc()
	ticketForwardDuration.Observe(time.Since(start).Seconds())
}

func observeFailure(cause logticket.Cause, start time.Time) {
	ticketForwardTotal.WithLabelValues(string(cause)).Inc()
	// 未发出请求的失败不计入耗时
	if cause != logticket.CauseConfig && cause != logticket.CauseMalformedInput {
		ticketForwardDuration.Observe(time.Since(start).Seconds())
	}
}
