package service

import "github.com/prometheus/client_golang/prometheus"

var (
	listingsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "listings_published_total", Help: "Count of published listings"},
	)
	alertsMatched = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "alerts_matched_total", Help: "Count of alerts matching a published listing"},
	)
	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "notifications_total", Help: "Count of notification send attempts"},
		[]string{"channel", "result"},
	)
)

func init() { prometheus.MustRegister(listingsPublished, alertsMatched, notificationsSent) }
