package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// blogs
	BlogsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bloglist_blogs_created_total",
			Help: "Blogs created through the authenticated endpoint",
		},
	)
	BlogsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bloglist_blogs_deleted_total",
			Help: "Blogs deleted by their owner",
		},
	)
	CommentsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bloglist_comments_added_total",
			Help: "Comments appended to blogs",
		},
	)

	// auth
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloglist_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // ok|invalid
	)
)

// handler for /metrics
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(BlogsCreated)
	prometheus.MustRegister(BlogsDeleted)
	prometheus.MustRegister(CommentsAdded)
	prometheus.MustRegister(LoginsTotal)
}
