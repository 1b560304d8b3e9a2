package analytics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	pageViewsTotal   *prometheus.CounterVec
	logicFaultsTotal *prometheus.CounterVec
	maintenanceTotal prometheus.Counter
)

func InitPrometheusMetrics() {
	pageViewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagepulse",
			Name:      "page_views_total",
			Help:      "Total number of recorded page visits.",
		},
		[]string{"path", "status"},
	)
	logicFaultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagepulse",
			Name:      "logic_faults_total",
			Help:      "Total number of contained page-logic faults.",
		},
		[]string{"slug"},
	)
	maintenanceTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pagepulse",
			Name:      "maintenance_responses_total",
			Help:      "Total number of requests answered by the maintenance page.",
		},
	)
	prometheus.MustRegister(pageViewsTotal, logicFaultsTotal, maintenanceTotal)
}

func observeView(path string, status int) {
	if pageViewsTotal != nil {
		pageViewsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
	}
}

// ObserveLogicFault counts a contained page-logic fault for the slug.
func ObserveLogicFault(slug string) {
	if logicFaultsTotal != nil {
		logicFaultsTotal.WithLabelValues(slug).Inc()
	}
}

// ObserveMaintenance counts a request answered by the maintenance page.
func ObserveMaintenance() {
	if maintenanceTotal != nil {
		maintenanceTotal.Inc()
	}
}
