package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "controller_cleaner"

var (
	scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Count of finished scans by outcome.",
		},
		[]string{"outcome"},
	)
	scanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Time spent marking, finalizing and sweeping one controller.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)
	obsoleteFound = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obsolete_objects_found_total",
			Help:      "Count of obsolete sub-assets reported by completed scans.",
		},
	)
	cleanupObjects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_objects_total",
			Help:      "Count of sub-assets handled by cleanup, by result.",
		},
		[]string{"result"},
	)
)

var registerMetrics sync.Once

// Register attaches all collectors to reg. Only the first call has an effect.
func Register(reg prometheus.Registerer) {
	registerMetrics.Do(func() {
		reg.MustRegister(scansTotal)
		reg.MustRegister(scanDuration)
		reg.MustRegister(obsoleteFound)
		reg.MustRegister(cleanupObjects)
	})
}

// RecordScan records a finished scan with its outcome and duration.
func RecordScan(outcome string, elapsed time.Duration) {
	scansTotal.WithLabelValues(outcome).Inc()
	scanDuration.Observe(elapsed.Seconds())
}

// RecordObsolete records the number of obsolete objects found by one scan.
func RecordObsolete(n int) {
	obsoleteFound.Add(float64(n))
}

// RecordCleanup records removed and failed object counts for one cleanup.
func RecordCleanup(removed, failed int) {
	cleanupObjects.WithLabelValues("removed").Add(float64(removed))
	cleanupObjects.WithLabelValues("failed").Add(float64(failed))
}
