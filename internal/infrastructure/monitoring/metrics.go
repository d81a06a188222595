package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type CreditMetrics struct {
	LoanDecisionsTotal     *prometheus.CounterVec
	EligibilityChecksTotal *prometheus.CounterVec
	CreditScore            *prometheus.HistogramVec
	CustomersByRateTier    *prometheus.GaugeVec
	SnapshotDuration       prometheus.Histogram
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_engine_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Credit = CreditMetrics{
		LoanDecisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_loan_decisions_total",
				Help: "Loan origination outcomes by result.",
			},
			[]string{"outcome"},
		),
		EligibilityChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_eligibility_checks_total",
				Help: "Eligibility previews by result.",
			},
			[]string{"result"},
		),
		CreditScore: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_engine_credit_score",
				Help:    "Distribution of computed credit scores.",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
			[]string{"source"},
		),
		CustomersByRateTier: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "credit_engine_customers_by_rate_tier",
				Help: "Customers per interest rate tier at the last portfolio snapshot.",
			},
			[]string{"tier"},
		),
		SnapshotDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "credit_engine_score_snapshot_duration_seconds",
				Help:    "Duration of portfolio score snapshot runs.",
				Buckets: []float64{.1, .5, 1, 5, 15, 60, 300},
			},
		),
	}
)

const (
	ScoreSourceEligibility = "eligibility"
	ScoreSourceOrigination = "origination"
	ScoreSourceSnapshot    = "snapshot"
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

// RecordLoanDecision counts an origination outcome: "approved", a rejection
// reason, or "error".
func RecordLoanDecision(outcome string) {
	Credit.LoanDecisionsTotal.WithLabelValues(outcome).Inc()
}

func RecordEligibilityCheck(approved bool) {
	result := "not_eligible"
	if approved {
		result = "approved"
	}
	Credit.EligibilityChecksTotal.WithLabelValues(result).Inc()
}

func ObserveCreditScore(source string, score int) {
	Credit.CreditScore.WithLabelValues(source).Observe(float64(score))
}

func SetRateTierCounts(counts map[string]int) {
	Credit.CustomersByRateTier.Reset()
	for tier, n := range counts {
		Credit.CustomersByRateTier.WithLabelValues(tier).Set(float64(n))
	}
}

func ObserveSnapshotDuration(duration time.Duration) {
	Credit.SnapshotDuration.Observe(duration.Seconds())
}
