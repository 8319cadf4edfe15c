package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SuppliersOnboarded counts accepted onboarding calls.
	SuppliersOnboarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "suppliers_onboarded_total",
		Help: "Total number of suppliers onboarded",
	})

	// DocumentsSubmitted counts uploaded compliance documents by type.
	DocumentsSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "compliance_documents_submitted_total",
		Help: "Total number of compliance documents uploaded",
	}, []string{"type"})

	// DocumentsValidated counts validation outcomes.
	DocumentsValidated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "compliance_documents_validated_total",
		Help: "Total number of document validation outcomes",
	}, []string{"type", "result"})

	// SuppliersApproved counts workStatus transitions to APPROVED.
	SuppliersApproved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "suppliers_approved_total",
		Help: "Total number of suppliers promoted to APPROVED",
	})
)

func init() {
	prometheus.MustRegister(SuppliersOnboarded, DocumentsSubmitted, DocumentsValidated, SuppliersApproved)
}

// Handler exposes the prometheus registry on a gin route.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
