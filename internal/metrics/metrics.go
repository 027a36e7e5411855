package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conveyorhub_scans_ingested_total",
		Help: "Scan events persisted, by classification outcome.",
	}, []string{"status"})

	BroadcastsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conveyorhub_broadcasts_sent_total",
		Help: "Websocket topic publishes attempted after ingestion.",
	}, []string{"topic"})

	ManifestReplaces = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conveyorhub_manifest_replaces_total",
		Help: "Successful wholesale manifest replacements.",
	})

	ReconcileRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conveyorhub_reconcile_runs_total",
		Help: "Reconciliation jobs executed.",
	})
)

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
