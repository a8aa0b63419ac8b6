package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	persisterReconcileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "graph_persister",
		Name:      "reconcile_total",
		Help:      "Count of reconciled clusters by outcome.",
	}, []string{"coin", "network", "outcome", "status"})

	persisterReconcileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "graph_persister",
		Name:      "reconcile_duration_seconds",
		Help:      "Duration of reconciling one cluster.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	persisterPersistDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "graph_persister",
		Name:      "persist_duration_seconds",
		Help:      "Duration of persisting a full set of clusters.",
		Buckets:   []float64{1, 5, 15, 30, 60, 300, 900, 1800, 3600, 7200},
	}, []string{"coin", "network", "status"})

	persisterPersistClusters = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "graph_persister",
		Name:      "persist_clusters",
		Help:      "Number of clusters handed to the last persist run.",
	}, []string{"coin", "network"})
)

// GraphPersister tracks metrics for entity graph reconciliation.
type GraphPersister struct {
	coin    model.Coin
	network model.Network
}

func NewGraphPersister(coin model.Coin, network model.Network) *GraphPersister {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &GraphPersister{coin: coin, network: network}
}

// ObserveReconcile records the outcome of one cluster. Failed reconciles carry an empty outcome.
func (m GraphPersister) ObserveReconcile(outcome string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	if outcome == "" {
		outcome = "none"
	}
	persisterReconcileTotal.WithLabelValues(string(m.coin), string(m.network), outcome, status).Inc()
	persisterReconcileDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m GraphPersister) ObservePersist(err error, clusters int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	persisterPersistClusters.WithLabelValues(string(m.coin), string(m.network)).Set(float64(clusters))
	persisterPersistDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}
