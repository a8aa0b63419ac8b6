// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clusterFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "fetch_total",
		Help:      "Count of batch fetches from the upstream source.",
	}, []string{"coin", "network", "status"})

	clusterFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of a batch fetch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	clusterBatchGroups = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "batch_groups",
		Help:      "Number of address groups per applied batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1..262144
	}, []string{"coin", "network"})

	clusterApplyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "apply_batch_duration_seconds",
		Help:      "Duration of applying a batch to the clusterer.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network"})

	clusterCheckpointTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "checkpoint_total",
		Help:      "Count of checkpoint saves.",
	}, []string{"coin", "network", "status"})

	clusterCheckpointDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "checkpoint_duration_seconds",
		Help:      "Duration of a checkpoint save.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"coin", "network", "status"})

	clusterRestartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "fetch_restarts_total",
		Help:      "Count of fetch task restarts after a failure.",
	}, []string{"coin", "network"})

	clusterMalformedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "malformed_total",
		Help:      "Count of skipped malformed batches and groups.",
	}, []string{"coin", "network"})

	clusterCursor = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "cursor",
		Help:      "Next unprocessed upstream position.",
	}, []string{"coin", "network"})

	clusterEntities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cluster_service",
		Name:      "live_entities",
		Help:      "Number of live entities held by the clusterer.",
	}, []string{"coin", "network"})
)

// ClusterService tracks metrics for the entity clustering pipeline.
type ClusterService struct {
	coin    model.Coin
	network model.Network
}

// NewClusterService constructs a ClusterService collector.
func NewClusterService(coin model.Coin, network model.Network) *ClusterService {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &ClusterService{coin: coin, network: network}
}

// ObserveFetch records a fetch outcome and duration.
func (m ClusterService) ObserveFetch(err error, _ int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	clusterFetchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	clusterFetchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveApplyBatch records a batch applied to the clusterer.
func (m ClusterService) ObserveApplyBatch(groups int, started time.Time) {
	clusterBatchGroups.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(groups))
	clusterApplyDuration.WithLabelValues(string(m.coin), string(m.network)).Observe(time.Since(started).Seconds())
}

// ObserveCheckpoint records a checkpoint save.
func (m ClusterService) ObserveCheckpoint(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	clusterCheckpointTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	clusterCheckpointDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m ClusterService) IncRestart() {
	clusterRestartsTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
}

func (m ClusterService) IncMalformed() {
	clusterMalformedTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
}

// SetProgress publishes the current cursor and live entity count.
func (m ClusterService) SetProgress(cursor uint64, entities int) {
	clusterCursor.WithLabelValues(string(m.coin), string(m.network)).Set(float64(cursor))
	clusterEntities.WithLabelValues(string(m.coin), string(m.network)).Set(float64(entities))
}
