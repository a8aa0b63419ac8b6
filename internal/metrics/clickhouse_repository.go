package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "entity_store",
		Name:      "operations_total",
		Help:      "Count of ClickHouse operations by the entity tooling.",
	}, []string{"operation", "coin", "network", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "entity_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ClickHouse operations by the entity tooling.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"operation", "coin", "network", "status"})
	storeRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "entity_store",
		Name:      "rows_total",
		Help:      "Rows read or written by successful ClickHouse operations.",
	}, []string{"operation", "coin", "network"})
)

// ClickhouseRepository tracks the source and graph store queries issued against ClickHouse.
type ClickhouseRepository struct{}

func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records one operation. Rows are only counted when the operation succeeded.
func (m ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, rows int, err error, started time.Time) {
	c, n := labelOrUnknown(string(coin)), labelOrUnknown(string(network))
	status := statusOf(err)

	storeOperationsTotal.WithLabelValues(operation, c, n, status).Inc()
	storeOperationDuration.WithLabelValues(operation, c, n, status).Observe(time.Since(started).Seconds())
	if err == nil && rows > 0 {
		storeRowsTotal.WithLabelValues(operation, c, n).Add(float64(rows))
	}
}
