package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generatorFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pubkey_generator",
		Name:      "fetch_total",
		Help:      "Count of public-key address window fetches.",
	}, []string{"coin", "network", "status"})

	generatorFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pubkey_generator",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of a public-key address window fetch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	generatorKeysTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pubkey_generator",
		Name:      "keys_total",
		Help:      "Count of public keys seen, by validity.",
	}, []string{"coin", "network", "result"})

	generatorWriteTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pubkey_generator",
		Name:      "written_rows_total",
		Help:      "Count of generated address rows written.",
	}, []string{"coin", "network", "status"})
)

// PubkeyGenerator tracks metrics for derived address generation.
type PubkeyGenerator struct {
	coin    model.Coin
	network model.Network
}

func NewPubkeyGenerator(coin model.Coin, network model.Network) *PubkeyGenerator {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &PubkeyGenerator{coin: coin, network: network}
}

func (m PubkeyGenerator) ObserveFetch(err error, keys int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	generatorFetchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	generatorFetchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		generatorKeysTotal.WithLabelValues(string(m.coin), string(m.network), "seen").Add(float64(keys))
	}
}

func (m PubkeyGenerator) IncInvalidKey() {
	generatorKeysTotal.WithLabelValues(string(m.coin), string(m.network), "invalid").Inc()
}

func (m PubkeyGenerator) ObserveWrite(err error, rows int) {
	status := "success"
	if err != nil {
		status = "error"
	}
	generatorWriteTotal.WithLabelValues(string(m.coin), string(m.network), status).Add(float64(rows))
}
