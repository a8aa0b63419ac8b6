// Package persister reconciles in-memory clusters with the persistent entity graph.
package persister

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-entities/pkg/workerpool"
)

// ErrUnexpectedTopology marks store data that cannot be reconciled. Affected clusters are skipped.
var ErrUnexpectedTopology = model.ErrUnexpectedTopology

// Outcome is the result of reconciling one cluster.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeExtended  Outcome = "extended"
	OutcomeMerged    Outcome = "merged"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
)

// Report counts reconcile outcomes of a Persist call, plus the entity records without addresses it removed.
type Report struct {
	Created   int
	Extended  int
	Merged    int
	Unchanged int
	Skipped   int
	Orphans   int
}

// Total returns the number of reconciled clusters.
func (r Report) Total() int {
	return r.Created + r.Extended + r.Merged + r.Unchanged + r.Skipped
}

func (r *Report) add(o Outcome) {
	switch o {
	case OutcomeCreated:
		r.Created++
	case OutcomeExtended:
		r.Extended++
	case OutcomeMerged:
		r.Merged++
	case OutcomeUnchanged:
		r.Unchanged++
	case OutcomeSkipped:
		r.Skipped++
	}
}

// Option configures a Persister.
type Option func(*Persister)

// WithWorkers sets how many clusters are reconciled concurrently. Clusters reconciled at the same time must
// not share persisted entities, which holds when the store only contains entities from earlier, smaller runs.
func WithWorkers(n int) Option {
	return func(p *Persister) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithBackOff replaces the retry policy applied to every store operation.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(p *Persister) {
		p.newBackOff = newBackOff
	}
}

// Persister writes clusters into a GraphStore.
type Persister struct {
	store      GraphStore
	metrics    Metrics
	logger     *zap.Logger
	workers    int
	newBackOff func() backoff.BackOff
}

func New(store GraphStore, metrics Metrics, logger *zap.Logger, opts ...Option) (*Persister, error) {
	if store == nil {
		return nil, errors.New("graph store is required")
	}
	if metrics == nil {
		return nil, errors.New("graph persister metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Persister{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("persister"),
		workers: defaultWorkerCount,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = defaultRetryInitialInterval
			b.MaxInterval = defaultRetryMaxInterval
			return backoff.WithMaxRetries(b, defaultMaxRetries)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Persist reconciles every cluster with more than one address, then deletes entity records left without
// addresses by an earlier interrupted merge or create. Clusters hitting ErrUnexpectedTopology are skipped; any
// other store failure that survives retries stops the run.
func (p *Persister) Persist(ctx context.Context, clusters []model.Cluster) (report Report, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObservePersist(err, len(clusters), started)
	}()

	work := make([]model.Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Addresses) > 1 {
			work = append(work, c)
		}
	}
	p.logger.Info("persisting clusters", zap.Int("clusters", len(work)), zap.Int("workers", p.workers))

	var mu sync.Mutex
	err = workerpool.Process(ctx, p.workers, work, func(ctx context.Context, c model.Cluster) error {
		outcome, err := p.Reconcile(ctx, c.Addresses)
		if err != nil {
			return fmt.Errorf("reconcile cluster %q: %w", c.Key(), err)
		}
		mu.Lock()
		report.add(outcome)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return report, err
	}

	err = p.retry(ctx, func(ctx context.Context) error {
		var sweepErr error
		report.Orphans, sweepErr = p.store.DeleteOrphanEntities(ctx)
		return sweepErr
	})
	if err != nil {
		return report, fmt.Errorf("delete orphan entities: %w", err)
	}
	p.logger.Info("clusters persisted",
		zap.Int("created", report.Created),
		zap.Int("extended", report.Extended),
		zap.Int("merged", report.Merged),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("skipped", report.Skipped),
		zap.Int("orphans", report.Orphans),
	)
	return report, nil
}

// Reconcile brings the store in line with one cluster:
//   - no linked entity: create one keyed by the smallest address and link every address;
//   - one linked entity: link the addresses it is missing;
//   - several linked entities: merge them into the one with the smallest key, then link the rest.
func (p *Persister) Reconcile(ctx context.Context, addresses []model.Address) (outcome Outcome, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveReconcile(string(outcome), err, started)
	}()

	addrs := model.DistinctAddresses(addresses)
	if len(addrs) < 2 {
		return OutcomeSkipped, nil
	}

	var found []model.EntityLinks
	err = p.retry(ctx, func(ctx context.Context) error {
		var lookupErr error
		found, lookupErr = p.store.EntitiesByAddresses(ctx, addrs)
		return lookupErr
	})
	if err == nil {
		err = checkTopology(found)
	}
	if errors.Is(err, ErrUnexpectedTopology) {
		p.logger.Warn("skipping cluster with unexpected topology",
			zap.String("key", addrs[0]),
			zap.Int("addresses", len(addrs)),
			zap.Error(err),
		)
		return OutcomeSkipped, nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup entities: %w", err)
	}

	switch len(found) {
	case 0:
		return p.create(ctx, addrs)
	case 1:
		return p.extend(ctx, found[0], addrs)
	default:
		return p.merge(ctx, found, addrs)
	}
}

func (p *Persister) create(ctx context.Context, addrs []model.Address) (Outcome, error) {
	entity := model.PersistedEntity{Key: addrs[0]}
	if err := p.retry(ctx, func(ctx context.Context) error {
		return p.store.CreateEntity(ctx, entity)
	}); err != nil {
		return "", fmt.Errorf("create entity: %w", err)
	}
	if err := p.link(ctx, entity.Key, addrs); err != nil {
		return "", err
	}
	return OutcomeCreated, nil
}

func (p *Persister) extend(ctx context.Context, existing model.EntityLinks, addrs []model.Address) (Outcome, error) {
	missing := unlinked(addrs, existing)
	if len(missing) == 0 {
		return OutcomeUnchanged, nil
	}
	if err := p.link(ctx, existing.Entity.Key, missing); err != nil {
		return "", err
	}
	return OutcomeExtended, nil
}

func (p *Persister) merge(ctx context.Context, found []model.EntityLinks, addrs []model.Address) (Outcome, error) {
	keys := make([]model.Address, 0, len(found))
	labels := make([]string, 0, len(found))
	for _, f := range found {
		keys = append(keys, f.Entity.Key)
		labels = append(labels, f.Entity.Label)
	}
	// found is ordered by key, so the first entity survives.
	survivor := model.PersistedEntity{Key: keys[0], Label: MergeLabels(labels...)}

	p.logger.Debug("merging entities", zap.String("survivor", survivor.Key), zap.Strings("merged", keys[1:]))
	if err := p.retry(ctx, func(ctx context.Context) error {
		return p.store.MergeEntities(ctx, survivor, keys)
	}); err != nil {
		return "", fmt.Errorf("merge entities: %w", err)
	}

	if missing := unlinked(addrs, found...); len(missing) > 0 {
		if err := p.link(ctx, survivor.Key, missing); err != nil {
			return "", err
		}
	}
	return OutcomeMerged, nil
}

func (p *Persister) link(ctx context.Context, key model.Address, addrs []model.Address) error {
	if err := p.retry(ctx, func(ctx context.Context) error {
		return p.store.LinkAddresses(ctx, key, addrs)
	}); err != nil {
		return fmt.Errorf("link addresses: %w", err)
	}
	return nil
}

// Reset deletes every entity linked to any of addrs, with all of their links. It returns the number of
// deleted entities.
func (p *Persister) Reset(ctx context.Context, addrs []model.Address) (int, error) {
	addrs = model.DistinctAddresses(addrs)
	if len(addrs) == 0 {
		return 0, nil
	}

	var found []model.EntityLinks
	if err := p.retry(ctx, func(ctx context.Context) error {
		var err error
		found, err = p.store.EntitiesByAddresses(ctx, addrs)
		return err
	}); err != nil {
		return 0, fmt.Errorf("lookup entities: %w", err)
	}
	if len(found) == 0 {
		return 0, nil
	}

	keys := make([]model.Address, 0, len(found))
	for _, f := range found {
		keys = append(keys, f.Entity.Key)
	}
	if err := p.retry(ctx, func(ctx context.Context) error {
		return p.store.DeleteEntities(ctx, keys)
	}); err != nil {
		return 0, fmt.Errorf("delete entities: %w", err)
	}

	p.logger.Info("entities deleted", zap.Int("entities", len(keys)))
	return len(keys), nil
}

// retry runs op under the retry policy. Cancellation and topology errors are not retried.
func (p *Persister) retry(ctx context.Context, op func(context.Context) error) error {
	attempt := 0
	return backoff.Retry(func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrUnexpectedTopology) {
			return backoff.Permanent(err)
		}
		p.logger.Warn("graph store operation failed", zap.Int("attempt", attempt), zap.Error(err))
		return err
	}, backoff.WithContext(p.newBackOff(), ctx))
}

func checkTopology(found []model.EntityLinks) error {
	for _, f := range found {
		if f.Entity.Key == "" {
			return fmt.Errorf("%w: entity with empty key", ErrUnexpectedTopology)
		}
		if len(f.Addresses) == 0 {
			return fmt.Errorf("%w: entity %q without linked addresses", ErrUnexpectedTopology, f.Entity.Key)
		}
	}
	return nil
}

// unlinked returns the addresses of addrs that none of the entities links.
func unlinked(addrs []model.Address, entities ...model.EntityLinks) []model.Address {
	linked := make(map[model.Address]struct{})
	for _, e := range entities {
		for _, a := range e.Addresses {
			linked[a] = struct{}{}
		}
	}
	var missing []model.Address
	for _, a := range addrs {
		if _, ok := linked[a]; !ok {
			missing = append(missing, a)
		}
	}
	return missing
}
