package clickhouse

import (
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

func (s *RepositorySuite) TestGraphStoreCreateAndLookup() {
	s.allowMetrics()
	store := s.repo.GraphStore(model.BTC, model.Mainnet)

	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "a", Label: "exchange"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "a", []model.Address{"a", "b", "c"}))
	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "x"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "x", []model.Address{"x", "y"}))

	links, err := store.EntitiesByAddresses(s.testCtx, []model.Address{"c", "b", "y", "unknown"})
	s.Require().NoError(err)
	s.Equal([]model.EntityLinks{
		{Entity: model.PersistedEntity{Key: "a", Label: "exchange"}, Addresses: []model.Address{"b", "c"}},
		{Entity: model.PersistedEntity{Key: "x"}, Addresses: []model.Address{"y"}},
	}, links)

	// Linking again is idempotent.
	s.Require().NoError(store.LinkAddresses(s.testCtx, "a", []model.Address{"a", "b", "c"}))
	links, err = store.EntitiesByAddresses(s.testCtx, []model.Address{"a", "b", "c"})
	s.Require().NoError(err)
	s.Require().Len(links, 1)
	s.Equal([]model.Address{"a", "b", "c"}, links[0].Addresses)

	// Other networks are isolated.
	other := s.repo.GraphStore(model.BTC, model.Testnet)
	links, err = other.EntitiesByAddresses(s.testCtx, []model.Address{"a"})
	s.Require().NoError(err)
	s.Empty(links)
}

func (s *RepositorySuite) TestGraphStoreMergeEntities() {
	s.allowMetrics()
	store := s.repo.GraphStore(model.BTC, model.Mainnet)

	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "1", Label: "alice"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "1", []model.Address{"1"}))
	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "2", Label: "bob"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "2", []model.Address{"2", "4"}))

	s.Require().NoError(store.MergeEntities(s.testCtx, model.PersistedEntity{Key: "1", Label: "alice+bob"}, []model.Address{"1", "2"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "1", []model.Address{"3"}))

	links, err := store.EntitiesByAddresses(s.testCtx, []model.Address{"1", "2", "3", "4"})
	s.Require().NoError(err)
	s.Equal([]model.EntityLinks{
		{Entity: model.PersistedEntity{Key: "1", Label: "alice+bob"}, Addresses: []model.Address{"1", "2", "3", "4"}},
	}, links)

	rows, err := s.repo.conn.Query(s.testCtx, "SELECT count() FROM utxo_entities FINAL WHERE entity_key = '2'")
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()
	var count uint64
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&count))
	s.Zero(count)
}

func (s *RepositorySuite) TestGraphStoreDeleteEntities() {
	s.allowMetrics()
	store := s.repo.GraphStore(model.BTC, model.Mainnet)

	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "a"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "a", []model.Address{"a", "b"}))
	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "k"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "k", []model.Address{"k", "l"}))

	s.Require().NoError(store.DeleteEntities(s.testCtx, []model.Address{"a"}))

	links, err := store.EntitiesByAddresses(s.testCtx, []model.Address{"a", "b", "k"})
	s.Require().NoError(err)
	s.Equal([]model.EntityLinks{
		{Entity: model.PersistedEntity{Key: "k"}, Addresses: []model.Address{"k"}},
	}, links)
}

func (s *RepositorySuite) TestGraphStoreLinkToMissingEntity() {
	s.allowMetrics()
	store := s.repo.GraphStore(model.BTC, model.Mainnet)

	s.Require().NoError(store.LinkAddresses(s.testCtx, "ghost", []model.Address{"g1", "g2"}))

	_, err := store.EntitiesByAddresses(s.testCtx, []model.Address{"g1"})
	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrUnexpectedTopology))
}

func (s *RepositorySuite) liveEntities(key model.Address) uint64 {
	var count uint64
	s.Require().NoError(s.repo.conn.QueryRow(s.testCtx,
		"SELECT count() FROM utxo_entities FINAL WHERE coin = ? AND network = ? AND entity_key = ?",
		model.BTC, model.Mainnet, key,
	).Scan(&count))
	return count
}

// A merge that stopped after relinking leaves the merged record without links.
func (s *RepositorySuite) TestGraphStoreDeleteOrphanEntitiesAfterInterruptedMerge() {
	s.allowMetrics()
	store := s.repo.GraphStore(model.BTC, model.Mainnet)

	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "1", Label: "alice"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "1", []model.Address{"1"}))
	s.Require().NoError(store.CreateEntity(s.testCtx, model.PersistedEntity{Key: "2", Label: "bob"}))
	s.Require().NoError(store.LinkAddresses(s.testCtx, "2", []model.Address{"2"}))

	s.Require().NoError(store.insertLinks(s.testCtx, []linkRow{{address: "2", entityKey: "1"}}, false))

	links, err := store.EntitiesByAddresses(s.testCtx, []model.Address{"1", "2"})
	s.Require().NoError(err)
	s.Len(links, 1)
	s.Equal(uint64(1), s.liveEntities("2"))

	deleted, err := store.DeleteOrphanEntities(s.testCtx)
	s.Require().NoError(err)
	s.Equal(1, deleted)
	s.Zero(s.liveEntities("2"))
	s.Equal(uint64(1), s.liveEntities("1"))

	deleted, err = store.DeleteOrphanEntities(s.testCtx)
	s.Require().NoError(err)
	s.Zero(deleted)
}
