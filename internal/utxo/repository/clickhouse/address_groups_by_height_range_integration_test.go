package clickhouse

import (
	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

func (s *RepositorySuite) TestAddressGroupsByHeightRange() {
	s.seedInputs([]testInput{
		{Height: 10, TxID: txid("c0"), Index: 0, IsCoinbase: true, Addresses: []string{}},
		{Height: 10, TxID: txid("b1"), Index: 0, Addresses: []string{"addr-b"}},
		{Height: 10, TxID: txid("b1"), Index: 1, Addresses: []string{"addr-a"}},
		{Height: 10, TxID: txid("b1"), Index: 2, Addresses: []string{"addr-a"}},
		{Height: 11, TxID: txid("a2"), Index: 0, Addresses: []string{"addr-c"}},
		{Height: 11, TxID: txid("a2"), Index: 1, Addresses: []string{"addr-d"}},
		{Height: 11, TxID: txid("a3"), Index: 0, Addresses: []string{"addr-e"}},
		{Height: 12, TxID: txid("a4"), Index: 0, Addresses: []string{"addr-x"}},
		{Height: 12, TxID: txid("a4"), Index: 1, Addresses: []string{"addr-y"}},
	})

	s.metrics.EXPECT().Observe("address_groups_by_height_range", model.BTC, model.Mainnet, 2, gomock.Nil(), gomock.Any()).Times(1)

	groups, err := s.repo.AddressGroupsByHeightRange(s.testCtx, model.BTC, model.Mainnet, 10, 12)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)

	s.Equal(txid("b1"), groups[0].TxID)
	s.ElementsMatch([]string{"addr-a", "addr-b"}, groups[0].Addresses)
	s.Equal(txid("a2"), groups[1].TxID)
	s.ElementsMatch([]string{"addr-c", "addr-d"}, groups[1].Addresses)
}
