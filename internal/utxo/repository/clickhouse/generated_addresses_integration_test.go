package clickhouse

import (
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

func (s *RepositorySuite) TestGeneratedAddresses() {
	s.allowMetrics()

	s.seedOutputs([]testOutput{
		{Height: 1, TxID: txid("01"), Index: 0, Addresses: []string{"pk_aa"}},
		{Height: 2, TxID: txid("02"), Index: 0, Addresses: []string{"pk_bb"}},
		{Height: 2, TxID: txid("02"), Index: 1, Addresses: []string{"1Regular"}},
		{Height: 3, TxID: txid("03"), Index: 0, Addresses: []string{"pk_aa"}},
		{Height: 9, TxID: txid("09"), Index: 0, Addresses: []string{"pk_cc"}},
	})

	keys, err := s.repo.PublicKeyAddressesByHeightRange(s.testCtx, model.BTC, model.Mainnet, 0, 5)
	s.Require().NoError(err)
	s.Equal([]model.PublicKeyAddress{
		{BlockHeight: 1, Address: "pk_aa"},
		{BlockHeight: 2, Address: "pk_bb"},
	}, keys)

	s.Require().NoError(s.repo.InsertGeneratedAddresses(s.testCtx, []model.GeneratedAddress{
		{Coin: model.BTC, Network: model.Mainnet, BlockHeight: 1, PublicKey: "pk_aa", Address: "1Aa", Kind: model.GeneratedP2PKH},
		{Coin: model.BTC, Network: model.Mainnet, BlockHeight: 1, PublicKey: "pk_aa", Address: "bc1aa", Kind: model.GeneratedP2WPKH},
	}))
	s.Equal(uint64(2), s.countRows("utxo_generated_addresses"))

	keys, err = s.repo.PublicKeyAddressesByHeightRange(s.testCtx, model.BTC, model.Mainnet, 0, 5)
	s.Require().NoError(err)
	s.Equal([]model.PublicKeyAddress{{BlockHeight: 2, Address: "pk_bb"}}, keys)

	groups, err := s.repo.GeneratedAddressGroupsByHeightRange(s.testCtx, model.BTC, model.Mainnet, 0, 5)
	s.Require().NoError(err)
	s.Require().Len(groups, 1)
	s.Equal("pk_aa", groups[0].TxID)
	s.Equal("pk_aa", groups[0].Addresses[0])
	s.ElementsMatch([]string{"pk_aa", "1Aa", "bc1aa"}, groups[0].Addresses)

	groups, err = s.repo.GeneratedAddressGroupsByHeightRange(s.testCtx, model.BTC, model.Mainnet, 2, 5)
	s.Require().NoError(err)
	s.Empty(groups)
}
