package clickhouse

import (
	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

func (s *RepositorySuite) TestMaxContiguousBlockHeightByStatus() {
	s.seedBlocks([]testBlock{
		{Height: 0, Status: model.BlockProcessed},
		{Height: 1, Status: model.BlockProcessed},
		{Height: 2, Status: model.BlockProcessed},
		{Height: 3, Status: model.BlockUnprocessed},
		{Height: 4, Status: model.BlockProcessed},
		{Height: 6, Status: model.BlockProcessed},
	})

	s.metrics.EXPECT().Observe("max_contiguous_block_height_by_status", model.BTC, model.Mainnet, 1, gomock.Nil(), gomock.Any()).Times(2)

	height, err := s.repo.MaxContiguousBlockHeightByStatuses(s.testCtx, model.BTC, model.Mainnet, []model.BlockStatus{model.BlockProcessed})
	s.Require().NoError(err)
	s.Equal(uint64(2), height)

	height, err = s.repo.MaxContiguousBlockHeightByStatuses(s.testCtx, model.BTC, model.Mainnet, []model.BlockStatus{model.BlockUnprocessed, model.BlockProcessed})
	s.Require().NoError(err)
	s.Equal(uint64(4), height)
}

func (s *RepositorySuite) TestMaxContiguousBlockHeightByStatusWithoutGenesis() {
	s.metrics.EXPECT().Observe("max_contiguous_block_height_by_status", model.BTC, model.Mainnet, 1, gomock.Any(), gomock.Any()).Times(3)

	_, err := s.repo.MaxContiguousBlockHeightByStatuses(s.testCtx, model.BTC, model.Mainnet, []model.BlockStatus{model.BlockProcessed})
	s.Require().ErrorIs(err, model.ErrNoBlocks)

	s.seedBlocks([]testBlock{
		{Height: 0, Status: model.BlockUnprocessed},
		{Height: 1, Status: model.BlockProcessed},
	})
	_, err = s.repo.MaxContiguousBlockHeightByStatuses(s.testCtx, model.BTC, model.Mainnet, []model.BlockStatus{model.BlockProcessed})
	s.Require().ErrorIs(err, model.ErrNoBlocks)

	height, err := s.repo.MaxContiguousBlockHeightByStatuses(s.testCtx, model.BTC, model.Mainnet, []model.BlockStatus{model.BlockUnprocessed, model.BlockProcessed})
	s.Require().NoError(err)
	s.Equal(uint64(1), height)
}
