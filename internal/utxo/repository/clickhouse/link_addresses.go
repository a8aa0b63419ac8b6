package clickhouse

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// LinkAddresses points every address in addrs at the entity key, replacing any previous link.
func (s *GraphStore) LinkAddresses(ctx context.Context, key model.Address, addrs []model.Address) error {
	start := time.Now()
	var err error
	defer func() {
		s.observe("link_addresses", len(addrs), err, start)
	}()

	if key == "" {
		err = errors.New("entity key is required")
		return err
	}

	links := make([]linkRow, 0, len(addrs))
	for _, addr := range addrs {
		links = append(links, linkRow{address: addr, entityKey: key})
	}
	err = s.insertLinks(ctx, links, false)
	return err
}
