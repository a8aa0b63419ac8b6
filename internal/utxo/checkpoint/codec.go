package checkpoint

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

const formatVersion byte = 1

var magic = []byte("BI7KCKPT")

// ErrCorrupt reports a checkpoint file that cannot be decoded or holds an invalid state.
var ErrCorrupt = errors.New("corrupt checkpoint")

func encode(cp *Checkpoint) ([]byte, error) {
	raw, err := msgpack.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("marshal checkpoint: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()

	header := make([]byte, 0, len(magic)+1)
	header = append(header, magic...)
	header = append(header, formatVersion)
	return enc.EncodeAll(raw, header), nil
}

func decode(data []byte) (*Checkpoint, error) {
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	if v := data[len(magic)]; v != formatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, v)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data[len(magic)+1:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	var cp Checkpoint
	if err := msgpack.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrCorrupt, err)
	}
	return &cp, nil
}
