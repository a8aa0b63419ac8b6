// Package pubkey derives spendable addresses from raw public-key addresses.
//
// Pay-to-pubkey outputs are recorded under a synthetic address "pk_<hex>", optionally followed by
// " OP_CHECKSIG". The same key controls the P2PKH and P2WPKH addresses derived here, so they belong
// to the same entity.
package pubkey

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// Prefix marks raw public-key addresses.
const Prefix = "pk_"

// ErrNotPublicKey is returned for addresses that do not carry a parseable public key.
var ErrNotPublicKey = errors.New("not a public key address")

// Deriver derives addresses for one network.
type Deriver struct {
	params *chaincfg.Params
}

// NewDeriver builds a Deriver for network.
func NewDeriver(network model.Network) (*Deriver, error) {
	params, err := ParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &Deriver{params: params}, nil
}

// IsPublicKey reports whether addr uses the raw public-key form.
func IsPublicKey(addr model.Address) bool {
	return strings.HasPrefix(addr, Prefix)
}

// Derive returns the P2PKH address of the key as serialized in addr and the P2WPKH address of its compressed form.
// Only PublicKey, Address and Kind are set on the results.
func (d *Deriver) Derive(addr model.Address) ([]model.GeneratedAddress, error) {
	if !IsPublicKey(addr) {
		return nil, fmt.Errorf("%w: %q", ErrNotPublicKey, addr)
	}
	keyHex := strings.TrimPrefix(addr, Prefix)
	if i := strings.IndexAny(keyHex, " _"); i >= 0 {
		keyHex = keyHex[:i]
	}

	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: decode hex: %v", ErrNotPublicKey, err)
	}
	key, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parse key: %v", ErrNotPublicKey, err)
	}

	p2pkh, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(raw), d.params)
	if err != nil {
		return nil, fmt.Errorf("derive p2pkh: %w", err)
	}
	p2wpkh, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(key.SerializeCompressed()), d.params)
	if err != nil {
		return nil, fmt.Errorf("derive p2wpkh: %w", err)
	}

	return []model.GeneratedAddress{
		{PublicKey: addr, Address: p2pkh.EncodeAddress(), Kind: model.GeneratedP2PKH},
		{PublicKey: addr, Address: p2wpkh.EncodeAddress(), Kind: model.GeneratedP2WPKH},
	}, nil
}
