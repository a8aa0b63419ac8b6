package model

// GeneratedKind names the script type of an address derived from a public key.
type GeneratedKind string

var (
	GeneratedP2PKH  GeneratedKind = "p2pkh"
	GeneratedP2WPKH GeneratedKind = "p2wpkh"
)

// GeneratedAddress links a raw public-key address to an address derived from the same key.
type GeneratedAddress struct {
	Coin        Coin
	Network     Network
	BlockHeight uint64
	PublicKey   Address
	Address     Address
	Kind        GeneratedKind
}

// PublicKeyAddress is a raw public-key address seen in an output at a block height.
type PublicKeyAddress struct {
	BlockHeight uint64
	Address     Address
}
