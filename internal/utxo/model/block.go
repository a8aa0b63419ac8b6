// Package model defines domain models for UTXO entity clustering.
package model

import "errors"

// ErrNoBlocks reports that no block qualifies, not even genesis.
var ErrNoBlocks = errors.New("no qualifying blocks")

// BlockStatus describes processing status of a block record.
type BlockStatus string

var (
	// BlockUnprocessed marks a block that has not been ingested yet.
	BlockUnprocessed BlockStatus = "unprocessed"
	// BlockProcessed marks a block that has been fully ingested.
	BlockProcessed BlockStatus = "processed"
)
