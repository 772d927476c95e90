package entity

import "errors"

var (
	ErrUnknownNetwork  = errors.New("unknown network")
	ErrNoEndpoint      = errors.New("network has no RPC endpoint")
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)
