package port

import (
	"context"
	"math/big"

	"deploy_config/internal/domain/entity"
)

// BlockchainClient defines the read-only RPC calls used to probe a network.
type BlockchainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	Close()
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all known definitions sorted by identifier.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a definition by its identifier.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)

	// GetExplorerDefinitions returns all explorer API definitions sorted by key.
	GetExplorerDefinitions() []entity.ExplorerDefinition
}

// BlockchainClientProvider defines the interface for providing blockchain clients.
type BlockchainClientProvider interface {
	GetClient(ctx context.Context, network string, url string) (BlockchainClient, error)
	CloseAll()
}

// ProbeService probes configured RPC endpoints.
type ProbeService interface {
	Probe(ctx context.Context, network string) (entity.ProbeResult, error)
	ProbeAll(ctx context.Context, networks []string) []entity.ProbeResult
}
