package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"deploy_config/internal/app/port"

	"github.com/ethereum/go-ethereum/ethclient"
)

// EVMClient implements the port.BlockchainClient interface for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	network        string
	rpcCallTimeout time.Duration
}

// NewEVMClient dials the network's RPC endpoint.
func NewEVMClient(ctx context.Context, network string, rpcURL string, connectionTimeout time.Duration, rpcCallTimeout time.Duration) (port.BlockchainClient, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	c, err := ethclient.DialContext(dialCtx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC for network %s: %w", network, err)
	}
	return &EVMClient{ethClient: c, network: network, rpcCallTimeout: rpcCallTimeout}, nil
}

// ChainID returns the chain ID reported by the node.
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	id, err := c.ethClient.ChainID(callCtx)
	if err != nil {
		return nil, fmt.Errorf("eth_chainId on %s: %w", c.network, err)
	}
	return id, nil
}

// BlockNumber returns the latest block number.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	n, err := c.ethClient.BlockNumber(callCtx)
	if err != nil {
		return 0, fmt.Errorf("eth_blockNumber on %s: %w", c.network, err)
	}
	return n, nil
}

// SuggestGasPrice returns the node's gas price suggestion in wei.
func (c *EVMClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	price, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice on %s: %w", c.network, err)
	}
	return price, nil
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}
