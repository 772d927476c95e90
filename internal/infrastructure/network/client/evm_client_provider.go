package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"deploy_config/internal/app/port"
	"deploy_config/internal/config"
)

const (
	defaultProviderConnectionTimeout = 10 * time.Second
)

// dialFunc opens a client; replaced in tests.
type dialFunc func(ctx context.Context, network, url string, connectionTimeout, rpcCallTimeout time.Duration) (port.BlockchainClient, error)

// evmClientProvider implements the port.BlockchainClientProvider interface.
type evmClientProvider struct {
	clients           map[string]port.BlockchainClient
	mu                sync.Mutex
	logger            port.Logger
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
	dial              dialFunc
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(cfg *config.Config, log port.Logger) port.BlockchainClientProvider {
	connTimeout := time.Duration(cfg.Probe.ConnectionTimeoutMs) * time.Millisecond
	if connTimeout <= 0 {
		connTimeout = defaultProviderConnectionTimeout
	}
	return &evmClientProvider{
		clients:           make(map[string]port.BlockchainClient),
		logger:            log,
		connectionTimeout: connTimeout,
		rpcCallTimeout:    time.Duration(cfg.Probe.RPCCallTimeoutMs) * time.Millisecond,
		dial:              NewEVMClient,
	}
}

// GetClient retrieves a client for the network, dialing it on first use.
// Clients are cached by network and URL so a changed endpoint gets a fresh connection.
func (p *evmClientProvider) GetClient(ctx context.Context, network string, url string) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	clientKey := network + "|" + url
	if c, exists := p.clients[clientKey]; exists {
		p.logger.Debug("Returning cached EVM client", "network", network)
		return c, nil
	}

	p.logger.Debug("Creating new EVM client", "network", network)
	newClient, err := p.dial(ctx, network, url, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", network, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", network, err)
	}

	p.clients[clientKey] = newClient
	return newClient, nil
}

// CloseAll closes and forgets every cached client.
func (p *evmClientProvider) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, c := range p.clients {
		c.Close()
		delete(p.clients, key)
	}
}
