package client

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"deploy_config/internal/app/port"
	"deploy_config/internal/config"
	"deploy_config/internal/pkg/logger"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rpcRequest struct {
	ID     jsoniter.RawMessage `json:"id"`
	Method string              `json:"method"`
}

func newRPCServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]any{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEVMClientCalls(t *testing.T) {
	srv := newRPCServer(t, map[string]string{
		"eth_chainId":     "0x38",
		"eth_blockNumber": "0x10",
		"eth_gasPrice":    "0x4a817c800",
	})

	c, err := NewEVMClient(context.Background(), "bscMain", srv.URL, time.Second, time.Second)
	require.NoError(t, err)
	defer c.Close()

	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(56), id.Uint64())

	n, err := c.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), n)

	price, err := c.SuggestGasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20000000000", price.String())
}

func TestEVMClientRPCError(t *testing.T) {
	srv := newRPCServer(t, map[string]string{})

	c, err := NewEVMClient(context.Background(), "mainnet", srv.URL, time.Second, time.Second)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.ChainID(context.Background())
	assert.ErrorContains(t, err, "eth_chainId on mainnet")
}

type stubClient struct {
	closed atomic.Bool
}

func (s *stubClient) ChainID(context.Context) (*big.Int, error)         { return big.NewInt(1), nil }
func (s *stubClient) BlockNumber(context.Context) (uint64, error)       { return 1, nil }
func (s *stubClient) SuggestGasPrice(context.Context) (*big.Int, error) { return big.NewInt(1), nil }
func (s *stubClient) Close()                                            { s.closed.Store(true) }

func TestProviderCachesClients(t *testing.T) {
	p := NewEVMClientProvider(config.Default(), logger.NewSlogAdapter()).(*evmClientProvider)

	var dials int
	var made []*stubClient
	p.dial = func(_ context.Context, _, _ string, connTimeout, callTimeout time.Duration) (port.BlockchainClient, error) {
		dials++
		assert.Equal(t, 10*time.Second, connTimeout)
		assert.Equal(t, 5*time.Second, callTimeout)
		c := &stubClient{}
		made = append(made, c)
		return c, nil
	}

	a, err := p.GetClient(context.Background(), "mainnet", "http://a")
	require.NoError(t, err)
	b, err := p.GetClient(context.Background(), "mainnet", "http://a")
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = p.GetClient(context.Background(), "mainnet", "http://other")
	require.NoError(t, err)
	assert.Equal(t, 2, dials)

	p.CloseAll()
	for _, c := range made {
		assert.True(t, c.closed.Load())
	}
	assert.Empty(t, p.clients)
}

func TestProviderDialError(t *testing.T) {
	p := NewEVMClientProvider(config.Default(), logger.NewSlogAdapter()).(*evmClientProvider)
	p.dial = func(context.Context, string, string, time.Duration, time.Duration) (port.BlockchainClient, error) {
		return nil, errors.New("boom")
	}

	_, err := p.GetClient(context.Background(), "rinkeby", "http://x")
	assert.ErrorContains(t, err, "rinkeby")
	assert.Empty(t, p.clients)
}
