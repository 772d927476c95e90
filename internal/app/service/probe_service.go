package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deploy_config/internal/app/port"
	"deploy_config/internal/config"
	"deploy_config/internal/domain/entity"
	"deploy_config/internal/pkg/metrics"
	"deploy_config/internal/pkg/utils"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// probeServiceImpl implements the port.ProbeService interface.
type probeServiceImpl struct {
	logger        *zap.Logger
	configs       port.ConfigProvider
	definitions   port.NetworkDefinitionProvider
	clients       port.BlockchainClientProvider
	resultsCache  *cache.Cache // key "network|url" -> entity.ProbeResult
	limiter       *rate.Limiter
	maxConcurrent int
	now           func() time.Time
}

// NewProbeService creates a new instance of the probe service.
func NewProbeService(
	logger *zap.Logger,
	cfg *config.Config,
	configs port.ConfigProvider,
	definitions port.NetworkDefinitionProvider,
	clients port.BlockchainClientProvider,
) port.ProbeService {
	ttl := time.Duration(cfg.Probe.CacheTTLSeconds) * time.Second
	return &probeServiceImpl{
		logger:        logger.Named("ProbeService"),
		configs:       configs,
		definitions:   definitions,
		clients:       clients,
		resultsCache:  cache.New(ttl, 2*ttl),
		limiter:       rate.NewLimiter(rate.Limit(cfg.Probe.RateLimit), cfg.Probe.BurstLimit),
		maxConcurrent: cfg.Probe.MaxConcurrent,
		now:           time.Now,
	}
}

// Probe checks one network's endpoint. Endpoint failures are reported in the
// result; an error is returned only for unknown networks or a cancelled context.
func (s *probeServiceImpl) Probe(ctx context.Context, network string) (entity.ProbeResult, error) {
	profile, ok := s.configs.GetConfig().Network(network)
	if !ok {
		return entity.ProbeResult{}, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network)
	}
	def, _ := s.definitions.GetNetworkDefinitionByName(network)

	cacheKey := network + "|" + profile.URL
	if cached, found := s.resultsCache.Get(cacheKey); found {
		metrics.ProbeCacheHits.Inc()
		return cached.(entity.ProbeResult), nil
	}

	result := entity.ProbeResult{
		Network:         network,
		ExpectedChainID: def.ChainID,
		CheckedAt:       s.now(),
	}
	if profile.GasPrice > 0 {
		result.ConfiguredGas = utils.FormatUint64WeiAsGwei(profile.GasPrice)
	}

	if !profile.HasEndpoint() {
		result.Status = entity.ProbeSkipped
		result.Error = entity.ErrNoEndpoint.Error()
		s.record(cacheKey, result)
		return result, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return entity.ProbeResult{}, fmt.Errorf("probe of %s cancelled: %w", network, err)
	}

	start := time.Now()
	err := s.query(ctx, network, profile.URL, &result)
	result.Latency = time.Since(start)
	metrics.ProbeDuration.WithLabelValues(network).Observe(result.Latency.Seconds())

	switch {
	case err == nil:
		result.Status = entity.ProbeOK
	case errors.Is(err, entity.ErrChainIDMismatch):
		result.Status = entity.ProbeMismatch
		result.Error = err.Error()
	default:
		if ctx.Err() != nil {
			return entity.ProbeResult{}, fmt.Errorf("probe of %s cancelled: %w", network, ctx.Err())
		}
		result.Status = entity.ProbeFailed
		result.Error = err.Error()
		s.logger.Warn("RPC probe failed", zap.String("network", network), zap.Error(err))
	}

	s.record(cacheKey, result)
	return result, nil
}

func (s *probeServiceImpl) query(ctx context.Context, network, url string, result *entity.ProbeResult) error {
	client, err := s.clients.GetClient(ctx, network, url)
	if err != nil {
		return err
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return err
	}
	result.ChainID = chainID.Uint64()

	if block, err := client.BlockNumber(ctx); err == nil {
		result.BlockNumber = block
	} else {
		s.logger.Debug("Block number unavailable", zap.String("network", network), zap.Error(err))
	}
	if price, err := client.SuggestGasPrice(ctx); err == nil {
		result.SuggestedGasPrice = utils.FormatWeiAsGwei(price)
	} else {
		s.logger.Debug("Gas price suggestion unavailable", zap.String("network", network), zap.Error(err))
	}

	if result.ExpectedChainID != 0 && result.ChainID != result.ExpectedChainID {
		return fmt.Errorf("%w: expected %d, got %d", entity.ErrChainIDMismatch, result.ExpectedChainID, result.ChainID)
	}
	return nil
}

func (s *probeServiceImpl) record(cacheKey string, result entity.ProbeResult) {
	metrics.ProbesTotal.WithLabelValues(result.Network, string(result.Status)).Inc()
	if result.Status != entity.ProbeFailed {
		s.resultsCache.Set(cacheKey, result, cache.DefaultExpiration)
	}
}

// ProbeAll probes the given networks concurrently, or every configured network
// when none are named. Results keep the order of the request.
func (s *probeServiceImpl) ProbeAll(ctx context.Context, networks []string) []entity.ProbeResult {
	if len(networks) == 0 {
		networks = utils.SortedKeys(s.configs.GetConfig().Networks)
	}
	networks = utils.Dedupe(networks)

	results := make([]entity.ProbeResult, len(networks))
	eg, egCtx := errgroup.WithContext(ctx)
	if s.maxConcurrent > 0 {
		eg.SetLimit(s.maxConcurrent)
	}

	for i, network := range networks {
		i, network := i, network
		eg.Go(func() error {
			res, err := s.Probe(egCtx, network)
			if err != nil {
				res = entity.ProbeResult{
					Network:   network,
					Status:    entity.ProbeFailed,
					Error:     err.Error(),
					CheckedAt: s.now(),
				}
			}
			results[i] = res
			return nil // per-network failures live in the result
		})
	}
	_ = eg.Wait()

	s.logger.Info("Probe run finished", zap.Int("networks", len(networks)))
	return results
}
