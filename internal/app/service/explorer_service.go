package service

import (
	"context"

	"deploy_config/internal/app/port"
	"deploy_config/internal/config"
	"deploy_config/internal/domain/entity"
	"deploy_config/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// explorerServiceImpl implements the port.ExplorerService interface.
type explorerServiceImpl struct {
	logger      *zap.Logger
	configs     port.ConfigProvider
	definitions port.NetworkDefinitionProvider
	client      port.ExplorerClient
	apiURLs     map[string]string
	limiter     *rate.Limiter
}

// NewExplorerService creates a new instance of the explorer credential service.
func NewExplorerService(
	logger *zap.Logger,
	cfg *config.Config,
	configs port.ConfigProvider,
	definitions port.NetworkDefinitionProvider,
	client port.ExplorerClient,
) port.ExplorerService {
	return &explorerServiceImpl{
		logger:      logger.Named("ExplorerService"),
		configs:     configs,
		definitions: definitions,
		client:      client,
		apiURLs:     cfg.Explorer.APIURLs,
		limiter:     rate.NewLimiter(rate.Limit(cfg.Explorer.RateLimit), cfg.Explorer.BurstLimit),
	}
}

type checkKey struct {
	apiURL string
	apiKey string
}

type checkOutcome struct {
	status  entity.CredentialStatus
	message string
}

// CheckAll checks every explorer credential. Empty keys are reported as missing
// without a request, and an API/key pair shared by several entries is checked once.
func (s *explorerServiceImpl) CheckAll(ctx context.Context) []entity.ExplorerCheckResult {
	cfg := s.configs.GetConfig()
	defs := s.definitions.GetExplorerDefinitions()
	results := make([]entity.ExplorerCheckResult, 0, len(defs))
	seen := make(map[checkKey]checkOutcome)

	for _, def := range defs {
		apiURL := def.APIURL
		if override, ok := s.apiURLs[def.Key]; ok && override != "" {
			apiURL = override
		}
		res := entity.ExplorerCheckResult{Explorer: def.Key, APIURL: apiURL}

		apiKey, _ := cfg.ExplorerKey(def.Key)
		if apiKey == "" {
			res.Status = entity.CredentialMissing
			res.Message = def.EnvVar + " is not set"
			results = append(results, s.count(res))
			continue
		}

		key := checkKey{apiURL: apiURL, apiKey: apiKey}
		if prev, ok := seen[key]; ok {
			res.Status, res.Message = prev.status, prev.message
			results = append(results, s.count(res))
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			res.Status = entity.CredentialError
			res.Message = err.Error()
			results = append(results, s.count(res))
			continue
		}

		status, msg, err := s.client.CheckAPIKey(ctx, apiURL, apiKey)
		if err != nil {
			s.logger.Warn("Explorer key check failed", zap.String("explorer", def.Key), zap.Error(err))
			status, msg = entity.CredentialError, err.Error()
		} else {
			seen[key] = checkOutcome{status: status, message: msg}
		}
		res.Status, res.Message = status, msg
		results = append(results, s.count(res))
	}
	return results
}

func (s *explorerServiceImpl) count(res entity.ExplorerCheckResult) entity.ExplorerCheckResult {
	metrics.ExplorerChecksTotal.WithLabelValues(res.Explorer, string(res.Status)).Inc()
	return res
}
