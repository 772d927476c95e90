package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"deploy_config/internal/app/port"
	"deploy_config/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// probeAddress is queried for its balance; any address works for a key check.
const probeAddress = "0x0000000000000000000000000000000000000000"

// explorerEnvelope is the response shape shared by the etherscan-family APIs.
type explorerEnvelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Result  jsoniter.RawMessage `json:"result"`
}

// explorerClientImpl is the fasthttp implementation of port.ExplorerClient.
type explorerClientImpl struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewExplorerClient creates a new explorer API client.
func NewExplorerClient(timeout time.Duration, logger *zap.Logger) port.ExplorerClient {
	return &explorerClientImpl{
		client:  &fasthttp.Client{Name: "deploy_config"},
		timeout: timeout,
		logger:  logger.Named("ExplorerClient"),
	}
}

// CheckAPIKey performs an authenticated balance lookup and classifies the answer.
// The returned error covers transport and decoding problems only.
func (c *explorerClientImpl) CheckAPIKey(ctx context.Context, apiURL string, apiKey string) (entity.CredentialStatus, string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return entity.CredentialError, "", fmt.Errorf("invalid explorer URL %s: %w", apiURL, err)
	}
	q := u.Query()
	q.Set("module", "account")
	q.Set("action", "balance")
	q.Set("address", probeAddress)
	q.Set("tag", "latest")
	q.Set("apikey", apiKey)
	u.RawQuery = q.Encode()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(u.String())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Checking explorer API key", zap.String("apiURL", apiURL))

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return entity.CredentialError, "", fmt.Errorf("request to %s failed: %w", apiURL, err)
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Warn("Explorer API returned non-200 status",
			zap.String("apiURL", apiURL),
			zap.Int("statusCode", resp.StatusCode()))
		return entity.CredentialError, "", fmt.Errorf("explorer %s answered with status %d", apiURL, resp.StatusCode())
	}

	var env explorerEnvelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return entity.CredentialError, "", fmt.Errorf("failed to decode response from %s: %w", apiURL, err)
	}

	var resultText string
	_ = json.Unmarshal(env.Result, &resultText) // non-string results are fine for a valid key

	status, msg := classify(env, resultText)
	return status, msg, nil
}

func classify(env explorerEnvelope, resultText string) (entity.CredentialStatus, string) {
	if env.Status == "1" {
		return entity.CredentialValid, env.Message
	}
	lower := strings.ToLower(resultText)
	if strings.Contains(lower, "invalid api key") || strings.Contains(lower, "missing/invalid api key") {
		return entity.CredentialInvalid, resultText
	}
	if resultText != "" {
		return entity.CredentialError, resultText
	}
	return entity.CredentialError, env.Message
}
