package port

import (
	"context"

	"deploy_config/internal/domain/entity"
)

// ExplorerClient talks to a block-explorer verification API.
type ExplorerClient interface {
	// CheckAPIKey performs a cheap authenticated call and classifies the answer.
	CheckAPIKey(ctx context.Context, apiURL string, apiKey string) (entity.CredentialStatus, string, error)
}

// ExplorerService checks every configured explorer credential.
type ExplorerService interface {
	CheckAll(ctx context.Context) []entity.ExplorerCheckResult
}

// SignerResolver derives signer addresses from private keys.
type SignerResolver interface {
	Address(privateKey string) (string, error)
}
