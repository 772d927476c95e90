package signer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"deploy_config/internal/domain/entity"

	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrEmptyKey   = errors.New("private key is empty")
	ErrInvalidKey = errors.New("invalid private key")
)

// KeyResolver derives addresses from hex-encoded secp256k1 private keys.
type KeyResolver struct{}

// NewKeyResolver creates a new KeyResolver.
func NewKeyResolver() *KeyResolver {
	return &KeyResolver{}
}

// Address returns the checksummed address for privateKey. A leading "0x" is accepted.
func (r *KeyResolver) Address(privateKey string) (string, error) {
	hexKey := strings.TrimPrefix(strings.TrimSpace(privateKey), "0x")
	if hexKey == "" {
		return "", ErrEmptyKey
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// Accounts resolves every signer of every profile. Failures are recorded per account.
func (r *KeyResolver) Accounts(cfg entity.DeployConfig) []entity.SignerAccount {
	names := make([]string, 0, len(cfg.Networks))
	for name := range cfg.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []entity.SignerAccount
	for _, name := range names {
		for i, key := range cfg.Networks[name].Accounts {
			acc := entity.SignerAccount{Network: name, Index: i}
			addr, err := r.Address(key)
			if err != nil {
				acc.Error = err.Error()
			} else {
				acc.Address = addr
			}
			out = append(out, acc)
		}
	}
	return out
}
