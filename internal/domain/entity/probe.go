package entity

import "time"

// ProbeStatus is the outcome of probing one network endpoint.
type ProbeStatus string

const (
	ProbeOK       ProbeStatus = "ok"
	ProbeSkipped  ProbeStatus = "skipped"
	ProbeMismatch ProbeStatus = "chain_id_mismatch"
	ProbeFailed   ProbeStatus = "failed"
)

// ProbeResult describes what a network endpoint answered.
type ProbeResult struct {
	Network           string        `json:"network"`
	Status            ProbeStatus   `json:"status"`
	ExpectedChainID   uint64        `json:"expectedChainId"`
	ChainID           uint64        `json:"chainId,omitempty"`
	BlockNumber       uint64        `json:"blockNumber,omitempty"`
	SuggestedGasPrice string        `json:"suggestedGasPriceGwei,omitempty"`
	ConfiguredGas     string        `json:"configuredGasPriceGwei,omitempty"`
	Latency           time.Duration `json:"latency"`
	Error             string        `json:"error,omitempty"`
	CheckedAt         time.Time     `json:"checkedAt"`
}

// CredentialStatus is the outcome of checking one explorer API key.
type CredentialStatus string

const (
	CredentialValid   CredentialStatus = "valid"
	CredentialInvalid CredentialStatus = "invalid"
	CredentialMissing CredentialStatus = "missing"
	CredentialError   CredentialStatus = "error"
)

// ExplorerCheckResult describes what an explorer API answered for a key.
type ExplorerCheckResult struct {
	Explorer string           `json:"explorer"`
	APIURL   string           `json:"apiUrl"`
	Status   CredentialStatus `json:"status"`
	Message  string           `json:"message,omitempty"`
}

// SignerAccount is the public side of a configured private key.
type SignerAccount struct {
	Network string `json:"network"`
	Index   int    `json:"index"`
	Address string `json:"address,omitempty"`
	Error   string `json:"error,omitempty"`
}
