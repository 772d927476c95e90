package entity

// OptimizerSettings tunes the Solidity optimizer.
type OptimizerSettings struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Runs    int  `json:"runs" yaml:"runs"`
}

// CompilerSettings wraps the per-compiler settings block.
type CompilerSettings struct {
	Optimizer OptimizerSettings `json:"optimizer" yaml:"optimizer"`
}

// SolidityCompiler is one entry of the compilers list.
type SolidityCompiler struct {
	Version  string           `json:"version" yaml:"version"`
	Settings CompilerSettings `json:"settings" yaml:"settings"`
}

// SolidityConfig lists the compilers used to build the contracts.
type SolidityConfig struct {
	Compilers []SolidityCompiler `json:"compilers" yaml:"compilers"`
}

// EtherscanConfig maps explorer keys to their verification API key.
type EtherscanConfig struct {
	APIKey map[string]string `json:"apiKey" yaml:"apiKey"`
}

// DeployConfig is the assembled configuration consumed by the deploy tool.
// It is built once from the environment and treated as read-only afterwards.
type DeployConfig struct {
	DefaultNetwork string                    `json:"defaultNetwork" yaml:"defaultNetwork"`
	Solidity       SolidityConfig            `json:"solidity" yaml:"solidity"`
	Networks       map[string]NetworkProfile `json:"networks" yaml:"networks"`
	Etherscan      EtherscanConfig           `json:"etherscan" yaml:"etherscan"`
}

// Network returns a copy of the named profile.
func (c DeployConfig) Network(name string) (NetworkProfile, bool) {
	p, ok := c.Networks[name]
	if !ok {
		return NetworkProfile{}, false
	}
	return p.Clone(), true
}

// ExplorerKey returns the credential configured for an explorer key.
func (c DeployConfig) ExplorerKey(key string) (string, bool) {
	v, ok := c.Etherscan.APIKey[key]
	return v, ok
}

// Clone returns a deep copy so callers can mutate the result freely.
func (c DeployConfig) Clone() DeployConfig {
	out := DeployConfig{
		DefaultNetwork: c.DefaultNetwork,
		Solidity:       SolidityConfig{Compilers: append([]SolidityCompiler(nil), c.Solidity.Compilers...)},
		Networks:       make(map[string]NetworkProfile, len(c.Networks)),
		Etherscan:      EtherscanConfig{APIKey: make(map[string]string, len(c.Etherscan.APIKey))},
	}
	for name, p := range c.Networks {
		out.Networks[name] = p.Clone()
	}
	for k, v := range c.Etherscan.APIKey {
		out.Etherscan.APIKey[k] = v
	}
	return out
}
