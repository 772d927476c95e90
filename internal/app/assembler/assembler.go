// Package assembler builds the deploy configuration from environment state.
package assembler

import (
	"deploy_config/internal/app/port"
	"deploy_config/internal/domain/entity"
	networkdefinition "deploy_config/internal/infrastructure/network/definition"
)

// explorerOrder fixes the six explorer keys and the variable each one reads.
var explorerOrder = []entity.ExplorerDefinition{ //nolint:gochecknoglobals
	networkdefinition.EtherscanMainnet,
	networkdefinition.EtherscanRinkeby,
	networkdefinition.BscscanMainnet,
	networkdefinition.BscscanTestnet,
	networkdefinition.PolygonMainnet,
	networkdefinition.PolygonMumbai,
}

// Load assembles the deploy configuration. Unset variables read as the empty
// string; nothing is validated, so Load cannot fail.
func Load(env port.Environment) entity.DeployConfig {
	get := func(key string) string {
		if env == nil {
			return ""
		}
		v, _ := env.Lookup(key)
		return v
	}
	privateKey := get(networkdefinition.EnvPrivateKey)

	defs := networkdefinition.Definitions()
	networks := make(map[string]entity.NetworkProfile, len(defs))
	for id, def := range defs {
		profile := entity.NetworkProfile{
			URL:      networkdefinition.RenderURL(def, get(def.URLKeyVar)),
			GasPrice: def.GasPrice,
		}
		if def.UsesAccounts {
			profile.Accounts = []string{privateKey}
		}
		networks[id] = profile
	}

	apiKeys := make(map[string]string, len(explorerOrder))
	for _, ex := range explorerOrder {
		apiKeys[ex.Key] = get(ex.EnvVar)
	}

	return entity.DeployConfig{
		DefaultNetwork: networkdefinition.DefaultNetwork,
		Solidity: entity.SolidityConfig{
			Compilers: []entity.SolidityCompiler{{
				Version: networkdefinition.SolcVersion,
				Settings: entity.CompilerSettings{
					Optimizer: entity.OptimizerSettings{
						Enabled: networkdefinition.OptimizerEnabled,
						Runs:    networkdefinition.OptimizerRunCount,
					},
				},
			}},
		},
		Networks:  networks,
		Etherscan: entity.EtherscanConfig{APIKey: apiKeys},
	}
}

// MissingVariables returns the variables Load reads that are unset or empty.
func MissingVariables(env port.Environment) []string {
	var missing []string
	for _, key := range networkdefinition.EnvVars {
		if v, ok := env.Lookup(key); !ok || v == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Provider serves a configuration assembled once and hands out copies.
type Provider struct {
	cfg entity.DeployConfig
}

// NewProvider assembles the configuration and logs which variables were left empty.
func NewProvider(env port.Environment, log port.Logger) *Provider {
	cfg := Load(env)
	if missing := MissingVariables(env); len(missing) > 0 {
		log.Warn("Some deploy variables are unset; dependent fields are empty", "variables", missing)
	}
	log.Info("Deploy configuration assembled", "defaultNetwork", cfg.DefaultNetwork, "networks", len(cfg.Networks), "explorers", len(cfg.Etherscan.APIKey))
	return &Provider{cfg: cfg}
}

// GetConfig implements port.ConfigProvider.
func (p *Provider) GetConfig() entity.DeployConfig {
	return p.cfg.Clone()
}
