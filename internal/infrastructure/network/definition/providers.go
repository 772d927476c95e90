package networkdefinition

import (
	"fmt"
	"sort"

	"deploy_config/internal/app/port"
	"deploy_config/internal/domain/entity"
)

// Environment variables feeding the network profiles and explorer credentials.
const (
	EnvPrivateKey      = "PRIVATE_KEY"
	EnvRinkebyAPIKey   = "RINKEBY_API_KEY"
	EnvMainnetAPIKey   = "MAINNET_API_KEY"
	EnvEtherscanAPIKey = "ETHERSCAN_API_KEY"
	EnvBscscanAPIKey   = "BSCSCAN_API_KEY"
	EnvPolygonAPIKey   = "POLYGON_API_KEY"
)

// EnvVars lists every variable the assembler reads, in a stable order.
var EnvVars = []string{ //nolint:gochecknoglobals
	EnvPrivateKey,
	EnvRinkebyAPIKey,
	EnvMainnetAPIKey,
	EnvEtherscanAPIKey,
	EnvBscscanAPIKey,
	EnvPolygonAPIKey,
}

const (
	DefaultNetwork    = "hardhat"
	SolcVersion       = "0.8.12"
	OptimizerEnabled  = true
	OptimizerRunCount = 200
)

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Hardhat = entity.NetworkDefinition{
		Identifier:   "hardhat",
		Name:         "Hardhat Network",
		ChainID:      31337,
		NativeSymbol: "ETH",
	}
	Rinkeby = entity.NetworkDefinition{
		Identifier:    "rinkeby",
		Name:          "Rinkeby Testnet",
		ChainID:       4,
		URLTemplate:   "https://eth-rinkeby.alchemyapi.io/v2/%s",
		URLKeyVar:     EnvRinkebyAPIKey,
		GasPrice:      1000000000,
		UsesAccounts:  true,
		NativeSymbol:  "ETH",
		ExplorerKey:   "rinkeby",
		BlockExplorer: "https://rinkeby.etherscan.io",
	}
	BscTest = entity.NetworkDefinition{
		Identifier:    "bscTest",
		Name:          "BNB Smart Chain Testnet",
		ChainID:       97,
		URLTemplate:   "https://data-seed-prebsc-1-s1.binance.org:8545",
		GasPrice:      20000000000,
		UsesAccounts:  true,
		NativeSymbol:  "tBNB",
		ExplorerKey:   "bscTestnet",
		BlockExplorer: "https://testnet.bscscan.com",
	}
	BscMain = entity.NetworkDefinition{
		Identifier:    "bscMain",
		Name:          "BNB Smart Chain",
		ChainID:       56,
		URLTemplate:   "https://bsc-dataseed.binance.org/",
		GasPrice:      20000000000,
		UsesAccounts:  true,
		NativeSymbol:  "BNB",
		ExplorerKey:   "bsc",
		BlockExplorer: "https://bscscan.com",
	}
	Mainnet = entity.NetworkDefinition{
		Identifier:    "mainnet",
		Name:          "Ethereum Mainnet",
		ChainID:       1,
		URLTemplate:   "https://mainnet.infura.io/v3/%s",
		URLKeyVar:     EnvMainnetAPIKey,
		GasPrice:      75000000000,
		UsesAccounts:  true,
		NativeSymbol:  "ETH",
		ExplorerKey:   "mainnet",
		BlockExplorer: "https://etherscan.io",
	}
	Coverage = entity.NetworkDefinition{
		Identifier:   "coverage",
		Name:         "Coverage Node",
		ChainID:      1337, // the coverage tool launches its own ganache client
		URLTemplate:  "http://127.0.0.1:8555",
		NativeSymbol: "ETH",
	}
)

// Explorer verification APIs. Related sub-networks share one credential.
var ( //nolint:gochecknoglobals
	EtherscanMainnet = entity.ExplorerDefinition{Key: "mainnet", Family: "etherscan", APIURL: "https://api.etherscan.io/api", EnvVar: EnvEtherscanAPIKey, ChainID: 1}
	EtherscanRinkeby = entity.ExplorerDefinition{Key: "rinkeby", Family: "etherscan", APIURL: "https://api-rinkeby.etherscan.io/api", EnvVar: EnvEtherscanAPIKey, ChainID: 4}
	BscscanMainnet   = entity.ExplorerDefinition{Key: "bsc", Family: "bscscan", APIURL: "https://api.bscscan.com/api", EnvVar: EnvBscscanAPIKey, ChainID: 56}
	BscscanTestnet   = entity.ExplorerDefinition{Key: "bscTestnet", Family: "bscscan", APIURL: "https://api-testnet.bscscan.com/api", EnvVar: EnvBscscanAPIKey, ChainID: 97}
	PolygonMainnet   = entity.ExplorerDefinition{Key: "polygon", Family: "polygonscan", APIURL: "https://api.polygonscan.com/api", EnvVar: EnvPolygonAPIKey, ChainID: 137}
	PolygonMumbai    = entity.ExplorerDefinition{Key: "polygonMumbai", Family: "polygonscan", APIURL: "https://api-testnet.polygonscan.com/api", EnvVar: EnvPolygonAPIKey, ChainID: 80001}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[string]entity.NetworkDefinition{ //nolint:gochecknoglobals
	Hardhat.Identifier:  Hardhat,
	Rinkeby.Identifier:  Rinkeby,
	BscTest.Identifier:  BscTest,
	BscMain.Identifier:  BscMain,
	Mainnet.Identifier:  Mainnet,
	Coverage.Identifier: Coverage,
}

var allKnownExplorers = map[string]entity.ExplorerDefinition{ //nolint:gochecknoglobals
	EtherscanMainnet.Key: EtherscanMainnet,
	EtherscanRinkeby.Key: EtherscanRinkeby,
	BscscanMainnet.Key:   BscscanMainnet,
	BscscanTestnet.Key:   BscscanTestnet,
	PolygonMainnet.Key:   PolygonMainnet,
	PolygonMumbai.Key:    PolygonMumbai,
}

// Definitions returns a copy of every known network definition keyed by identifier.
func Definitions() map[string]entity.NetworkDefinition {
	out := make(map[string]entity.NetworkDefinition, len(allKnownDefinitions))
	for k, v := range allKnownDefinitions {
		out[k] = v
	}
	return out
}

// Explorers returns a copy of every known explorer definition keyed by explorer key.
func Explorers() map[string]entity.ExplorerDefinition {
	out := make(map[string]entity.ExplorerDefinition, len(allKnownExplorers))
	for k, v := range allKnownExplorers {
		out[k] = v
	}
	return out
}

// RenderURL fills the definition's URL template with the given key.
// Templates without a key placeholder are returned unchanged.
func RenderURL(def entity.NetworkDefinition, apiKey string) string {
	if def.URLKeyVar == "" {
		return def.URLTemplate
	}
	return fmt.Sprintf(def.URLTemplate, apiKey)
}

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger         port.Logger
	allNetworkDefs map[string]entity.NetworkDefinition
	explorerDefs   map[string]entity.ExplorerDefinition
}

// NewNetworkDefinitionProvider creates a new NetworkDefinitionProvider.
func NewNetworkDefinitionProvider(log port.Logger) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:         log,
		allNetworkDefs: Definitions(),
		explorerDefs:   Explorers(),
	}
	p.logger.Debug("NetworkDefinitionProvider initialized", "networks", len(p.allNetworkDefs), "explorers", len(p.explorerDefs))
	return p
}

// GetAllNetworkDefinitions returns every known network definition sorted by identifier.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.allNetworkDefs))
	for _, def := range p.allNetworkDefs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Identifier < defs[j].Identifier })
	return defs
}

// GetNetworkDefinitionByName returns a specific network definition by its identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.allNetworkDefs[identifier]
	return def, ok
}

// GetNetworkDefinitionByChainID returns a specific network definition by its chain ID.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.allNetworkDefs {
		if def.ChainID == chainID {
			return def, true
		}
	}
	p.logger.Warn(fmt.Sprintf("No network definition with ChainID %d.", chainID))
	return entity.NetworkDefinition{}, false
}

// GetExplorerDefinitions returns every explorer definition sorted by key.
func (p *NetworkDefinitionProvider) GetExplorerDefinitions() []entity.ExplorerDefinition {
	if p == nil {
		return []entity.ExplorerDefinition{}
	}
	defs := make([]entity.ExplorerDefinition, 0, len(p.explorerDefs))
	for _, def := range p.explorerDefs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Key < defs[j].Key })
	return defs
}
