package assembler

import (
	"strings"
	"testing"

	"deploy_config/internal/infrastructure/envloader"
	"deploy_config/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var networkIDs = []string{"hardhat", "rinkeby", "bscTest", "bscMain", "mainnet", "coverage"}

var explorerKeys = []string{"mainnet", "rinkeby", "bsc", "bscTestnet", "polygon", "polygonMumbai"}

func fullEnv() envloader.MapEnvironment {
	return envloader.MapEnvironment{
		"PRIVATE_KEY":       "pk",
		"RINKEBY_API_KEY":   "rk",
		"MAINNET_API_KEY":   "mk",
		"ETHERSCAN_API_KEY": "ek",
		"BSCSCAN_API_KEY":   "bk",
		"POLYGON_API_KEY":   "polyk",
	}
}

func TestLoadHasExactlySixNetworks(t *testing.T) {
	cfg := Load(envloader.MapEnvironment{})

	require.Len(t, cfg.Networks, len(networkIDs))
	for _, id := range networkIDs {
		assert.Contains(t, cfg.Networks, id)
	}
}

func TestLoadStaticFields(t *testing.T) {
	cfg := Load(fullEnv())

	assert.Equal(t, "hardhat", cfg.DefaultNetwork)
	require.Len(t, cfg.Solidity.Compilers, 1)
	c := cfg.Solidity.Compilers[0]
	assert.Equal(t, "0.8.12", c.Version)
	assert.True(t, c.Settings.Optimizer.Enabled)
	assert.Equal(t, 200, c.Settings.Optimizer.Runs)

	assert.Equal(t, uint64(1000000000), cfg.Networks["rinkeby"].GasPrice)
	assert.Equal(t, uint64(20000000000), cfg.Networks["bscTest"].GasPrice)
	assert.Equal(t, uint64(20000000000), cfg.Networks["bscMain"].GasPrice)
	assert.Equal(t, uint64(75000000000), cfg.Networks["mainnet"].GasPrice)
	assert.Equal(t, "https://data-seed-prebsc-1-s1.binance.org:8545", cfg.Networks["bscTest"].URL)
	assert.Equal(t, "https://bsc-dataseed.binance.org/", cfg.Networks["bscMain"].URL)
	assert.Equal(t, "https://eth-rinkeby.alchemyapi.io/v2/rk", cfg.Networks["rinkeby"].URL)
	assert.Equal(t, "https://mainnet.infura.io/v3/mk", cfg.Networks["mainnet"].URL)

	assert.Empty(t, cfg.Networks["hardhat"].URL)
	assert.Nil(t, cfg.Networks["hardhat"].Accounts)
	assert.Equal(t, "http://127.0.0.1:8555", cfg.Networks["coverage"].URL)
	assert.Zero(t, cfg.Networks["coverage"].GasPrice)
	assert.Nil(t, cfg.Networks["coverage"].Accounts)
}

func TestAccountsHoldAtMostOneKey(t *testing.T) {
	for _, env := range []envloader.MapEnvironment{{}, fullEnv()} {
		cfg := Load(env)
		for id, p := range cfg.Networks {
			assert.LessOrEqual(t, len(p.Accounts), 1, id)
		}
	}
}

func TestLoadUnsetVariablesBecomeEmpty(t *testing.T) {
	cfg := Load(envloader.MapEnvironment{})

	for _, id := range []string{"rinkeby", "bscTest", "bscMain", "mainnet"} {
		assert.Equal(t, []string{""}, cfg.Networks[id].Accounts, id)
	}
	assert.Equal(t, "https://eth-rinkeby.alchemyapi.io/v2/", cfg.Networks["rinkeby"].URL)
	assert.Equal(t, "https://mainnet.infura.io/v3/", cfg.Networks["mainnet"].URL)
	for _, key := range explorerKeys {
		v, ok := cfg.ExplorerKey(key)
		assert.True(t, ok, key)
		assert.Empty(t, v, key)
	}
}

func TestLoadNilEnvironment(t *testing.T) {
	cfg := Load(nil)
	assert.Len(t, cfg.Networks, 6)
	assert.Len(t, cfg.Etherscan.APIKey, 6)
}

func TestLoadEveryUnsetSubset(t *testing.T) {
	full := fullEnv()
	keys := make([]string, 0, len(full))
	for k := range full {
		keys = append(keys, k)
	}

	for mask := 0; mask < 1<<len(keys); mask++ {
		env := envloader.MapEnvironment{}
		for i, k := range keys {
			if mask&(1<<i) != 0 {
				env[k] = full[k]
			}
		}
		cfg := Load(env)
		assert.Len(t, cfg.Networks, 6)
		assert.Len(t, cfg.Etherscan.APIKey, 6)

		_, pkSet := env["PRIVATE_KEY"]
		if !pkSet {
			assert.Equal(t, []string{""}, cfg.Networks["mainnet"].Accounts)
		}
	}
}

func TestExplorerKeysAlias(t *testing.T) {
	cfg := Load(fullEnv())

	require.Len(t, cfg.Etherscan.APIKey, 6)
	assert.Equal(t, map[string]string{
		"mainnet":       "ek",
		"rinkeby":       "ek",
		"bsc":           "bk",
		"bscTestnet":    "bk",
		"polygon":       "polyk",
		"polygonMumbai": "polyk",
	}, cfg.Etherscan.APIKey)
}

func TestLoadMainnetExample(t *testing.T) {
	cfg := Load(envloader.MapEnvironment{"PRIVATE_KEY": "abc", "MAINNET_API_KEY": "m1"})

	mainnet := cfg.Networks["mainnet"]
	assert.Equal(t, []string{"abc"}, mainnet.Accounts)
	assert.True(t, strings.Contains(mainnet.URL, "m1"))
	assert.True(t, strings.HasSuffix(cfg.Networks["rinkeby"].URL, "/v2/"))
}

func TestLoadIsIdempotent(t *testing.T) {
	env := fullEnv()
	assert.Equal(t, Load(env), Load(env))
}

func TestProviderReturnsCopies(t *testing.T) {
	p := NewProvider(fullEnv(), logger.NewSlogAdapter())

	cfg := p.GetConfig()
	cfg.Networks["mainnet"].Accounts[0] = "tampered"
	cfg.Etherscan.APIKey["bsc"] = "tampered"
	delete(cfg.Networks, "rinkeby")

	again := p.GetConfig()
	assert.Equal(t, []string{"pk"}, again.Networks["mainnet"].Accounts)
	assert.Equal(t, "bk", again.Etherscan.APIKey["bsc"])
	assert.Contains(t, again.Networks, "rinkeby")
}

func TestMissingVariables(t *testing.T) {
	missing := MissingVariables(envloader.MapEnvironment{"PRIVATE_KEY": "x", "POLYGON_API_KEY": ""})
	assert.Equal(t, []string{"RINKEBY_API_KEY", "MAINNET_API_KEY", "ETHERSCAN_API_KEY", "BSCSCAN_API_KEY", "POLYGON_API_KEY"}, missing)
}
