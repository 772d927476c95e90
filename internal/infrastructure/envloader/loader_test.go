package envloader

import (
	"os"
	"path/filepath"
	"testing"

	"deploy_config/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	env, err := Load(filepath.Join(t.TempDir(), "nope.env"), logger.NewSlogAdapter())
	require.NoError(t, err)
	assert.Empty(t, env.FileKeys())

	_, ok := env.Lookup("DEPLOY_CONFIG_TEST_SURELY_UNSET")
	assert.False(t, ok)
}

func TestLoadReadsFileValues(t *testing.T) {
	path := writeEnvFile(t, "DEPLOY_CONFIG_TEST_A=alpha\n# comment\nDEPLOY_CONFIG_TEST_B=\"quoted value\"\n")

	env, err := Load(path, logger.NewSlogAdapter())
	require.NoError(t, err)

	assert.Equal(t, []string{"DEPLOY_CONFIG_TEST_A", "DEPLOY_CONFIG_TEST_B"}, env.FileKeys())
	v, ok := env.Lookup("DEPLOY_CONFIG_TEST_A")
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)
	v, _ = env.Lookup("DEPLOY_CONFIG_TEST_B")
	assert.Equal(t, "quoted value", v)
	assert.Equal(t, path, env.FilePath())
}

func TestProcessEnvironmentWinsOverFile(t *testing.T) {
	path := writeEnvFile(t, "DEPLOY_CONFIG_TEST_C=from-file\n")
	t.Setenv("DEPLOY_CONFIG_TEST_C", "from-process")

	env, err := Load(path, logger.NewSlogAdapter())
	require.NoError(t, err)

	v, ok := env.Lookup("DEPLOY_CONFIG_TEST_C")
	assert.True(t, ok)
	assert.Equal(t, "from-process", v)
}

func TestLoadEmptyPath(t *testing.T) {
	t.Setenv("DEPLOY_CONFIG_TEST_D", "x")
	env, err := Load("", logger.NewSlogAdapter())
	require.NoError(t, err)
	v, ok := env.Lookup("DEPLOY_CONFIG_TEST_D")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestMapEnvironment(t *testing.T) {
	env := MapEnvironment{"K": ""}
	v, ok := env.Lookup("K")
	assert.True(t, ok)
	assert.Empty(t, v)
	_, ok = env.Lookup("MISSING")
	assert.False(t, ok)
}
