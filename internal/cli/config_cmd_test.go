package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigExplainPrintsFilterAndStages(t *testing.T) {
	var out bytes.Buffer
	configExplainCmd.SetOut(&out)
	configExplainCmd.SetArgs([]string{".a | mean."})
	require.NoError(t, configExplainCmd.RunE(configExplainCmd, []string{".a | mean."}))
	assert.Contains(t, out.String(), "filter:")
	assert.Contains(t, out.String(), "mean")
}

func TestConfigExplainCompileError(t *testing.T) {
	err := configExplainCmd.RunE(configExplainCmd, []string{".a |"})
	assert.Error(t, err)
}

func TestConfigInitWritesFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	require.NoError(t, configInitCmd.RunE(configInitCmd, nil))
	_, statErr := os.Stat(filepath.Join(dir, ".sjq.toml"))
	assert.NoError(t, statErr)
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	require.NoError(t, os.WriteFile(".sjq.toml", []byte("existing"), 0o644))
	err = configInitCmd.RunE(configInitCmd, nil)
	assert.Error(t, err)
}
