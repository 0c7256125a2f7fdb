package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/todopro/internal/logger"
	"github.com/josephgoksu/todopro/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	setupCLI(t)

	output, err := runCLI(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "todopro - a small task list with undo")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	for _, name := range []string{"add", "done", "delete", "undo", "list", "export", "tui", "watch", "mcp"} {
		assert.Contains(t, output, name)
	}
}

func TestExecute_ClosesLogFileOnFailure(t *testing.T) {
	setupCLI(t)
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"done", "9"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := execute()
	require.Error(t, err)
	assert.False(t, logger.FileOpen())
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", GetVersion())
}

func TestInitConfig_Defaults(t *testing.T) {
	dir := setupCLI(t)

	require.NoError(t, InitConfig())
	cfg := GetConfig()

	assert.Equal(t, dir, cfg.Project.RootDir, "TODOPRO_PROJECT_ROOTDIR applies")
	assert.Equal(t, "tasks.json", cfg.Data.File)
	assert.Equal(t, "json", cfg.Data.Format)
	assert.True(t, cfg.Data.VerifyChecksum)
	assert.Equal(t, "tasks_export.csv", cfg.Export.File)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestInitConfig_EnvOverride(t *testing.T) {
	setupCLI(t)
	t.Setenv("TODOPRO_DATA_FORMAT", "YAML")

	require.NoError(t, InitConfig())
	assert.Equal(t, "yaml", GetConfig().Data.Format, "format is lower-cased")
}

func TestInitConfig_InvalidFormat(t *testing.T) {
	setupCLI(t)
	t.Setenv("TODOPRO_DATA_FORMAT", "xml")

	err := InitConfig()
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "config Data.Format", vErr.Field)
	assert.Contains(t, vErr.Message, "json yaml toml sqlite")
	assert.Equal(t, exitValidation, exitCode(err))
}

func TestInitConfig_ConfigFile(t *testing.T) {
	dir := setupCLI(t)
	cfgPath := filepath.Join(dir, "custom.yaml")
	content := "data:\n  file: mine.yaml\n  format: yaml\nexport:\n  format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	_, err := runCLI(t, "--config", cfgPath, "add", "from config")
	require.NoError(t, err)

	cfg := GetConfig()
	assert.Equal(t, "yaml", cfg.Data.Format)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.FileExists(t, filepath.Join(dir, "mine.yaml"))
}

func TestInitConfig_MissingConfigFile(t *testing.T) {
	dir := setupCLI(t)

	_, err := runCLI(t, "--config", filepath.Join(dir, "nope.yaml"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestVerboseAndQuietExclusive(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "-v", "-q", "list")
	assert.Error(t, err)
}
