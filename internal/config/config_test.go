package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"resume-screen-go/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsInTestEnv(t *testing.T) {
	// go test环境下找不到配置文件时返回默认配置而不是报错
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, constants.DefaultMaxInputChars, cfg.Engine.MaxInputChars)
	assert.Equal(t, constants.DefaultAnalyzeTimeout, cfg.AnalyzeTimeoutDuration())
	// 数据文件路径留空即使用内置词库
	assert.Empty(t, cfg.Data.TaxonomyFile)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
  api_key: "secret"
engine:
  max_input_chars: 5000
  analyze_timeout: "3s"
data:
  taxonomy_file: "/data/taxonomy.yaml"
logger:
  level: "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, 5000, cfg.Engine.MaxInputChars)
	assert.Equal(t, 3*time.Second, cfg.AnalyzeTimeoutDuration())
	assert.Equal(t, "/data/taxonomy.yaml", cfg.Data.TaxonomyFile)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// 未显式配置的项补默认值
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":9090\"\n"), 0o644))

	t.Setenv("RESUME_SCREEN_ADDRESS", ":7070")
	t.Setenv("RESUME_SCREEN_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "env-key", cfg.Server.APIKey)
}

func TestCreateSampleConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yaml")

	require.NoError(t, CreateSampleConfig(path))

	// 已存在的文件拒绝覆盖
	err := CreateSampleConfig(path)
	assert.Error(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestGetDuration(t *testing.T) {
	def := 7 * time.Second
	assert.Equal(t, 3*time.Second, GetDuration("3s", def))
	assert.Equal(t, 90*time.Second, GetDuration("1m30s", def))
	// 空串与非法格式回退到默认值
	assert.Equal(t, def, GetDuration("", def))
	assert.Equal(t, def, GetDuration("not-a-duration", def))
}
