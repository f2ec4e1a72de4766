package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[paths]
output = "/srv/wordlists"

[compress]
mode = "exec"
command = "dawg-build"
args = ["{in}", "{out}"]
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/wordlists", cfg.Paths.Output)
	assert.Equal(t, "data/ignore_list.txt", cfg.Paths.IgnoreList, "unset keys keep defaults")
	assert.Equal(t, "exec", cfg.Compress.Mode)
	assert.Equal(t, []string{"{in}", "{out}"}, cfg.Compress.Args)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[paths]
output = "out"

[compress]
mode = 3

[publish]
enabled = true
bucket = "lists"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Paths.Output)
	assert.Equal(t, "trie", cfg.Compress.Mode, "bad value falls back to the default")
	assert.True(t, cfg.Publish.Enabled)
	assert.Equal(t, "lists", cfg.Publish.Bucket)
}

func TestLoadConfigUnparsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[paths\noutput = "), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TASHBETZ_OUTPUT", "/tmp/lists")
	t.Setenv("TASHBETZ_COMPRESS_MODE", "none")
	t.Setenv("TASHBETZ_PUBLISH", "true")
	t.Setenv("TASHBETZ_PUBLISH_BUCKET", "bucket")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "/tmp/lists", cfg.Paths.Output)
	assert.Equal(t, "none", cfg.Compress.Mode)
	assert.True(t, cfg.Publish.Enabled)
	assert.Equal(t, "bucket", cfg.Publish.Bucket)
	assert.Equal(t, "data/he_IL.dic", cfg.Sources.Hspell, "unset variables keep file values")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no output", func(c *Config) { c.Paths.Output = "" }},
		{"no ignore list", func(c *Config) { c.Paths.IgnoreList = "" }},
		{"unknown mode", func(c *Config) { c.Compress.Mode = "gzip" }},
		{"exec without command", func(c *Config) { c.Compress.Mode = "exec" }},
		{"publish without bucket", func(c *Config) { c.Publish.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[paths]\noutput = \"custom\"\n"), 0o644))

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "custom", cfg.Paths.Output)
}
