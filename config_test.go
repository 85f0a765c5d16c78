package fastlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	cases := map[string]Size{
		"512":  512,
		"100B": 100,
		"10KB": 10 * 1024,
		"2MB":  2 * 1024 * 1024,
		"1GB":  1024 * 1024 * 1024,
		"1gb":  1024 * 1024 * 1024,
		"4 KB": 4 * 1024,
	}
	for in, want := range cases {
		got, err := ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSize("not-a-size")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel("warn")
	assert.True(t, ok)
	assert.Equal(t, Warn, lvl)

	_, ok = ParseLevel("nonsense")
	assert.False(t, ok)
}

func TestLoadSplitLogConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	doc := "dir: logs/\nmax_temp_size: \"10MB\"\nrolling:\n  keep_num: 5\nlevel: INFO\nconsole: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadSplitLogConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "logs/", cfg.Dir)
	assert.Equal(t, Size(10*1024*1024), cfg.MaxTemp)
	assert.True(t, cfg.Console)

	rt := cfg.Rolling.Resolve()
	assert.Equal(t, KeepNum, rt.Kind)
	assert.Equal(t, 5, rt.N)
}
