package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/dispatch/pkg/dispatch/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"key": "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"name": "codecs"}, "default", "codecs"},
		{"key missing", map[string]any{"other": "value"}, "default", "default"},
		{"empty string", map[string]any{"name": ""}, "default", ""},
		{"wrong type int", map[string]any{"name": 123}, "default", "default"},
		{"nil map", nil, "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.New(tt.data).String("name", tt.defaultVal))
		})
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		defaultVal bool
		want       bool
	}{
		{"true value", map[string]any{"metrics": true}, false, true},
		{"false value", map[string]any{"metrics": false}, true, false},
		{"key missing", map[string]any{}, true, true},
		{"wrong type string", map[string]any{"metrics": "true"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.New(tt.data).Bool("metrics", tt.defaultVal))
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("DISPATCH_TEST_DIR", "/var/lib/dispatch")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"plain", map[string]any{"path": "./dispatch.db"}, "./dispatch.db"},
		{"env var", map[string]any{"path": "$DISPATCH_TEST_DIR/catalog.db"}, "/var/lib/dispatch/catalog.db"},
		{"braced env var", map[string]any{"path": "${DISPATCH_TEST_DIR}/c.db"}, "/var/lib/dispatch/c.db"},
		{"home", map[string]any{"path": "~/dispatch.db"}, filepath.Join(home, "dispatch.db")},
		{"memory", map[string]any{"path": ":memory:"}, ":memory:"},
		{"missing", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.New(tt.data).Path("path", ""))
		})
	}
}

func TestKeysAndUnknown(t *testing.T) {
	cfg := config.New(map[string]any{
		"name":    "codecs",
		"metrcis": true,
		"catalog": map[string]any{},
	})

	assert.Equal(t, []string{"catalog", "metrcis", "name"}, cfg.Keys())
	assert.Equal(t, []string{"metrcis"}, cfg.Unknown("name", "metrics", "tracing", "catalog"))
	assert.Empty(t, cfg.Unknown("name", "metrcis", "catalog"))
	assert.Empty(t, config.New(nil).Unknown())
}

func TestSection(t *testing.T) {
	cfg := config.New(map[string]any{
		"catalog": map[string]any{"path": "./dispatch.db"},
		"scalar":  "value",
	})

	assert.Equal(t, "./dispatch.db", cfg.Section("catalog").String("path", ""))
	assert.Empty(t, cfg.Section("scalar").Raw())
	assert.Empty(t, cfg.Section("missing").Raw())
}

func TestHas(t *testing.T) {
	cfg := config.New(map[string]any{"name": nil})
	assert.True(t, cfg.Has("name"))
	assert.False(t, cfg.Has("other"))
}

func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
name: codecs
metrics: true
catalog:
  path: ./dispatch.db
`))
	require.NoError(t, err)

	assert.Equal(t, "codecs", cfg.String("name", ""))
	assert.True(t, cfg.Bool("metrics", false))
	assert.Equal(t, "./dispatch.db", cfg.Section("catalog").String("path", ""))
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := config.FromYAML([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"name":"codecs","tracing":true,"catalog":{"path":":memory:"}}`))
	require.NoError(t, err)

	assert.Equal(t, "codecs", cfg.String("name", ""))
	assert.True(t, cfg.Bool("tracing", false))
	assert.Equal(t, ":memory:", cfg.Section("catalog").String("path", ""))
}

func TestFromJSONInvalid(t *testing.T) {
	_, err := config.FromJSON([]byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse json")
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "dispatch.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: from-yaml\n"), 0o600))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-yaml", cfg.String("name", ""))
	})

	t.Run("yml", func(t *testing.T) {
		path := filepath.Join(dir, "dispatch.YML")
		require.NoError(t, os.WriteFile(path, []byte("name: from-yml\n"), 0o600))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-yml", cfg.String("name", ""))
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "dispatch.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"from-json"}`), 0o600))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-json", cfg.String("name", ""))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "dispatch.toml")
		require.NoError(t, os.WriteFile(path, []byte(`name = "x"`), 0o600))

		_, err := config.FromFile(path)
		assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.Keys())
	})

	t.Run("invalid content names the file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		_, err := config.FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})
}
