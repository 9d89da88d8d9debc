package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/randalmurphal/dispatch/pkg/dispatch/catalog"
	"github.com/randalmurphal/dispatch/pkg/dispatch/config"
	"github.com/randalmurphal/dispatch/pkg/dispatch/observability"
)

// OptionsFromConfig turns registry settings into options.
//
// Recognized keys:
//
//	name: codecs          # WithName
//	metrics: true         # WithMetrics(observability.NewMetricsRecorder())
//	tracing: true         # WithSpanManager(observability.NewSpanManager())
//	catalog:
//	  path: ./dispatch.db # WithCatalog(SQLite store at path)
//
// catalog.path expands environment variables and "~/". Unknown keys and
// values of the wrong type (e.g. metrics: "true") are an error. The returned close function releases the catalog opened for
// catalog.path and must be called once the registry is no longer used.
func OptionsFromConfig(cfg config.Config) ([]Option, func() error, error) {
	if unknown := cfg.Unknown("name", "metrics", "tracing", "catalog"); len(unknown) > 0 {
		return nil, nil, fmt.Errorf("unknown settings: %s", strings.Join(unknown, ", "))
	}
	if err := checkTypes(cfg, map[string]string{
		"name": "string", "metrics": "bool", "tracing": "bool", "catalog": "map",
	}); err != nil {
		return nil, nil, err
	}
	catalogCfg := cfg.Section("catalog")
	if err := checkTypes(catalogCfg, map[string]string{"path": "string"}); err != nil {
		return nil, nil, fmt.Errorf("catalog: %w", err)
	}
	if unknown := catalogCfg.Unknown("path"); len(unknown) > 0 {
		return nil, nil, fmt.Errorf("unknown catalog settings: %s", strings.Join(unknown, ", "))
	}

	var opts []Option
	closeFn := func() error { return nil }

	if name := cfg.String("name", ""); name != "" {
		opts = append(opts, WithName(name))
	}
	if cfg.Bool("metrics", false) {
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}
	if cfg.Bool("tracing", false) {
		opts = append(opts, WithSpanManager(observability.NewSpanManager()))
	}

	if path := catalogCfg.Path("path", ""); path != "" {
		store, err := catalog.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		opts = append(opts, WithCatalog(store))
		closeFn = store.Close
	}

	return opts, closeFn, nil
}

// checkTypes fails for any present key whose value is not of the wanted kind:
// "string", "bool" or "map".
func checkTypes(cfg config.Config, want map[string]string) error {
	raw := cfg.Raw()
	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var valid bool
		switch want[key] {
		case "string":
			_, valid = v.(string)
		case "bool":
			_, valid = v.(bool)
		case "map":
			_, valid = v.(map[string]any)
		}
		if !valid {
			return fmt.Errorf("setting %s: want %s, got %T (%v)", key, want[key], v, v)
		}
	}
	return nil
}

// LoadOptions reads a YAML or JSON settings file and applies OptionsFromConfig.
func LoadOptions(path string) ([]Option, func() error, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return nil, nil, err
	}
	return OptionsFromConfig(cfg)
}
