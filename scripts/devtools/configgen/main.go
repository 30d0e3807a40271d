package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"leetcph/internal/cli/config"
	sandboxconfig "leetcph/internal/judge/sandbox/config"
)

func main() {
	overridesPath := flag.String("overrides", "", "Optional YAML file merged over the defaults")
	outputPath := flag.String("output", config.DefaultConfigPath, "Where to write the generated config")
	withLanguages := flag.Bool("languages", true, "Include the built-in language table")
	flag.Parse()

	generated, err := generate(*overridesPath, *withLanguages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate config failed: %v\n", err)
		os.Exit(1)
	}
	if err := writeYAML(*outputPath, generated); err != nil {
		fmt.Fprintf(os.Stderr, "write config failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outputPath)
}

// generate renders the default configuration as a generic YAML tree and
// deep-merges the overrides file into it.
func generate(overridesPath string, withLanguages bool) (interface{}, error) {
	cfg := config.Default()
	if withLanguages {
		cfg.Languages = sandboxconfig.DefaultLanguages()
	}
	base, err := toTree(cfg)
	if err != nil {
		return nil, err
	}
	if overridesPath == "" {
		return base, nil
	}

	overrides, err := loadYAML(overridesPath)
	if err != nil {
		return nil, err
	}
	if overrides == nil {
		return base, nil
	}
	return mergeMap(base, normalizeValue(overrides))
}

func toTree(value interface{}) (interface{}, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal defaults failed: %w", err)
	}
	var tree interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse defaults failed: %w", err)
	}
	return normalizeValue(tree), nil
}

func loadYAML(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml failed: %w", err)
	}

	var value interface{}
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parse yaml failed: %w", err)
	}
	return value, nil
}

func writeYAML(path string, value interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir failed: %w", err)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal yaml failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write yaml failed: %w", err)
	}
	return nil
}

func normalizeValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			out[k] = normalizeValue(v)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprintf("%v", k)
			}
			out[key] = normalizeValue(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(typed))
		for _, item := range typed {
			out = append(out, normalizeValue(item))
		}
		return out
	default:
		return value
	}
}

// mergeMap merges override into base. Nested maps merge key by key; any other
// value, lists included, replaces the base value.
func mergeMap(base interface{}, override interface{}) (interface{}, error) {
	baseMap, ok := base.(map[string]interface{})
	if !ok {
		return nil, errors.New("base config is not a map")
	}
	overrideMap, ok := override.(map[string]interface{})
	if !ok {
		return nil, errors.New("override config is not a map")
	}

	merged := make(map[string]interface{}, len(baseMap))
	for k, v := range baseMap {
		merged[k] = v
	}

	for key, overrideValue := range overrideMap {
		baseValue, exists := merged[key]
		if !exists {
			merged[key] = overrideValue
			continue
		}

		baseChild, baseIsMap := baseValue.(map[string]interface{})
		overrideChild, overrideIsMap := overrideValue.(map[string]interface{})
		if baseIsMap && overrideIsMap {
			combined, err := mergeMap(baseChild, overrideChild)
			if err != nil {
				return nil, err
			}
			merged[key] = combined
			continue
		}
		merged[key] = overrideValue
	}
	return merged, nil
}
