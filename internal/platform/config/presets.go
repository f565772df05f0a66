package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"scorecard/internal/domain/scorecard"
)

const presetEnvPrefix = "SCORECARD_PRESET_"

// LoadPresets layers the built-in weight presets, an optional YAML file and
// SCORECARD_PRESET_<NAME>_<FIELD> variables, in that order.
//
//	manager:
//	  on_time: 45
//	  throughput: 40
//	  completion: 15
//	  penalty: 30
func LoadPresets(path string) (scorecard.Presets, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load presets file: %w", err)
		}
	}

	envProvider := env.Provider(presetEnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, presetEnvPrefix))
		name, field, ok := strings.Cut(s, "_")
		if !ok {
			return s
		}
		return name + "." + field
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load presets env: %w", err)
	}

	presets := scorecard.DefaultPresets()
	for _, name := range k.MapKeys("") {
		weights := presets[name]
		if err := k.UnmarshalWithConf(name, &weights, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		presets[name] = weights.Clamp()
	}
	return presets, nil
}
