package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/temirov/repopack/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

// InitFormat identifies the serialization of the scaffolded configuration.
type InitFormat string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	// InitFormatJSON writes repopack.config.json.
	InitFormatJSON InitFormat = "json"
	// InitFormatYAML writes repopack.config.yaml.
	InitFormatYAML InitFormat = "yaml"

	jsonIndentation = "  "
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Format           InitFormat
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested target and
// returns the path written.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	format := options.Format
	if format == "" {
		format = InitFormatJSON
	}

	var fileName string
	switch format {
	case InitFormatJSON:
		fileName = utils.ConfigFileName
	case InitFormatYAML:
		fileName = utils.YAMLConfigFileName
	default:
		return "", fmt.Errorf("unsupported configuration format %q", format)
	}

	var configurationDirectory string
	switch target {
	case InitTargetLocal:
		configurationDirectory = options.WorkingDirectory
		if configurationDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			configurationDirectory = current
		}
	case InitTargetGlobal:
		configurationDirectory = GlobalConfigurationDirectory()
		if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
	default:
		return "", fmt.Errorf("unsupported init target %q", target)
	}
	destinationPath := filepath.Join(configurationDirectory, fileName)

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	content, encodeErr := encodeDefaults(format)
	if encodeErr != nil {
		return "", encodeErr
	}
	if err := os.WriteFile(destinationPath, content, 0o600); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}

func encodeDefaults(format InitFormat) ([]byte, error) {
	defaults := Defaults().toFile()
	if format == InitFormatYAML {
		content, err := yaml.Marshal(defaults)
		if err != nil {
			return nil, fmt.Errorf("encode default configuration as yaml: %w", err)
		}
		return content, nil
	}
	content, err := json.MarshalIndent(defaults, "", jsonIndentation)
	if err != nil {
		return nil, fmt.Errorf("encode default configuration as json: %w", err)
	}
	return append(content, '\n'), nil
}
