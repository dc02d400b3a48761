package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

// LoadOptions controls how configuration files are discovered.
type LoadOptions struct {
	WorkingDirectory string
	// ExplicitFilePath replaces the local lookup and must name an existing file.
	ExplicitFilePath string
}

// fileConfiguration mirrors Configuration with optional fields so that a file only
// overrides the keys it sets.
type fileConfiguration struct {
	Output fileOutputConfiguration `mapstructure:"output" json:"output" yaml:"output"`
	Ignore fileIgnoreConfiguration `mapstructure:"ignore" json:"ignore" yaml:"ignore"`
}

type fileOutputConfiguration struct {
	FilePath         *string                     `mapstructure:"file_path" json:"file_path" yaml:"file_path"`
	Style            *string                     `mapstructure:"style" json:"style" yaml:"style"`
	RemoveComments   *bool                       `mapstructure:"remove_comments" json:"remove_comments" yaml:"remove_comments"`
	RemoveEmptyLines *bool                       `mapstructure:"remove_empty_lines" json:"remove_empty_lines" yaml:"remove_empty_lines"`
	ShowLineNumbers  *bool                       `mapstructure:"show_line_numbers" json:"show_line_numbers" yaml:"show_line_numbers"`
	TopFilesLength   *int                        `mapstructure:"top_files_length" json:"top_files_length" yaml:"top_files_length"`
	HeaderText       *string                     `mapstructure:"header_text" json:"header_text" yaml:"header_text"`
	CopyToClipboard  *bool                       `mapstructure:"copy_to_clipboard" json:"copy_to_clipboard" yaml:"copy_to_clipboard"`
	TokenCount       fileTokenCountConfiguration `mapstructure:"token_count" json:"token_count" yaml:"token_count"`
}

type fileTokenCountConfiguration struct {
	Enabled  *bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Encoding *string `mapstructure:"encoding" json:"encoding" yaml:"encoding"`
}

type fileIgnoreConfiguration struct {
	UseGitignore       *bool    `mapstructure:"use_gitignore" json:"use_gitignore" yaml:"use_gitignore"`
	UseDefaultPatterns *bool    `mapstructure:"use_default_patterns" json:"use_default_patterns" yaml:"use_default_patterns"`
	CustomPatterns     []string `mapstructure:"custom_patterns" json:"custom_patterns" yaml:"custom_patterns"`
}

// GlobalConfigurationDirectory returns the per-user directory holding the global configuration file.
func GlobalConfigurationDirectory() string {
	return filepath.Join(xdg.ConfigHome, utils.GlobalConfigDirectoryName)
}

// Load resolves the configuration: defaults, then the global file, then the local file
// in the working directory or the explicit file. Every failure is a *types.ConfigurationError.
func Load(options LoadOptions) (Configuration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return Configuration{}, &types.ConfigurationError{Err: fmt.Errorf("determine working directory: %w", err)}
		}
		workingDirectory = currentDirectory
	}

	merged := Defaults()

	globalPath := findConfigurationFile(GlobalConfigurationDirectory())
	if globalPath != "" {
		globalConfiguration, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return Configuration{}, loadErr
		}
		merged = merged.merge(globalConfiguration)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return Configuration{}, resolveErr
	}
	if localPath != "" {
		localConfiguration, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return Configuration{}, loadErr
		}
		merged = merged.merge(localConfiguration)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath == "" {
		return findConfigurationFile(workingDirectory), nil
	}
	resolvedPath := explicitPath
	if !filepath.IsAbs(resolvedPath) {
		resolvedPath = filepath.Join(workingDirectory, explicitPath)
	}
	if _, statErr := os.Stat(resolvedPath); statErr != nil {
		return "", &types.ConfigurationError{Source: explicitPath, Err: fmt.Errorf("configuration file not found: %w", statErr)}
	}
	return resolvedPath, nil
}

// findConfigurationFile returns the first existing configuration file name in directory.
func findConfigurationFile(directory string) string {
	for _, fileName := range []string{utils.ConfigFileName, utils.YAMLConfigFileName} {
		candidate := filepath.Join(directory, fileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func loadConfigurationFromPath(path string) (fileConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		return fileConfiguration{}, &types.ConfigurationError{Source: path, Err: statErr}
	}
	if info.IsDir() {
		return fileConfiguration{}, &types.ConfigurationError{Source: path, Err: errors.New("configuration path is a directory")}
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return fileConfiguration{}, &types.ConfigurationError{Source: path, Err: fmt.Errorf("read configuration: %w", readErr)}
	}
	var configuration fileConfiguration
	if decodeErr := reader.Unmarshal(&configuration); decodeErr != nil {
		return fileConfiguration{}, &types.ConfigurationError{Source: path, Err: fmt.Errorf("decode configuration: %w", decodeErr)}
	}
	return configuration, nil
}

func (configuration Configuration) merge(override fileConfiguration) Configuration {
	result := configuration
	result.Output = result.Output.merge(override.Output)
	result.Ignore = result.Ignore.merge(override.Ignore)
	return result
}

func (configuration OutputConfiguration) merge(override fileOutputConfiguration) OutputConfiguration {
	result := configuration
	if override.FilePath != nil {
		result.FilePath = *override.FilePath
	}
	if override.Style != nil {
		result.Style = *override.Style
	}
	if override.RemoveComments != nil {
		result.RemoveComments = *override.RemoveComments
	}
	if override.RemoveEmptyLines != nil {
		result.RemoveEmptyLines = *override.RemoveEmptyLines
	}
	if override.ShowLineNumbers != nil {
		result.ShowLineNumbers = *override.ShowLineNumbers
	}
	if override.TopFilesLength != nil {
		result.TopFilesLength = *override.TopFilesLength
	}
	if override.HeaderText != nil {
		result.HeaderText = *override.HeaderText
	}
	if override.CopyToClipboard != nil {
		result.CopyToClipboard = *override.CopyToClipboard
	}
	if override.TokenCount.Enabled != nil {
		result.TokenCount.Enabled = *override.TokenCount.Enabled
	}
	if override.TokenCount.Encoding != nil {
		result.TokenCount.Encoding = *override.TokenCount.Encoding
	}
	return result
}

func (configuration IgnoreConfiguration) merge(override fileIgnoreConfiguration) IgnoreConfiguration {
	result := configuration
	if override.UseGitignore != nil {
		result.UseGitignore = *override.UseGitignore
	}
	if override.UseDefaultPatterns != nil {
		result.UseDefaultPatterns = *override.UseDefaultPatterns
	}
	result.CustomPatterns = append(append([]string{}, configuration.CustomPatterns...), override.CustomPatterns...)
	return result
}

// toFile expands a resolved configuration into its serializable form.
func (configuration Configuration) toFile() fileConfiguration {
	output := configuration.Output
	customPatterns := append([]string{}, configuration.Ignore.CustomPatterns...)
	return fileConfiguration{
		Output: fileOutputConfiguration{
			FilePath:         cloneString(&output.FilePath),
			Style:            cloneString(&output.Style),
			RemoveComments:   cloneBool(&output.RemoveComments),
			RemoveEmptyLines: cloneBool(&output.RemoveEmptyLines),
			ShowLineNumbers:  cloneBool(&output.ShowLineNumbers),
			TopFilesLength:   cloneInt(&output.TopFilesLength),
			HeaderText:       cloneString(&output.HeaderText),
			CopyToClipboard:  cloneBool(&output.CopyToClipboard),
			TokenCount: fileTokenCountConfiguration{
				Enabled:  cloneBool(&output.TokenCount.Enabled),
				Encoding: cloneString(&output.TokenCount.Encoding),
			},
		},
		Ignore: fileIgnoreConfiguration{
			UseGitignore:       cloneBool(&configuration.Ignore.UseGitignore),
			UseDefaultPatterns: cloneBool(&configuration.Ignore.UseDefaultPatterns),
			CustomPatterns:     customPatterns,
		},
	}
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
