// Package config defines the repopack configuration, its immutable defaults, and the
// layering of configuration files and command-line overrides on top of them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/repopack/internal/types"
)

const (
	defaultOutputFilePath  = "repopack-output.txt"
	defaultTopFilesLength  = 5
	defaultTokenEncoding   = "cl100k_base"
	validationSourceName   = "configuration values"
	invalidStyleFormat     = "unsupported output style %q (expected %s or %s)"
	invalidTopFilesFormat  = "top files length must not be negative, got %d"
	emptyOutputPathMessage = "output file path must not be empty"
)

// Configuration is the fully resolved configuration of one run.
type Configuration struct {
	Output OutputConfiguration
	Ignore IgnoreConfiguration
}

// OutputConfiguration controls sanitization and rendering of the packed document.
type OutputConfiguration struct {
	FilePath         string
	Style            string
	RemoveComments   bool
	RemoveEmptyLines bool
	ShowLineNumbers  bool
	TopFilesLength   int
	HeaderText       string
	CopyToClipboard  bool
	TokenCount       TokenCountConfiguration
}

// TokenCountConfiguration controls the optional token estimate in the summary report.
type TokenCountConfiguration struct {
	Enabled  bool
	Encoding string
}

// IgnoreConfiguration selects the ignore pattern sources.
type IgnoreConfiguration struct {
	UseGitignore       bool
	UseDefaultPatterns bool
	CustomPatterns     []string
}

// Defaults returns a fresh copy of the built-in configuration.
func Defaults() Configuration {
	return Configuration{
		Output: OutputConfiguration{
			FilePath:       defaultOutputFilePath,
			Style:          types.StylePlain,
			TopFilesLength: defaultTopFilesLength,
			TokenCount: TokenCountConfiguration{
				Encoding: defaultTokenEncoding,
			},
		},
		Ignore: IgnoreConfiguration{
			UseGitignore:       true,
			UseDefaultPatterns: true,
			CustomPatterns:     []string{},
		},
	}
}

// Validate reports the first invalid value as a *types.ConfigurationError.
func (configuration Configuration) Validate() error {
	style := configuration.Output.Style
	if style != types.StylePlain && style != types.StyleXML {
		return &types.ConfigurationError{Source: validationSourceName, Err: fmt.Errorf(invalidStyleFormat, style, types.StylePlain, types.StyleXML)}
	}
	if configuration.Output.TopFilesLength < 0 {
		return &types.ConfigurationError{Source: validationSourceName, Err: fmt.Errorf(invalidTopFilesFormat, configuration.Output.TopFilesLength)}
	}
	if strings.TrimSpace(configuration.Output.FilePath) == "" {
		return &types.ConfigurationError{Source: validationSourceName, Err: errors.New(emptyOutputPathMessage)}
	}
	return nil
}

// Overrides carries command-line values. Nil fields leave the configuration untouched.
type Overrides struct {
	OutputFilePath     *string
	Style              *string
	RemoveComments     *bool
	RemoveEmptyLines   *bool
	ShowLineNumbers    *bool
	TopFilesLength     *int
	HeaderText         *string
	CopyToClipboard    *bool
	TokenCountEnabled  *bool
	UseGitignore       *bool
	UseDefaultPatterns *bool
	CustomPatterns     []string
}

// Apply layers overrides onto the configuration and returns the result. Custom patterns
// are appended after the configured ones.
func (configuration Configuration) Apply(overrides Overrides) Configuration {
	result := configuration
	result.Output = result.Output.merge(fileOutputConfiguration{
		FilePath:         overrides.OutputFilePath,
		Style:            overrides.Style,
		RemoveComments:   overrides.RemoveComments,
		RemoveEmptyLines: overrides.RemoveEmptyLines,
		ShowLineNumbers:  overrides.ShowLineNumbers,
		TopFilesLength:   overrides.TopFilesLength,
		HeaderText:       overrides.HeaderText,
		CopyToClipboard:  overrides.CopyToClipboard,
		TokenCount:       fileTokenCountConfiguration{Enabled: overrides.TokenCountEnabled},
	})
	result.Ignore = result.Ignore.merge(fileIgnoreConfiguration{
		UseGitignore:       overrides.UseGitignore,
		UseDefaultPatterns: overrides.UseDefaultPatterns,
		CustomPatterns:     overrides.CustomPatterns,
	})
	return result
}
