package types

import "fmt"

const (
	StageConfiguration  = "configuration"
	StageFileProcessing = "file processing"
	StageOutput         = "output generation"
	StageOS             = "OS"
)

// ConfigurationError reports a bad or unreadable configuration or ignore source.
type ConfigurationError struct {
	Source string
	Err    error
}

func (configurationError *ConfigurationError) Error() string {
	if configurationError.Source == "" {
		return fmt.Sprintf("configuration error: %v", configurationError.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", configurationError.Source, configurationError.Err)
}

func (configurationError *ConfigurationError) Unwrap() error {
	return configurationError.Err
}

// FileProcessingError reports a sanitization failure for a specific path.
type FileProcessingError struct {
	Path string
	Err  error
}

func (fileProcessingError *FileProcessingError) Error() string {
	return fmt.Sprintf("error processing file '%s': %v", fileProcessingError.Path, fileProcessingError.Err)
}

func (fileProcessingError *FileProcessingError) Unwrap() error {
	return fileProcessingError.Err
}

// OutputGenerationError reports a failure composing or writing the output artifact.
type OutputGenerationError struct {
	Path string
	Err  error
}

func (outputGenerationError *OutputGenerationError) Error() string {
	return fmt.Sprintf("error generating output: %v", outputGenerationError.Err)
}

func (outputGenerationError *OutputGenerationError) Unwrap() error {
	return outputGenerationError.Err
}

// PackError is the run-level failure returned by the packager. Stage names the
// pipeline step that failed; Err keeps the classified cause reachable through errors.As.
type PackError struct {
	Stage string
	Err   error
}

func (packError *PackError) Error() string {
	return fmt.Sprintf("%s error: %v", packError.Stage, packError.Err)
}

func (packError *PackError) Unwrap() error {
	return packError.Err
}
