// Package sanitize turns raw repository files into the normalized text that is packed:
// binary files are detected and skipped, text is decoded, and optional comment removal,
// empty line removal and line numbering are applied.
package sanitize

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

// Options selects the optional transformations.
type Options struct {
	RemoveComments   bool
	RemoveEmptyLines bool
	ShowLineNumbers  bool
}

// Sanitizer applies Options to files on disk.
type Sanitizer struct {
	Options Options
	Logger  *zap.Logger
}

// New returns a Sanitizer for options. A nil logger is replaced with a no-op logger.
func New(options Options, logger *zap.Logger) *Sanitizer {
	return &Sanitizer{Options: options, Logger: utils.LoggerOrNop(logger)}
}

// SanitizeFile reads the file at path and returns its sanitized text. The result is
// empty when nothing remains after the transformations.
//
// #nosec G304
func (sanitizer *Sanitizer) SanitizeFile(path string) (string, error) {
	raw, readError := os.ReadFile(path)
	if readError != nil {
		return "", &types.FileProcessingError{Path: path, Err: readError}
	}
	text, charset := DecodeText(raw)
	logger := utils.LoggerOrNop(sanitizer.Logger)
	if charset != charsetUTF8 {
		logger.Debug("decoded with detected charset", zap.String("path", path), zap.String("charset", charset))
	}

	if sanitizer.Options.RemoveComments {
		style := CommentStyleForPath(path)
		if style == CommentStyleNone {
			logger.Debug("comment removal not supported for file type", zap.String("extension", filepath.Ext(path)))
		}
		text = StripComments(text, style)
	}
	if sanitizer.Options.RemoveEmptyLines {
		text = RemoveEmptyLines(text)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if sanitizer.Options.ShowLineNumbers {
		text = AddLineNumbers(text)
	}
	return text, nil
}

// SanitizeFiles sanitizes every relative path under rootDirectory in order. Binary files
// and files that sanitize to nothing are left out. The first failure aborts the run and
// no partial result is returned.
func (sanitizer *Sanitizer) SanitizeFiles(rootDirectory string, relativePaths []string) ([]types.SanitizedFile, error) {
	logger := utils.LoggerOrNop(sanitizer.Logger)
	sanitizedFiles := make([]types.SanitizedFile, 0, len(relativePaths))
	for _, relativePath := range relativePaths {
		fullPath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if IsBinary(fullPath) {
			logger.Debug("skipping binary file", zap.String("path", relativePath))
			continue
		}
		content, sanitizeError := sanitizer.SanitizeFile(fullPath)
		if sanitizeError != nil {
			return nil, sanitizeError
		}
		if content == "" {
			logger.Debug("skipping empty file", zap.String("path", relativePath))
			continue
		}
		sanitizedFiles = append(sanitizedFiles, types.SanitizedFile{Path: relativePath, Content: content})
	}
	return sanitizedFiles, nil
}
