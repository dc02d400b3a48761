// Package ignore decides which paths of a project are packed. Patterns follow
// gitignore semantics and are evaluated last-match-wins.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/temirov/repopack/internal/types"
)

const commentPrefix = "#"

// defaultPatterns is the built-in ignore list. It is never modified; DefaultPatterns hands out copies.
var defaultPatterns = [...]string{
	".git",
	".gitignore",
	"node_modules",
	"*.pyc",
	"__pycache__",
	".vscode",
	".idea",
	"*.log",
	"*.swp",
	"*.swo",
}

// DefaultPatterns returns a copy of the built-in ignore patterns.
func DefaultPatterns() []string {
	patterns := make([]string, len(defaultPatterns))
	copy(patterns, defaultPatterns[:])
	return patterns
}

// LoadPatternFile reads newline-delimited patterns from patternFilePath. Blank lines and
// lines starting with "#" are dropped. A missing file yields no patterns; an existing
// file that cannot be read yields a *types.ConfigurationError.
//
// #nosec G304
func LoadPatternFile(patternFilePath string) ([]string, error) {
	fileHandle, openError := os.Open(patternFilePath)
	if openError != nil {
		if errors.Is(openError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &types.ConfigurationError{Source: patternFilePath, Err: openError}
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, &types.ConfigurationError{Source: patternFilePath, Err: fmt.Errorf("read patterns: %w", scanError)}
	}
	return patterns, nil
}
