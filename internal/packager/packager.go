// Package packager drives a packing run: it collects the candidate files, filters them
// through the ignore rules, sanitizes the survivors and writes the output document.
package packager

import (
	"errors"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/repopack/internal/config"
	"github.com/temirov/repopack/internal/ignore"
	"github.com/temirov/repopack/internal/output"
	"github.com/temirov/repopack/internal/sanitize"
	"github.com/temirov/repopack/internal/services/clipboard"
	"github.com/temirov/repopack/internal/tokenizer"
	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

// FileSanitizer turns relative paths under a root directory into sanitized files.
type FileSanitizer interface {
	SanitizeFiles(rootDirectory string, relativePaths []string) ([]types.SanitizedFile, error)
}

// Options carries the collaborators of a run. Nil fields fall back to the defaults
// derived from the configuration.
type Options struct {
	Logger       *zap.Logger
	Sanitizer    FileSanitizer
	TokenCounter tokenizer.Counter
	Copier       clipboard.Copier
	Now          func() time.Time
}

// Pack packs rootDirectory according to configuration. Every failure is returned as a
// *types.PackError wrapping the classified cause, and no output file is written when
// a file fails to sanitize.
func Pack(rootDirectory string, configuration config.Configuration, options Options) (types.PackResult, error) {
	logger := utils.LoggerOrNop(options.Logger)
	logger.Debug("starting pack", zap.String("directory", rootDirectory))

	if validationError := configuration.Validate(); validationError != nil {
		return types.PackResult{}, &types.PackError{Stage: types.StageConfiguration, Err: validationError}
	}

	ruleSet, ruleSetError := ignore.BuildRuleSet(ignore.RuleSetOptions{
		RootDirectory:      rootDirectory,
		UseDefaultPatterns: configuration.Ignore.UseDefaultPatterns,
		UseGitignore:       configuration.Ignore.UseGitignore,
		CustomPatterns:     configuration.Ignore.CustomPatterns,
	})
	if ruleSetError != nil {
		return types.PackResult{}, &types.PackError{Stage: types.StageConfiguration, Err: ruleSetError}
	}
	logger.Debug("ignore patterns", zap.Strings("patterns", ruleSet.Patterns()))

	outputPath, absoluteError := filepath.Abs(configuration.Output.FilePath)
	if absoluteError != nil {
		return types.PackResult{}, &types.PackError{Stage: types.StageOS, Err: absoluteError}
	}
	includedPaths, collectError := collectPaths(rootDirectory, ruleSet, logger, outputPath)
	if collectError != nil {
		return types.PackResult{}, collectError
	}
	logger.Info("files to process", zap.Int("count", len(includedPaths)))

	sanitizer := options.Sanitizer
	if sanitizer == nil {
		sanitizer = sanitize.New(sanitize.Options{
			RemoveComments:   configuration.Output.RemoveComments,
			RemoveEmptyLines: configuration.Output.RemoveEmptyLines,
			ShowLineNumbers:  configuration.Output.ShowLineNumbers,
		}, logger)
	}
	sanitizedFiles, sanitizeError := sanitizer.SanitizeFiles(rootDirectory, includedPaths)
	if sanitizeError != nil {
		logger.Error("error processing files", zap.Error(sanitizeError))
		return types.PackResult{}, &types.PackError{Stage: types.StageFileProcessing, Err: sanitizeError}
	}
	logger.Debug("sanitized files", zap.Int("count", len(sanitizedFiles)))

	result := types.PackResult{
		TotalFiles:     len(sanitizedFiles),
		FileCharCounts: make(map[string]int, len(sanitizedFiles)),
		OutputPath:     configuration.Output.FilePath,
	}
	for _, sanitizedFile := range sanitizedFiles {
		characters := output.CharacterCount(sanitizedFile.Content)
		result.FileCharCounts[sanitizedFile.Path] = characters
		result.TotalCharacters += characters
	}

	if configuration.Output.TokenCount.Enabled {
		countTokens(&result, sanitizedFiles, configuration.Output.TokenCount.Encoding, options.TokenCounter, logger)
	}

	now := options.Now
	if now == nil {
		now = time.Now
	}
	document, generateError := output.GenerateAt(rootDirectory, configuration, sanitizedFiles, includedPaths, now())
	if generateError != nil {
		logger.Error("error generating output", zap.Error(generateError))
		return types.PackResult{}, &types.PackError{Stage: types.StageOutput, Err: generateError}
	}

	result.OutputBytes = int64(len(document))

	if configuration.Output.CopyToClipboard {
		copier := options.Copier
		if copier == nil {
			copier = clipboard.NewService()
		}
		copyError := copier.Copy(document)
		switch {
		case errors.Is(copyError, clipboard.ErrUnavailable):
			logger.Warn("clipboard copy skipped: no clipboard utility found")
		case copyError != nil:
			logger.Warn("failed to copy output to clipboard", zap.Error(copyError))
		}
	}

	logger.Info("packing complete",
		zap.Int("total_files", result.TotalFiles),
		zap.Int("total_characters", result.TotalCharacters))
	return result, nil
}

// countTokens fills the token fields of result. Token counts are supplemental, so a
// tokenizer failure is logged and leaves them empty.
func countTokens(result *types.PackResult, sanitizedFiles []types.SanitizedFile, encoding string, counter tokenizer.Counter, logger *zap.Logger) {
	if counter == nil {
		createdCounter, counterError := tokenizer.NewCounter(encoding)
		if counterError != nil {
			logger.Warn("token counting unavailable", zap.Error(counterError))
			return
		}
		counter = createdCounter
	}
	texts := make(map[string]string, len(sanitizedFiles))
	for _, sanitizedFile := range sanitizedFiles {
		texts[sanitizedFile.Path] = sanitizedFile.Content
	}
	fileTokenCounts, totalTokens, countError := tokenizer.CountTexts(counter, texts)
	if countError != nil {
		logger.Warn("token counting failed", zap.Error(countError))
		return
	}
	result.FileTokenCounts = fileTokenCounts
	result.TotalTokens = totalTokens
}

// TopFiles returns up to limit entries of counts ordered by count descending, then path.
func TopFiles(counts map[string]int, limit int) []types.FileCount {
	if limit <= 0 || len(counts) == 0 {
		return nil
	}
	ranked := make([]types.FileCount, 0, len(counts))
	for path, count := range counts {
		ranked = append(ranked, types.FileCount{Path: path, Count: count})
	}
	sort.Slice(ranked, func(leftIndex, rightIndex int) bool {
		if ranked[leftIndex].Count != ranked[rightIndex].Count {
			return ranked[leftIndex].Count > ranked[rightIndex].Count
		}
		return ranked[leftIndex].Path < ranked[rightIndex].Path
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
