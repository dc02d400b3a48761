package packager

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repopack/internal/ignore"
	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

// CollectPaths walks rootDirectory and returns the slash-separated relative paths of the
// files that ruleSet includes, in lexical walk order. Files whose absolute path appears in
// excludedPaths are skipped. Ignored directories are pruned unless the rule set contains
// negations, in which case their descendants are still evaluated.
func CollectPaths(rootDirectory string, ruleSet *ignore.RuleSet, excludedPaths ...string) ([]string, error) {
	return collectPaths(rootDirectory, ruleSet, zap.NewNop(), excludedPaths...)
}

func collectPaths(rootDirectory string, ruleSet *ignore.RuleSet, logger *zap.Logger, excludedPaths ...string) ([]string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return nil, &types.PackError{Stage: types.StageOS, Err: absoluteError}
	}
	excluded := make(map[string]struct{}, len(excludedPaths))
	for _, excludedPath := range excludedPaths {
		if absoluteExcluded, err := filepath.Abs(excludedPath); err == nil {
			excluded[absoluteExcluded] = struct{}{}
		}
	}
	pruneIgnoredDirectories := !ruleSet.HasNegations()

	var includedPaths []string
	walkFunction := func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if currentPath == absoluteRoot {
			return nil
		}
		relativePath := utils.RelativePathOrSelf(currentPath, absoluteRoot)

		if directoryEntry.IsDir() {
			if pruneIgnoredDirectories && !ruleSet.MatchDirectory(relativePath) {
				logger.Debug("ignoring directory", zap.String("path", relativePath))
				return filepath.SkipDir
			}
			return nil
		}
		if !isRegularFile(currentPath, directoryEntry) {
			return nil
		}
		if _, isExcluded := excluded[currentPath]; isExcluded {
			logger.Debug("skipping output file", zap.String("path", relativePath))
			return nil
		}
		if !ruleSet.Match(relativePath) {
			logger.Debug("ignoring file", zap.String("path", relativePath))
			return nil
		}
		logger.Debug("including file", zap.String("path", relativePath))
		includedPaths = append(includedPaths, relativePath)
		return nil
	}

	if walkError := filepath.WalkDir(absoluteRoot, walkFunction); walkError != nil {
		return nil, &types.PackError{Stage: types.StageOS, Err: walkError}
	}
	return includedPaths, nil
}

// isRegularFile accepts regular files and symbolic links that resolve to one.
func isRegularFile(path string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.Type().IsRegular() {
		return true
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, statError := os.Stat(path)
	return statError == nil && info.Mode().IsRegular()
}
