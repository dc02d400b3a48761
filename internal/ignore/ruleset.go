package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/repopack/internal/utils"
)

const (
	negationPrefix   = "!"
	directorySuffix  = "/"
	anchorPrefix     = "/"
	leadingAnyDepth  = "**/"
	currentDirectory = "."

	escapeCharacter      = '\\'
	singleCharacter      = '?'
	classOpening         = '['
	classNegation        = '!'
	singleCharacterClass = `[^\x2f]`
	literalQuestionMark  = `[?]`
	negatedClassOpening  = "[^"
)

// RuleSetOptions selects the pattern sources combined by BuildRuleSet.
type RuleSetOptions struct {
	RootDirectory      string
	UseDefaultPatterns bool
	UseGitignore       bool
	CustomPatterns     []string
}

// RuleSet is an ordered, compiled list of ignore patterns.
type RuleSet struct {
	patterns     []string
	matcher      *gitignore.GitIgnore
	hasNegations bool
}

// BuildRuleSet concatenates, in priority order, the built-in defaults, the root
// .gitignore, the root .repopackignore and the custom patterns.
func BuildRuleSet(options RuleSetOptions) (*RuleSet, error) {
	var patterns []string
	if options.UseDefaultPatterns {
		patterns = append(patterns, DefaultPatterns()...)
	}

	if options.UseGitignore {
		gitIgnorePatterns, loadError := LoadPatternFile(filepath.Join(options.RootDirectory, utils.GitIgnoreFileName))
		if loadError != nil {
			return nil, loadError
		}
		patterns = append(patterns, gitIgnorePatterns...)
	}

	toolPatterns, loadError := LoadPatternFile(filepath.Join(options.RootDirectory, utils.ToolIgnoreFileName))
	if loadError != nil {
		return nil, loadError
	}
	patterns = append(patterns, toolPatterns...)

	for _, customPattern := range options.CustomPatterns {
		trimmedPattern := strings.TrimSpace(customPattern)
		if trimmedPattern == "" {
			continue
		}
		patterns = append(patterns, trimmedPattern)
	}

	return NewRuleSet(patterns), nil
}

// NewRuleSet compiles patterns in the given order.
func NewRuleSet(patterns []string) *RuleSet {
	ruleSet := &RuleSet{
		patterns: append([]string(nil), patterns...),
	}
	compiledPatterns := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if strings.HasPrefix(strings.TrimSpace(pattern), negationPrefix) {
			ruleSet.hasNegations = true
		}
		compiledPatterns = append(compiledPatterns, matcherPattern(pattern))
	}
	ruleSet.matcher = gitignore.CompileIgnoreLines(compiledPatterns...)
	return ruleSet
}

// matcherPattern rewrites a gitignore pattern into the dialect understood by the
// compiled matcher. A pattern holding a separator anywhere but at its end is anchored
// to the root directory, "?" matches one character other than "/", and a class
// opened with "[!" is negated.
func matcherPattern(pattern string) string {
	trimmedPattern := strings.TrimSpace(pattern)
	if trimmedPattern == "" || strings.HasPrefix(trimmedPattern, commentPrefix) {
		return trimmedPattern
	}
	negated := strings.HasPrefix(trimmedPattern, negationPrefix)
	body := strings.TrimPrefix(trimmedPattern, negationPrefix)
	if body == "" {
		return trimmedPattern
	}

	if strings.Contains(strings.TrimSuffix(body, directorySuffix), directorySuffix) &&
		!strings.HasPrefix(body, anchorPrefix) && !strings.HasPrefix(body, leadingAnyDepth) {
		body = anchorPrefix + body
	}

	var builder strings.Builder
	characters := []rune(body)
	for index := 0; index < len(characters); index++ {
		character := characters[index]
		switch {
		case character == escapeCharacter && index+1 < len(characters) && characters[index+1] == singleCharacter:
			builder.WriteString(literalQuestionMark)
			index++
		case character == escapeCharacter && index+1 < len(characters):
			builder.WriteRune(character)
			builder.WriteRune(characters[index+1])
			index++
		case character == singleCharacter:
			builder.WriteString(singleCharacterClass)
		case character == classOpening && index+1 < len(characters) && characters[index+1] == classNegation:
			builder.WriteString(negatedClassOpening)
			index++
		default:
			builder.WriteRune(character)
		}
	}

	if negated {
		return negationPrefix + builder.String()
	}
	return builder.String()
}

// Match reports whether relativePath is included. The outcome of the last pattern
// matching the path decides; a path matched by no pattern is included. A trailing
// slash marks the path as a directory so directory-only patterns apply to it.
func (ruleSet *RuleSet) Match(relativePath string) bool {
	normalizedPath := utils.NormalizeRelativePath(relativePath)
	if normalizedPath == "" || normalizedPath == currentDirectory || ruleSet == nil || ruleSet.matcher == nil {
		return true
	}
	return !ruleSet.matcher.MatchesPath(normalizedPath)
}

// MatchDirectory reports whether the directory at relativeDirectory is included.
func (ruleSet *RuleSet) MatchDirectory(relativeDirectory string) bool {
	normalizedDirectory := strings.TrimSuffix(utils.NormalizeRelativePath(relativeDirectory), directorySuffix)
	if normalizedDirectory == "" || normalizedDirectory == currentDirectory {
		return true
	}
	return ruleSet.Match(normalizedDirectory + directorySuffix)
}

// HasNegations reports whether any pattern re-includes paths with "!".
func (ruleSet *RuleSet) HasNegations() bool {
	return ruleSet != nil && ruleSet.hasNegations
}

// Patterns returns a copy of the patterns in evaluation order.
func (ruleSet *RuleSet) Patterns() []string {
	if ruleSet == nil {
		return nil
	}
	return append([]string(nil), ruleSet.patterns...)
}
