package ignore_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/repopack/internal/ignore"
	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadPatternFileDropsBlankAndCommentLines(t *testing.T) {
	rootDirectory := t.TempDir()
	patternFilePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	writeFile(t, patternFilePath, "*.log\n#comment\n\n  node_modules/  \n")

	patterns, err := ignore.LoadPatternFile(patternFilePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.log", "node_modules/"}, patterns)
}

func TestLoadPatternFileMissingFile(t *testing.T) {
	patterns, err := ignore.LoadPatternFile(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestLoadPatternFileUnreadableIsConfigurationError(t *testing.T) {
	rootDirectory := t.TempDir()
	directoryInPlaceOfFile := filepath.Join(rootDirectory, utils.ToolIgnoreFileName)
	require.NoError(t, os.Mkdir(directoryInPlaceOfFile, 0o755))

	_, err := ignore.LoadPatternFile(directoryInPlaceOfFile)
	require.Error(t, err)
	var configurationError *types.ConfigurationError
	assert.True(t, errors.As(err, &configurationError))
}

func TestDefaultPatternsReturnsCopy(t *testing.T) {
	first := ignore.DefaultPatterns()
	first[0] = "mutated"
	second := ignore.DefaultPatterns()
	assert.Equal(t, ".git", second[0])
	assert.Contains(t, second, "*.log")
}

func TestBuildRuleSetConcatenatesSourcesInPriorityOrder(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFile(t, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "*.tmp\n")
	writeFile(t, filepath.Join(rootDirectory, utils.ToolIgnoreFileName), "secrets/\n")

	ruleSet, err := ignore.BuildRuleSet(ignore.RuleSetOptions{
		RootDirectory:      rootDirectory,
		UseDefaultPatterns: true,
		UseGitignore:       true,
		CustomPatterns:     []string{"*.custom", "  "},
	})
	require.NoError(t, err)

	expected := append(ignore.DefaultPatterns(), "*.tmp", "secrets/", "*.custom")
	assert.Equal(t, expected, ruleSet.Patterns())
}

func TestBuildRuleSetHonorsDisabledSources(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFile(t, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "*.tmp\n")
	writeFile(t, filepath.Join(rootDirectory, utils.ToolIgnoreFileName), "*.bak\n")

	ruleSet, err := ignore.BuildRuleSet(ignore.RuleSetOptions{RootDirectory: rootDirectory})
	require.NoError(t, err)

	assert.Equal(t, []string{"*.bak"}, ruleSet.Patterns())
	assert.True(t, ruleSet.Match("build.tmp"))
	assert.True(t, ruleSet.Match("debug.log"))
	assert.False(t, ruleSet.Match("old.bak"))
}

func TestMatch(t *testing.T) {
	testCases := []struct {
		name     string
		patterns []string
		path     string
		included bool
	}{
		{name: "no patterns", patterns: nil, path: "src/main.go", included: true},
		{name: "extension glob", patterns: []string{"*.log"}, path: "test.log", included: false},
		{name: "extension glob nested", patterns: []string{"*.log"}, path: "logs/app/test.log", included: false},
		{name: "star stays in segment", patterns: []string{"src/*.js"}, path: "src/lib/index.js", included: true},
		{name: "star matches in segment", patterns: []string{"src/*.js"}, path: "src/index.js", included: false},
		{name: "double star", patterns: []string{"**/fixtures"}, path: "a/b/fixtures/data.json", included: false},
		{name: "directory pattern content", patterns: []string{"node_modules/"}, path: "node_modules/package.json", included: false},
		{name: "directory pattern skips file", patterns: []string{"build/"}, path: "build", included: true},
		{name: "directory pattern matches dir", patterns: []string{"build/"}, path: "build/", included: false},
		{name: "unrelated path", patterns: []string{"*.log", "node_modules/"}, path: "src/main.py", included: true},
		{name: "negation re-includes", patterns: []string{"*.log", "!keep.log"}, path: "keep.log", included: true},
		{name: "later pattern wins", patterns: []string{"*.log", "!keep.log", "keep.log"}, path: "keep.log", included: false},
		{name: "negation without match", patterns: []string{"!keep.log"}, path: "keep.log", included: true},
		{name: "host separators", patterns: []string{"docs/"}, path: filepath.Join("docs", "guide.md"), included: false},
		{name: "middle slash anchors to root", patterns: []string{"src/main.py"}, path: "src/main.py", included: false},
		{name: "middle slash skips nested copy", patterns: []string{"src/main.py"}, path: "lib/src/main.py", included: true},
		{name: "anchored directory content", patterns: []string{"docs/guide"}, path: "docs/guide/a.md", included: false},
		{name: "anchored directory skips nested copy", patterns: []string{"docs/guide"}, path: "vendor/docs/guide/a.md", included: true},
		{name: "leading slash anchors", patterns: []string{"/root.txt"}, path: "nested/root.txt", included: true},
		{name: "trailing slash only stays unanchored", patterns: []string{"src/"}, path: "lib/src/a.go", included: false},
		{name: "leading double star stays unanchored", patterns: []string{"**/cache/data"}, path: "a/cache/data", included: false},
		{name: "inner double star", patterns: []string{"foo/**/bar"}, path: "foo/x/y/bar", included: false},
		{name: "inner double star anchored", patterns: []string{"foo/**/bar"}, path: "z/foo/x/bar", included: true},
		{name: "question mark matches one character", patterns: []string{"file?.txt"}, path: "file1.txt", included: false},
		{name: "question mark matches nested name", patterns: []string{"file?.txt"}, path: "dir/file1.txt", included: false},
		{name: "question mark needs exactly one", patterns: []string{"file?.txt"}, path: "file12.txt", included: true},
		{name: "question mark skips separator", patterns: []string{"a?b"}, path: "a/b", included: true},
		{name: "escaped question mark is literal", patterns: []string{`why\?.md`}, path: "why?.md", included: false},
		{name: "escaped question mark rejects other", patterns: []string{`why\?.md`}, path: "whyx.md", included: true},
		{name: "negated class", patterns: []string{"file[!0-9].txt"}, path: "fileA.txt", included: false},
		{name: "negated class rejects member", patterns: []string{"file[!0-9].txt"}, path: "file1.txt", included: true},
		{name: "repeated pattern after negation", patterns: []string{"*.txt", "!keep.txt", "*.txt"}, path: "keep.txt", included: false},
		{name: "leading dot slash", patterns: []string{"README.md"}, path: "./README.md", included: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ruleSet := ignore.NewRuleSet(testCase.patterns)
			assert.Equal(t, testCase.included, ruleSet.Match(testCase.path))
			assert.Equal(t, testCase.included, ruleSet.Match(testCase.path), "match must be deterministic")
		})
	}
}

func TestAppendingNegationReincludesIgnoredPath(t *testing.T) {
	paths := []string{"debug.log", "nested/trace.log", "node_modules/left-pad/index.js", ".idea/workspace.xml"}
	for _, path := range paths {
		ignoredBy := ignore.NewRuleSet(ignore.DefaultPatterns())
		require.False(t, ignoredBy.Match(path), "expected %s to be ignored by defaults", path)

		reincluded := ignore.NewRuleSet(append(ignore.DefaultPatterns(), "!"+path))
		assert.True(t, reincluded.Match(path), "expected %s to be re-included", path)
		assert.True(t, reincluded.HasNegations())
	}
}

func TestMatchDirectory(t *testing.T) {
	ruleSet := ignore.NewRuleSet([]string{"dist/", "*.log"})
	assert.False(t, ruleSet.MatchDirectory("dist"))
	assert.False(t, ruleSet.MatchDirectory("packages/web/dist/"))
	assert.True(t, ruleSet.MatchDirectory("src"))
	assert.True(t, ruleSet.MatchDirectory("."))
	assert.False(t, ruleSet.HasNegations())
}

func TestMatchTreatsBackslashAsNameCharacterOnPosix(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("backslash is a separator on this host")
	}
	ruleSet := ignore.NewRuleSet([]string{"docs/"})
	assert.True(t, ruleSet.Match(`docs\guide.md`))
}

func TestPatternsKeepsOriginalText(t *testing.T) {
	patterns := []string{"src/main.py", "file?.txt", "!keep.txt"}
	ruleSet := ignore.NewRuleSet(patterns)
	assert.Equal(t, patterns, ruleSet.Patterns())
	assert.True(t, ruleSet.HasNegations())
}
