package utils_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/temirov/repopack/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0 B"},
		{name: "zero", bytes: 0, expected: "0 B"},
		{name: "bytes", bytes: 512, expected: "512 B"},
		{name: "one kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10.0 MB"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatTimestampZero(t *testing.T) {
	if result := utils.FormatTimestamp(time.Time{}); result != "" {
		t.Fatalf("expected empty timestamp, got %q", result)
	}
}

func TestNormalizeRelativePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already normalized", input: "src/main.go", expected: "src/main.go"},
		{name: "host separators", input: filepath.Join("src", "pkg", "main.go"), expected: "src/pkg/main.go"},
		{name: "leading dot slash", input: "./README.md", expected: "README.md"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := utils.NormalizeRelativePath(testCase.input); result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestNormalizeRelativePathKeepsBackslashInPosixNames(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("backslash is a separator on this host")
	}
	if result := utils.NormalizeRelativePath(`notes\draft.md`); result != `notes\draft.md` {
		t.Fatalf("expected backslash to be kept, got %s", result)
	}
}

func TestRelativePathOrSelf(t *testing.T) {
	root := t.TempDir()
	if result := utils.RelativePathOrSelf(root, root); result != "." {
		t.Fatalf("expected '.', got %q", result)
	}
	nested := root + "/src/main.go"
	if result := utils.RelativePathOrSelf(nested, root); result != "src/main.go" {
		t.Fatalf("expected src/main.go, got %q", result)
	}
}
