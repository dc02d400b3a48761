package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/fatih/color"

	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

// prepareEnvironment isolates configuration lookup and returns a fresh working directory.
func prepareEnvironment(t *testing.T) string {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	previousNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previousNoColor })

	workingDirectory := t.TempDir()
	previousDirectory, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working directory: %v", err)
	}
	if err := os.Chdir(workingDirectory); err != nil {
		t.Fatalf("change working directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(previousDirectory) })
	return workingDirectory
}

func writeRepository(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for relativePath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("create directory for %s: %v", relativePath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
	return root
}

func runCommand(t *testing.T, arguments ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command := newRootCommand(&stdout, &stderr)
	command.SetArgs(normalizeBooleanFlagArguments(command, arguments))
	executionError := command.Execute()
	return stdout.String(), executionError
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(content)
}

func TestRootCommandPacksDirectory(t *testing.T) {
	workingDirectory := prepareEnvironment(t)
	root := writeRepository(t, map[string]string{"file1.txt": "Content 1", "file2.py": "Content 2"})

	stdout, err := runCommand(t, root)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}
	for _, expected := range []string{"Total Files: 2", "Total Chars: 18", "Top 5 Files by Character Count", "1. file1.txt (9 chars)", "All Done!"} {
		if !strings.Contains(stdout, expected) {
			t.Fatalf("expected %q in output:\n%s", expected, stdout)
		}
	}
	document := readFile(t, filepath.Join(workingDirectory, "repopack-output.txt"))
	if !strings.Contains(document, "--- file2.py ---\nContent 2") {
		t.Fatalf("unexpected document:\n%s", document)
	}
}

func TestRootCommandFlagsOverrideConfiguration(t *testing.T) {
	workingDirectory := prepareEnvironment(t)
	root := writeRepository(t, map[string]string{
		"main.py":       "# comment\nprint('hi')\n",
		"docs/guide.md": "guide",
		"notes.txt":     "notes",
	})
	configurationContent := `{"output": {"style": "xml", "file_path": "from-config.xml", "top_files_length": 1}}`
	if err := os.WriteFile(filepath.Join(workingDirectory, utils.ConfigFileName), []byte(configurationContent), 0o600); err != nil {
		t.Fatalf("write configuration: %v", err)
	}
	outputPath := filepath.Join(t.TempDir(), "packed.txt")

	stdout, err := runCommand(t, root,
		"-o", outputPath,
		"--output-style", "plain",
		"--remove-comments", "yes",
		"--output-show-line-numbers",
		"-i", "docs/, *.txt",
		"--top-files-len", "0",
	)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}
	if strings.Contains(stdout, "Top ") {
		t.Fatalf("expected no top files listing:\n%s", stdout)
	}
	if _, statErr := os.Stat(filepath.Join(workingDirectory, "from-config.xml")); !os.IsNotExist(statErr) {
		t.Fatalf("expected flag output path to win over configuration")
	}
	document := readFile(t, outputPath)
	if !strings.Contains(document, "--- main.py ---\n1 | print('hi')") {
		t.Fatalf("expected plain, comment-free, numbered output:\n%s", document)
	}
	if strings.Contains(document, "guide.md") || strings.Contains(document, "notes.txt") {
		t.Fatalf("expected ignore patterns to apply:\n%s", document)
	}
}

func TestRootCommandUsesConfiguredStyle(t *testing.T) {
	workingDirectory := prepareEnvironment(t)
	root := writeRepository(t, map[string]string{"a.txt": "alpha"})
	configurationContent := `{"output": {"style": "xml", "file_path": "packed.xml"}}`
	if err := os.WriteFile(filepath.Join(workingDirectory, utils.ConfigFileName), []byte(configurationContent), 0o600); err != nil {
		t.Fatalf("write configuration: %v", err)
	}

	if _, err := runCommand(t, root); err != nil {
		t.Fatalf("command error: %v", err)
	}
	document := readFile(t, filepath.Join(workingDirectory, "packed.xml"))
	if !strings.Contains(document, `<file path="a.txt">alpha</file>`) {
		t.Fatalf("expected xml output:\n%s", document)
	}
}

func TestRootCommandErrors(t *testing.T) {
	testCases := []struct {
		name             string
		arguments        func(root string) []string
		expectConfigType bool
		expectMessage    string
	}{
		{
			name:          "missing_directory",
			arguments:     func(root string) []string { return []string{filepath.Join(root, "absent")} },
			expectMessage: "does not exist",
		},
		{
			name:             "invalid_style",
			arguments:        func(root string) []string { return []string{root, "--output-style", "markdown"} },
			expectConfigType: true,
			expectMessage:    "unsupported output style",
		},
		{
			name:             "missing_explicit_configuration",
			arguments:        func(root string) []string { return []string{root, "-c", "absent.json"} },
			expectConfigType: true,
			expectMessage:    "configuration file not found",
		},
		{
			name:          "invalid_boolean_literal",
			arguments:     func(root string) []string { return []string{root, "--copy=maybe"} },
			expectMessage: "invalid boolean value",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			prepareEnvironment(t)
			root := writeRepository(t, map[string]string{"a.txt": "alpha"})
			_, err := runCommand(t, testCase.arguments(root)...)
			if err == nil || !strings.Contains(err.Error(), testCase.expectMessage) {
				t.Fatalf("expected error containing %q, got %v", testCase.expectMessage, err)
			}
			var configurationError *types.ConfigurationError
			if testCase.expectConfigType && !errors.As(err, &configurationError) {
				t.Fatalf("expected configuration error, got %T", err)
			}
		})
	}
}

func TestRootCommandVersion(t *testing.T) {
	prepareEnvironment(t)
	originalVersion := utils.Version
	utils.Version = "v9.9.9"
	t.Cleanup(func() { utils.Version = originalVersion })

	stdout, err := runCommand(t, "-v")
	if err != nil {
		t.Fatalf("command error: %v", err)
	}
	if strings.TrimSpace(stdout) != "Repopack v9.9.9" {
		t.Fatalf("unexpected version output %q", stdout)
	}
}

func TestInitCommand(t *testing.T) {
	workingDirectory := prepareEnvironment(t)

	stdout, err := runCommand(t, "init", "--format", "yaml")
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.YAMLConfigFileName)
	if !strings.Contains(stdout, expectedPath) {
		t.Fatalf("expected written path in output, got %q", stdout)
	}
	if _, err := runCommand(t, "init", "--format", "yaml"); err == nil {
		t.Fatalf("expected init to refuse overwriting")
	}
	if _, err := runCommand(t, "init", "--format", "yaml", "--force"); err != nil {
		t.Fatalf("expected forced init to succeed: %v", err)
	}
}
