package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/temirov/repopack/internal/config"
	"github.com/temirov/repopack/internal/tree"
	"github.com/temirov/repopack/internal/types"
)

const outputFilePermissions = 0o644

// Generate renders the document for files, with the tree built from includedPaths, and
// writes it to the configured output file. It returns the written document.
func Generate(rootDirectory string, configuration config.Configuration, files []types.SanitizedFile, includedPaths []string) (string, error) {
	return GenerateAt(rootDirectory, configuration, files, includedPaths, time.Now())
}

// GenerateAt is Generate with an explicit generation time.
func GenerateAt(rootDirectory string, configuration config.Configuration, files []types.SanitizedFile, includedPaths []string, generatedAt time.Time) (string, error) {
	outputPath := configuration.Output.FilePath
	context := RenderContext{
		GeneratedAt: generatedAt,
		Repository:  repositoryName(rootDirectory),
		Tree:        tree.RenderPaths(includedPaths),
		Files:       files,
		Options:     configuration.Output,
	}

	var document string
	switch configuration.Output.Style {
	case types.StylePlain, "":
		document = RenderPlain(context)
	case types.StyleXML:
		rendered, renderError := RenderXML(context)
		if renderError != nil {
			return "", &types.OutputGenerationError{Path: outputPath, Err: fmt.Errorf("render xml: %w", renderError)}
		}
		document = rendered
	default:
		return "", &types.OutputGenerationError{Path: outputPath, Err: fmt.Errorf("unsupported output style %q", configuration.Output.Style)}
	}

	if writeError := os.WriteFile(outputPath, []byte(document), outputFilePermissions); writeError != nil {
		return "", &types.OutputGenerationError{Path: outputPath, Err: writeError}
	}
	return document, nil
}

func repositoryName(rootDirectory string) string {
	if rootDirectory == "" {
		return ""
	}
	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return filepath.Base(rootDirectory)
	}
	return filepath.Base(absoluteRoot)
}
