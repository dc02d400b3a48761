package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/temirov/repopack/internal/packager"
	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

const (
	summaryTitle         = "📊 Pack Summary:"
	summaryRule          = "────────────────"
	topFilesTitleFormat  = "📈 Top %d Files by Character Count:"
	topTokensTitleFormat = "🔢 Top %d Files by Token Count:"
	topFilesRule         = "──────────────────────────────────"
	completionTitle      = "🎉 All Done!"
	completionMessage    = "Your repository has been successfully packed."
)

// printSummary writes the totals and the largest files of result.
func printSummary(writer io.Writer, result types.PackResult, topFilesLength int) {
	heading := color.New(color.FgCyan)
	plain := color.New(color.FgWhite)

	heading.Fprintln(writer, "\n"+summaryTitle)
	heading.Fprintln(writer, summaryRule)
	plain.Fprintf(writer, "Total Files: %d\n", result.TotalFiles)
	plain.Fprintf(writer, "Total Chars: %d\n", result.TotalCharacters)
	if result.FileTokenCounts != nil {
		plain.Fprintf(writer, "Total Tokens: %d\n", result.TotalTokens)
	}
	plain.Fprintf(writer, "     Output: %s (%s)\n", result.OutputPath, utils.FormatFileSize(result.OutputBytes))

	if topFilesLength <= 0 {
		return
	}
	printRanking(writer, fmt.Sprintf(topFilesTitleFormat, topFilesLength), packager.TopFiles(result.FileCharCounts, topFilesLength), "chars")
	if result.FileTokenCounts != nil {
		printRanking(writer, fmt.Sprintf(topTokensTitleFormat, topFilesLength), packager.TopFiles(result.FileTokenCounts, topFilesLength), "tokens")
	}
}

func printRanking(writer io.Writer, title string, ranked []types.FileCount, unit string) {
	heading := color.New(color.FgCyan)
	plain := color.New(color.FgWhite)
	dim := color.New(color.Faint)

	heading.Fprintln(writer, "\n"+title)
	heading.Fprintln(writer, topFilesRule)
	for index, fileCount := range ranked {
		plain.Fprintf(writer, "%d. %s ", index+1, fileCount.Path)
		dim.Fprintf(writer, "(%d %s)\n", fileCount.Count, unit)
	}
}

// printCompletion writes the closing message of a successful run.
func printCompletion(writer io.Writer) {
	color.New(color.FgGreen).Fprintln(writer, "\n"+completionTitle)
	color.New(color.FgWhite).Fprintln(writer, completionMessage)
}
