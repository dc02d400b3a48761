// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repopack/internal/config"
	"github.com/temirov/repopack/internal/packager"
	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

const (
	outputFlagName            = "output"
	outputFlagShorthand       = "o"
	ignoreFlagName            = "ignore"
	ignoreFlagShorthand       = "i"
	configFlagName            = "config"
	configFlagShorthand       = "c"
	verboseFlagName           = "verbose"
	versionFlagName           = "version"
	versionFlagShorthand      = "v"
	topFilesLengthFlagName    = "top-files-len"
	showLineNumbersFlagName   = "output-show-line-numbers"
	outputStyleFlagName       = "output-style"
	removeCommentsFlagName    = "remove-comments"
	removeEmptyLinesFlagName  = "remove-empty-lines"
	headerTextFlagName        = "header-text"
	noGitignoreFlagName       = "no-gitignore"
	noDefaultPatternsFlagName = "no-default-patterns"
	copyFlagName              = "copy"
	tokensFlagName            = "tokens"
	ignorePatternSeparator    = ","
	defaultDirectory          = "."
	versionTemplate           = utils.ApplicationName + " %s\n"
	rootUse                   = "repopack [directory]"
	rootShortDescription      = "Pack a repository into a single AI-friendly file"
	rootLongDescription       = `repopack walks a directory, skips ignored and binary files, and writes every remaining
file into one document together with a summary and a directory tree.
Use --output-style to select plain or xml output and -i to add ignore patterns.`
	rootUsageExample = `  # Pack the current directory into repopack-output.txt
  repopack

  # Pack ./service as XML without comments
  repopack ./service --output-style xml --remove-comments -o service.xml

  # Add ignore patterns and copy the result to the clipboard
  repopack -i "*.md,testdata/" --copy`

	outputFlagDescription            = "output file path"
	ignoreFlagDescription            = "additional ignore patterns (comma-separated)"
	configFlagDescription            = "path to a configuration file"
	verboseFlagDescription           = "enable verbose logging"
	versionFlagDescription           = "display application version"
	topFilesLengthFlagDescription    = "number of largest files to list in the summary"
	showLineNumbersFlagDescription   = "add line numbers to each line in the output"
	outputStyleFlagDescription       = "output style (plain or xml)"
	removeCommentsFlagDescription    = "remove comments from supported file types"
	removeEmptyLinesFlagDescription  = "remove empty lines from files"
	headerTextFlagDescription        = "text placed at the top of the output"
	noGitignoreFlagDescription       = "do not use .gitignore patterns"
	noDefaultPatternsFlagDescription = "do not use the built-in ignore patterns"
	copyFlagDescription              = "copy the output to the system clipboard"
	tokensFlagDescription            = "report token counts in the summary"

	packingMessage          = "Packing files..."
	packingSucceededMessage = "Packing completed successfully!"
	packingFailedFormat     = "Error during packing: %v"
	workingDirectoryFormat  = "unable to determine working directory: %w"
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	errorPathMissingFormat  = "directory '%s' does not exist"
	errorNotDirectoryFormat = "'%s' is not a directory"
	errorStatFormat         = "stat failed for '%s': %w"
)

// rootOptions holds the raw flag values of the root command.
type rootOptions struct {
	outputPath        string
	ignorePatterns    string
	configPath        string
	verbose           bool
	showVersion       bool
	topFilesLength    int
	showLineNumbers   bool
	outputStyle       string
	removeComments    bool
	removeEmptyLines  bool
	headerText        string
	noGitignore       bool
	noDefaultPatterns bool
	copyToClipboard   bool
	tokens            bool
}

// Execute runs the repopack application.
func Execute() error {
	rootCommand := newRootCommand(os.Stdout, os.Stderr)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// newRootCommand builds the root Cobra command writing reports to stdout and progress to stderr.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			directory := defaultDirectory
			if len(arguments) > 0 {
				directory = arguments[0]
			}
			return runPack(command.Flags(), directory, options, stdout, stderr)
		},
	}
	rootCommand.SetOut(stdout)
	rootCommand.SetErr(stderr)

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flagSet.StringVarP(&options.ignorePatterns, ignoreFlagName, ignoreFlagShorthand, "", ignoreFlagDescription)
	flagSet.StringVarP(&options.configPath, configFlagName, configFlagShorthand, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, false, verboseFlagDescription)
	flagSet.BoolVarP(&options.showVersion, versionFlagName, versionFlagShorthand, false, versionFlagDescription)
	flagSet.IntVar(&options.topFilesLength, topFilesLengthFlagName, 0, topFilesLengthFlagDescription)
	registerBooleanFlag(flagSet, &options.showLineNumbers, showLineNumbersFlagName, false, showLineNumbersFlagDescription)
	flagSet.StringVar(&options.outputStyle, outputStyleFlagName, types.StylePlain, outputStyleFlagDescription)
	registerBooleanFlag(flagSet, &options.removeComments, removeCommentsFlagName, false, removeCommentsFlagDescription)
	registerBooleanFlag(flagSet, &options.removeEmptyLines, removeEmptyLinesFlagName, false, removeEmptyLinesFlagDescription)
	flagSet.StringVar(&options.headerText, headerTextFlagName, "", headerTextFlagDescription)
	registerBooleanFlag(flagSet, &options.noGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.noDefaultPatterns, noDefaultPatternsFlagName, false, noDefaultPatternsFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens, tokensFlagName, false, tokensFlagDescription)

	rootCommand.AddCommand(newInitCommand(stdout))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

func runPack(flagSet *pflag.FlagSet, directory string, options rootOptions, stdout, stderr io.Writer) error {
	logger, loggerError := utils.NewApplicationLogger(options.verbose)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	rootDirectory, directoryError := resolveDirectory(directory)
	if directoryError != nil {
		return directoryError
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryFormat, workingDirectoryError)
	}
	loadedConfiguration, loadError := config.Load(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		logger.Error("configuration file error", zap.Error(loadError))
		return loadError
	}
	configuration := loadedConfiguration.Apply(overridesFromFlags(flagSet, options))
	if validationError := configuration.Validate(); validationError != nil {
		return validationError
	}
	logger.Debug("merged configuration", zap.Any("configuration", configuration))

	progress := newProgressReporter(stderr, options.verbose)
	progress.Start(packingMessage)
	result, packError := packager.Pack(rootDirectory, configuration, packager.Options{Logger: logger})
	if packError != nil {
		progress.Fail(fmt.Sprintf(packingFailedFormat, packError))
		var wrapped *types.PackError
		if errors.As(packError, &wrapped) {
			logger.Debug("pack failed", zap.String("stage", wrapped.Stage))
		}
		return packError
	}
	progress.Succeed(packingSucceededMessage)

	printSummary(stdout, result, configuration.Output.TopFilesLength)
	printCompletion(stdout)
	return nil
}

// overridesFromFlags converts the flags the user set into configuration overrides.
func overridesFromFlags(flagSet *pflag.FlagSet, options rootOptions) config.Overrides {
	var overrides config.Overrides
	if flagSet.Changed(outputFlagName) {
		overrides.OutputFilePath = stringPointer(options.outputPath)
	}
	if flagSet.Changed(outputStyleFlagName) {
		overrides.Style = stringPointer(strings.ToLower(strings.TrimSpace(options.outputStyle)))
	}
	if flagSet.Changed(topFilesLengthFlagName) {
		topFilesLength := options.topFilesLength
		overrides.TopFilesLength = &topFilesLength
	}
	if flagSet.Changed(headerTextFlagName) {
		overrides.HeaderText = stringPointer(options.headerText)
	}
	overrides.ShowLineNumbers = changedBoolean(flagSet, showLineNumbersFlagName, options.showLineNumbers)
	overrides.RemoveComments = changedBoolean(flagSet, removeCommentsFlagName, options.removeComments)
	overrides.RemoveEmptyLines = changedBoolean(flagSet, removeEmptyLinesFlagName, options.removeEmptyLines)
	overrides.CopyToClipboard = changedBoolean(flagSet, copyFlagName, options.copyToClipboard)
	overrides.TokenCountEnabled = changedBoolean(flagSet, tokensFlagName, options.tokens)
	if flagSet.Changed(noGitignoreFlagName) {
		overrides.UseGitignore = boolPointer(!options.noGitignore)
	}
	if flagSet.Changed(noDefaultPatternsFlagName) {
		overrides.UseDefaultPatterns = boolPointer(!options.noDefaultPatterns)
	}
	if flagSet.Changed(ignoreFlagName) {
		overrides.CustomPatterns = splitIgnorePatterns(options.ignorePatterns)
	}
	return overrides
}

func splitIgnorePatterns(value string) []string {
	var patterns []string
	for _, pattern := range strings.Split(value, ignorePatternSeparator) {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern != "" {
			patterns = append(patterns, trimmedPattern)
		}
	}
	return patterns
}

// resolveDirectory converts directory to an absolute path and checks that it is a directory.
func resolveDirectory(directory string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(directory)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, directory, absolutePathError)
	}
	info, statError := os.Stat(absolutePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorPathMissingFormat, directory)
		}
		return "", fmt.Errorf(errorStatFormat, directory, statError)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, directory)
	}
	return absolutePath, nil
}

func stringPointer(value string) *string {
	return &value
}

func boolPointer(value bool) *bool {
	return &value
}
