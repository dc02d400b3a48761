package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/repopack/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a configuration file with the default settings"
	initLongDescription  = `Write repopack.config.json (or repopack.config.yaml with --format yaml) holding the
default settings, either in the current directory or, with --global, in the per-user
configuration directory.`
	initGlobalFlagName        = "global"
	initGlobalFlagDescription = "write the global configuration instead of the local one"
	initFormatFlagName        = "format"
	initFormatFlagDescription = "configuration format (json or yaml)"
	initForceFlagName         = "force"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initSuccessFormat         = "Configuration written to %s\n"
)

func newInitCommand(stdout io.Writer) *cobra.Command {
	var global bool
	var force bool
	format := string(config.InitFormatJSON)

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Format: config.InitFormat(strings.ToLower(strings.TrimSpace(format))),
				Force:  force,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, initSuccessFormat, path)
			return err
		},
	}

	flagSet := initCommand.Flags()
	registerBooleanFlag(flagSet, &global, initGlobalFlagName, false, initGlobalFlagDescription)
	flagSet.StringVar(&format, initFormatFlagName, string(config.InitFormatJSON), initFormatFlagDescription)
	registerBooleanFlag(flagSet, &force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}
