package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylekit/jsstyle/lint"
)

var (
	forceInit  bool
	initPreset string
)

// initCmd: jsstyle init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfigurationFile(cfgFile, initPreset, forceInit)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")
	initCmd.Flags().StringVar(&initPreset, "preset", lint.PresetAll, "Rules to write: all or recommended")
}

// initConfigurationFile writes the rules of preset with their options to
// configurationPath and returns the path written.
func initConfigurationFile(configurationPath, preset string, force bool) (string, error) {
	if configurationPath == "" {
		configurationPath = lint.DefaultConfigFile
	}

	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return "", fmt.Errorf("%s already exists, use --force to overwrite it", configurationPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}

	config, err := lint.Preset(preset)
	if err != nil {
		return "", err
	}
	if err := lint.WriteConfig(configurationPath, config); err != nil {
		return "", err
	}
	return configurationPath, nil
}
