package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autorefactor/autorefactor/refactor"
)

var initLanguageLevel int

// initCmd: autorefactor init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfigurationFile(cfgFile, initLanguageLevel)
		if err != nil {
			return fmt.Errorf("error initializing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().IntVar(&initLanguageLevel, "language-level", 0, "Lowest Java version the code must compile with (0 for the latest)")
}

func initConfigurationFile(configurationPath string, languageLevel int) (string, error) {
	if configurationPath == "" {
		configurationPath = refactor.DefaultConfigFile
	}
	config := refactor.DefaultConfig()
	config.LanguageLevel = languageLevel
	return configurationPath, refactor.WriteConfig(configurationPath, config)
}
