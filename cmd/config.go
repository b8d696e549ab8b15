package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// configCmd prints the configuration a build would use
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective configuration as YAML",
	Long: `The config command prints the configuration after defaults, config.yaml
and GALLERY_* environment variables have been applied. The output can be saved
as config.yaml and edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(appConfig)
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
