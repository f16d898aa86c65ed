// internal/cli/show_config.go
package kbqa

import (
	"github.com/spf13/cobra"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
)

// showConfigCmd implements 'show config', which prints the merged settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by environment variables and flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, cfg, appconfig.Defaults())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
