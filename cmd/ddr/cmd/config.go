package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective configuration",
	Long: `Prints the configuration resulting from defaults, the configuration file and the environment.

The configuration file is taken from $DDR_CONFIG, or found as ddr.yaml in ., $HOME/.ddr or /etc/ddr.
Any setting may be overridden by an environment variable such as DDR_BASEPATH.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		b, err := ddrConfig.Marshal()
		if err != nil {
			wrapFatalln("failed to render configuration", err)
			return
		}
		logStdOut("%s", b)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
