package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "buildsight",
	Short: "Buildsight - structural indexer for embedded-OS build trees",
	Long: `Buildsight ingests the heterogeneous source files of an embedded-OS
build tree (shell scripts, package .mk descriptors, U-Boot boot scripts,
Kconfig option files, genimage layouts, Python) and converts each into a
uniform structured record: named structures plus dependency edges, stored
as canonical indexable text for a downstream retrieval pipeline.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
