package internal

import (
	"github.com/spf13/cobra"

	"github.com/droidozer/droidozer/buildozer"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Build a debug bundle",
	Long:  `Debug verifies the host toolchain, then invokes the packaging tool in debug mode and reports the produced artifacts.`,
	Args:  cobra.NoArgs,
	RunE:  runDebug,
}

func init() {
	rootCmd.AddCommand(debugCmd)
}

func runDebug(cmd *cobra.Command, _ []string) error {
	d, err := newDriver()
	if err != nil {
		return err
	}
	return d.Build(cmd.Context(), buildozer.ModeDebug)
}
