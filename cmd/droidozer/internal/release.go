package internal

import (
	"github.com/spf13/cobra"

	"github.com/droidozer/droidozer/buildozer"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Build a release bundle",
	Long: `Release verifies the host toolchain, then invokes the packaging tool in
release mode. When the manifest carries a complete signing block, the four
signing credentials are passed to the tool unmodified; with no signing block
the bundle is left unsigned.`,
	Args: cobra.NoArgs,
	RunE: runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, _ []string) error {
	d, err := newDriver()
	if err != nil {
		return err
	}
	return d.Build(cmd.Context(), buildozer.ModeRelease)
}
