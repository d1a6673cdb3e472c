package internal

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build cache and output directories",
	Long:  `Clean deletes the packaging tool's build cache directory, the artifact output directory and droidozer's own per-project state.`,
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	d, err := newDriver()
	if err != nil {
		return err
	}
	return d.Clean(cmd.Context())
}
