package internal

import (
	"github.com/spf13/cobra"

	"github.com/droidozer/droidozer/internal/toolchain"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Install build prerequisites",
	Long: `Deps verifies the system commands the packaging tool needs, installing
missing ones through the platform package manager, then installs the
packaging tool itself when absent. Running it on a ready host is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, _ []string) error {
	_, tool, err := loadTool()
	if err != nil {
		return err
	}
	if err := toolchain.New(tool).Ensure(cmd.Context()); err != nil {
		return err
	}
	path, err := tool.LookPath()
	if err != nil {
		return err
	}
	logger.Info().Str("tool", path).Msg("toolchain ready")
	return nil
}
