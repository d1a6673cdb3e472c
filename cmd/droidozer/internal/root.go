package internal

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/droidozer/droidozer/buildozer"
	"github.com/droidozer/droidozer/manifest"
)

var (
	specPath string
	verbose  bool

	runID = uuid.NewString()[:8]

	// logger is ready from process start so even errors raised before
	// command dispatch (flag parsing, config loading) get a diagnostic.
	// loadTool re-levels it from the driver config.
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "droidozer").Str("run", runID).Logger()
)

var rootCmd = &cobra.Command{
	Use:   "droidozer [debug|release|deps|clean]",
	Short: "droidozer packages application code into an Android bundle",
	Long: `droidozer drives the external Android packaging tool: it verifies the host
toolchain, invokes the tool against the buildozer.spec manifest in the
current directory and reports the produced artifacts.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Without arguments the driver builds a debug bundle. An unrecognized
	// mode prints usage and performs no action; that is not an error.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runDebug(cmd, nil)
		}
		return cmd.Usage()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&specPath, "spec", "s", manifest.DefaultFile, "Path to the build manifest")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose tool output")
}

// Execute runs the CLI. The process exit code mirrors the external tool's
// exit code on tool failure, and is 1 for every other error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(buildozer.ExitCode(err))
	}
}

func reportError(err error) {
	logger.Error().Err(err).Msg("build failed")
}
