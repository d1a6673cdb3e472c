package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droidozer/droidozer/manifest"
)

var (
	initTitle  string
	initName   string
	initDomain string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default build manifest",
	Long:  `Init writes a commented default buildozer.spec to the current directory. It refuses to overwrite an existing manifest.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initTitle, "title", "", "Application title")
	initCmd.Flags().StringVar(&initName, "name", "", "Package name")
	initCmd.Flags().StringVar(&initDomain, "domain", "", "Package domain (reverse DNS)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	opts := manifest.ScaffoldOptions{
		Title:         initTitle,
		PackageName:   initName,
		PackageDomain: initDomain,
	}
	if err := manifest.Scaffold(specPath, opts); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", specPath)
	return nil
}
