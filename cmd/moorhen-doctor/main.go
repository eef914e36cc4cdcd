package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	flagVerbose   bool
	flagFixIssues bool
	flagConfigDir string
)

// ErrIssuesFound is returned when at least one check failed.
var ErrIssuesFound = errors.New("issues found")

var rootCmd = &cobra.Command{
	Use:     "moorhen-doctor",
	Short:   "Diagnose a local moorhen installation",
	Long:    "moorhen-doctor runs a battery of health checks against the local moorhen gateway/bridge installation and reports what needs fixing.",
	Version: Version,
	Args:    cobra.NoArgs,
	RunE:    runDoctor,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "show remediation details for every check")
	rootCmd.Flags().BoolVar(&flagFixIssues, "fix-issues", false, "attempt automatic fixes (reserved, not yet implemented)")
	rootCmd.Flags().StringVar(&flagConfigDir, "config-dir", "", "override the configuration directory")
}

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrIssuesFound) {
			logrus.Error(err)
		}
		os.Exit(1)
	}
}
