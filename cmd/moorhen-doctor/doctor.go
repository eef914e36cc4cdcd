package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/report"
)

func runDoctor(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if flagFixIssues {
		logrus.Warn("--fix-issues is reserved and does nothing yet")
	}

	agg := check.NewAggregator()
	printer := report.NewPrinter(flagVerbose)

	env, err := check.ResolveEnv(flagConfigDir, flagVerbose, nil)
	if err != nil {
		// Total inability to resolve a configuration directory is itself
		// a diagnosed condition, not a crash.
		o := check.Failed("Configuration", "Config Directory", "cannot resolve a configuration directory").
			WithDetailf("error: %v", err)
		agg.Record(o)
		printer.Category("Configuration")
		printer.Outcome(o)
	} else {
		runner := &check.Runner{
			Categories: battery(),
			Agg:        agg,
			OnCategory: printer.Category,
			OnOutcome:  printer.Outcome,
		}
		runner.Run(env)
	}

	summary := report.Build(agg)
	printer.Summary(summary)

	if summary.ExitCode() != 0 {
		return ErrIssuesFound
	}
	return nil
}
