// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/ddr/pkg/dlogger"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		logLevel string
		basePath string
	}
	id struct {
		stubs   bool
		context string
	}
	csv struct {
		output     string
		exceptions []string
		stage      bool
	}
	inherit struct {
		fields []string
		all    bool
		dryRun bool
		stage  bool
	}
	lock struct {
		text string
	}
	index struct {
		name      string
		recursive bool
	}
}

var ddrFlags = flagsT{}

func addLogLevel(cmd *cobra.Command) string {
	logLevel := "loglevel"
	cmd.PersistentFlags().StringVar(&ddrFlags.root.logLevel, logLevel, dlogger.LogLevelInfo, "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return logLevel
}

func addBasePathFlag(cmd *cobra.Command) string {
	basePath := "basepath"
	cmd.PersistentFlags().StringVar(&ddrFlags.root.basePath, basePath, "", "The directory holding collection checkouts. Overrides the configuration")
	return basePath
}

func addStubsFlag(cmd *cobra.Command) string {
	stubs := "stubs"
	cmd.Flags().BoolVar(&ddrFlags.id.stubs, stubs, false, "Walk through file-role stubs, organizations and repositories")
	return stubs
}

func addURLContextFlag(cmd *cobra.Command) string {
	urlContext := "context"
	cmd.Flags().StringVar(&ddrFlags.id.context, urlContext, string(identifier.Editor), "The url context: editor or public")
	return urlContext
}

func addOutputFlag(cmd *cobra.Command) string {
	output := "output"
	cmd.Flags().StringVarP(&ddrFlags.csv.output, output, "o", "", "Write to this file instead of stdout")
	return output
}

func addExceptionsFlag(cmd *cobra.Command) string {
	exceptions := "exceptions"
	cmd.Flags().StringSliceVar(&ddrFlags.csv.exceptions, exceptions, nil, "Headers which are never required and always accepted. Overrides the configuration")
	return exceptions
}

func addCSVStageFlag(cmd *cobra.Command) string {
	stage := "stage"
	cmd.Flags().BoolVar(&ddrFlags.csv.stage, stage, false, "Stage written documents in git")
	return stage
}

func addInheritFieldFlag(cmd *cobra.Command) string {
	field := "field"
	cmd.Flags().StringSliceVar(&ddrFlags.inherit.fields, field, nil, "An inheritable field to propagate. May be repeated")
	return field
}

func addInheritAllFlag(cmd *cobra.Command) string {
	all := "all"
	cmd.Flags().BoolVar(&ddrFlags.inherit.all, all, false, "Propagate all inheritable fields")
	return all
}

func addDryRunFlag(cmd *cobra.Command) string {
	dryRun := "dry-run"
	cmd.Flags().BoolVar(&ddrFlags.inherit.dryRun, dryRun, false, "Report changes without writing them")
	return dryRun
}

func addInheritStageFlag(cmd *cobra.Command) string {
	stage := "stage"
	cmd.Flags().BoolVar(&ddrFlags.inherit.stage, stage, false, "Stage changed documents in git")
	return stage
}

func addLockTextFlag(cmd *cobra.Command) string {
	text := "text"
	cmd.Flags().StringVar(&ddrFlags.lock.text, text, "", "The text held by the lock. Defaults to a new unique token")
	return text
}

func addIndexNameFlag(cmd *cobra.Command) string {
	name := "index"
	cmd.Flags().StringVar(&ddrFlags.index.name, name, "ddr", "The name of the target index")
	return name
}

func addRecursiveFlag(cmd *cobra.Command) string {
	recursive := "recursive"
	cmd.Flags().BoolVarP(&ddrFlags.index.recursive, recursive, "r", false, "Include all descendants")
	return recursive
}
