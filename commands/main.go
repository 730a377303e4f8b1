package commands

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/filedupe/filedupe"
	"github.com/filedupe/filedupe/pathstream"
	"github.com/filedupe/filedupe/scan"
)

var (
	mainCmdConfig struct {
		nulDelimited bool
		verbose      int
	}

	MainCmd = &cobra.Command{
		Use:   "filedupe <command>",
		Short: "Find duplicate files and consolidate them with hardlinks.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if mainCmdConfig.verbose > 0 {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

func init() {
	MainCmd.PersistentFlags().BoolVarP(&mainCmdConfig.nulDelimited, "null", "0", false, "read NUL-delimited paths from stdin")
	MainCmd.PersistentFlags().CountVarP(&mainCmdConfig.verbose, "verbose", "v", "verbose diagnostics")

	MainCmd.AddCommand(ListCmd)
	MainCmd.AddCommand(LinkCmd)
	MainCmd.AddCommand(ExecCmd)
	MainCmd.AddCommand(VersionCmd)
}

// inputPaths assembles the run's path list: positional arguments when given
// (directories scanned recursively), the stdin stream otherwise.
func inputPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return scan.Paths(args, nil), nil
	}

	sep := byte('\n')
	if mainCmdConfig.nulDelimited {
		sep = 0
	}
	return pathstream.Split(os.Stdin, sep)
}

// runAction feeds every confirmed-duplicate group to the action and returns
// the accumulated byte count.
func runAction(action filedupe.Action, args []string) (int64, error) {
	paths, err := inputPaths(args)
	if err != nil {
		return 0, err
	}

	pipeline := filedupe.NewPipeline(filedupe.SystemDriver, nil)
	dispatcher := filedupe.NewDispatcher(action, filedupe.SystemDriver, os.Stdout, nil)

	var total int64
	for _, group := range pipeline.Deduplicate(paths) {
		n, err := dispatcher.Dispatch(group)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
