package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/filedupe/filedupe"
)

var ExecCmd = &cobra.Command{
	Use:   "exec -- command [arg ...]",
	Short: "Run a command once per duplicate group, appending the group's paths",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			log.Fatalln("please specify a command")
		}

		action := filedupe.Action{
			Kind:    filedupe.ExternalCommand,
			Program: args[0],
			Args:    args[1:],
		}

		// The command occupies the argument list, so paths come from stdin.
		if _, err := runAction(action, nil); err != nil {
			log.Fatalf("error running command: %v", err)
		}
	},
}
