package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/filedupe/filedupe"
)

var ListCmd = &cobra.Command{
	Use:   "list [path ...]",
	Short: "Report duplicate groups without touching the filesystem",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := runAction(filedupe.Action{Kind: filedupe.List}, args); err != nil {
			log.Fatalf("error listing duplicates: %v", err)
		}
	},
}
