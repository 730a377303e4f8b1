package commands

import (
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/filedupe/filedupe"
)

var (
	linkCmdConfig struct {
		dryRun bool
	}

	LinkCmd = &cobra.Command{
		Use:   "link [path ...]",
		Short: "Consolidate each duplicate group onto a single inode",
		Run: func(cmd *cobra.Command, args []string) {
			action := filedupe.Action{Kind: filedupe.Hardlink, DryRun: linkCmdConfig.dryRun}

			total, err := runAction(action, args)
			if err != nil {
				log.Fatalf("error hardlinking duplicates: %v", err)
			}

			fmt.Printf("%s (%d bytes) saved by hardlinking\n", humanize.IBytes(uint64(total)), total)
		},
	}
)

func init() {
	LinkCmd.Flags().BoolVar(&linkCmdConfig.dryRun, "dry-run", false, "report reclaimable bytes without linking")
}
