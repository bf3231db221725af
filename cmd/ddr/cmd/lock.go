// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/ddr/pkg/lock"
	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Commands to manage the lock of a collection",
	Long: `Commands to manage the advisory lock of a collection checkout.

Commands which write documents lock the collection for their duration.
A lock left over by an interrupted command is released with "ddr lock release --text <text>".`,
}

var lockAcquireCmd = &cobra.Command{
	Use:   "acquire <collection>",
	Short: "Lock a collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		text, err := lock.Lock(context.Background(), metadataStore(), id, ddrFlags.lock.text)
		if err != nil {
			wrapFatalln("cannot lock", err)
			return
		}
		logStdOut("%s\n", text)
	},
}

var lockReleaseCmd = &cobra.Command{
	Use:   "release <collection>",
	Short: "Unlock a collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		if err := lock.Unlock(context.Background(), metadataStore(), id, ddrFlags.lock.text); err != nil {
			wrapFatalln("cannot unlock", err)
			return
		}
		logStdOut("%s %s\n", green("unlocked"), id)
	},
}

var lockStatusCmd = &cobra.Command{
	Use:   "status <collection>",
	Short: "Tell if a collection is locked",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		text, err := lock.Locked(context.Background(), metadataStore(), id)
		if err != nil {
			wrapFatalln("cannot read lock", err)
			return
		}
		if text == "" {
			logStdOut("%s is not locked\n", id)
			return
		}
		logStdOut("%s is %s: %s\n", id, red("locked"), text)
	},
}

func init() {
	addLockTextFlag(lockAcquireCmd)
	addLockTextFlag(lockReleaseCmd)

	lockCmd.AddCommand(lockAcquireCmd)
	lockCmd.AddCommand(lockReleaseCmd)
	lockCmd.AddCommand(lockStatusCmd)
	rootCmd.AddCommand(lockCmd)
}
