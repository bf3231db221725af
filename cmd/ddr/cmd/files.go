package cmd

import (
	"context"

	units "github.com/docker/go-units"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files <entity.json>",
	Short: "List the files attached to an entity",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		o, err := getRegistry().Read(context.Background(), metadataStore(), args[0])
		if err != nil {
			wrapFatalln("cannot read entity", err)
			return
		}
		if o.Model() != identifier.Entity {
			wrapFatalWithCodef(1, "%s is a %s, not an entity", o.ID(), o.Model())
			return
		}
		for _, f := range o.Files {
			id := cast.ToString(f["id"])
			size := cast.ToInt64(f["size"])
			logStdOut("%-40s %-8s %10s  %s\n", id, cast.ToString(f["role"]), units.HumanSize(float64(size)), cast.ToString(f["label"]))
		}
		logStdOut("%d files\n", len(o.Files))
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
