package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/oneconcern/ddr/pkg/inherit"
	"github.com/oneconcern/ddr/pkg/lister"
	"github.com/oneconcern/ddr/pkg/lock"
	"github.com/spf13/cobra"
)

var inheritCmd = &cobra.Command{
	Use:   "inherit <parent.json>",
	Short: "Propagate inheritable fields of an object to its descendants",
	Long: `Propagate inheritable fields of an object to its descendants.

Fields are picked with --field, or --all for every inheritable field of the parent.
Without either flag, fields flagged in the parent document with a "<field>_inherit" entry
are propagated.

Descendants which fail to update are reported: other descendants are still updated.`,
	Example: `ddr inherit /var/www/media/ddr/ddr-test-123/collection.json --field public --field rights`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		r := getRegistry()
		store := metadataStore()

		parent, err := r.Read(ctx, store, args[0])
		if err != nil {
			wrapFatalln("cannot read parent", err)
			return
		}

		var fields []string
		switch {
		case ddrFlags.inherit.all:
			fields = inherit.Inheritable(parent.Schema())
		case len(ddrFlags.inherit.fields) > 0:
			fields = ddrFlags.inherit.fields
		default:
			data := parent.Dict()
			for k, v := range parent.Extra() {
				data[k] = v
			}
			fields = inherit.Selected(parent.Schema(), data)
		}
		if len(fields) == 0 {
			logStdOut("%s no field to propagate\n", yellow("!"))
			return
		}

		descendants, err := lister.NewCache(fsys).Get(ctx, args[0], true)
		if err != nil {
			wrapFatalln("cannot list descendants", err)
			return
		}

		if !ddrFlags.inherit.dryRun && parent.Model().InCollection() {
			token, err := lock.Lock(ctx, store, parent.Identifier, "")
			if err != nil {
				wrapFatalln("cannot lock collection", err)
				return
			}
			defer func() {
				if err := lock.Unlock(ctx, store, parent.Identifier, token); err != nil {
					logStdErr("%s cannot release lock: %v\n", yellow("!"), err)
				}
			}()
		}

		result, err := inherit.Propagate(ctx, store, parent, fields, descendants,
			inherit.WithRegistry(r),
			inherit.WithHeader(getHeader()),
			inherit.DryRun(ddrFlags.inherit.dryRun),
		)
		for _, change := range result.Changed {
			verb := "changed"
			if ddrFlags.inherit.dryRun {
				verb = "would change"
			}
			logStdOut("%s %s: %v\n", green(verb), change.ID, change.Fields)
		}
		if err != nil {
			reportFatal("propagation failed", err)
			return
		}
		if !ddrFlags.inherit.dryRun {
			written := result.Paths()
			written = append(written, recordChanges(ctx, store, written, fmt.Sprintf("Inherited %s from %s", strings.Join(fields, ", "), parent.ID()))...)
			if ddrFlags.inherit.stage {
				stagePaths(written)
			}
		}
		logStdOut("%d of %d descendants changed\n", len(result.Changed), len(descendants))
	},
}

func init() {
	addInheritFieldFlag(inheritCmd)
	addInheritAllFlag(inheritCmd)
	addDryRunFlag(inheritCmd)
	addInheritStageFlag(inheritCmd)
	rootCmd.AddCommand(inheritCmd)
}
