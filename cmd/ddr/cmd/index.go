// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/ddr/pkg/index"
	"github.com/oneconcern/ddr/pkg/lister"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Commands to produce search index documents",
}

var indexDocCmd = &cobra.Command{
	Use:   "doc <object.json>...",
	Short: "Print bulk index requests for objects",
	Long: `Print bulk index requests for objects, as newline-delimited json.

Each object yields an action line and a document line. With --recursive, all
descendants of each object are included.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		r := getRegistry()
		store := metadataStore()
		cache := lister.NewCache(fsys)

		var paths []string
		for _, arg := range args {
			paths = append(paths, arg)
			if !ddrFlags.index.recursive {
				continue
			}
			descendants, err := cache.Get(ctx, arg, false)
			if err != nil {
				wrapFatalln("cannot list descendants of "+arg, err)
				return
			}
			paths = append(paths, descendants...)
		}

		w := index.NewWriter(stdout, ddrFlags.index.name)
		for _, p := range paths {
			o, err := r.Read(ctx, store, p)
			if err != nil {
				wrapFatalln("cannot read "+p, err)
				return
			}
			if err = w.Write(o); err != nil {
				wrapFatalln("cannot index "+p, err)
				return
			}
		}
		if err := w.Flush(); err != nil {
			wrapFatalln("cannot index", err)
			return
		}
		getLogger().Sugar().Debugf("indexed %d documents", w.Count())
	},
}

func init() {
	addIndexNameFlag(indexDocCmd)
	addRecursiveFlag(indexDocCmd)

	indexCmd.AddCommand(indexDocCmd)
	rootCmd.AddCommand(indexCmd)
}
