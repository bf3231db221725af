package cmd

import (
	"fmt"
	"sort"

	"github.com/oneconcern/ddr/pkg/dvcs"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <collection>",
	Short: "Show the uncommitted changes of a collection checkout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		repo := openRepo(id)
		if repo == nil {
			return
		}
		changes, paths, err := repo.Changes()
		if err != nil {
			wrapFatalln("cannot get status", err)
			return
		}
		if len(paths) == 0 {
			logStdOut("%s: clean\n", repo.Root())
			return
		}
		for _, p := range paths {
			logStdOut("%s %s\n", stateColumn(changes[p]), p)
		}
	},
}

// stateColumn pads a state before coloring it, so escape codes do not count in the width
func stateColumn(state dvcs.State) string {
	text := fmt.Sprintf("%-10s", state)
	switch state {
	case dvcs.Staged:
		return green(text)
	case dvcs.Untracked:
		return red(text)
	default:
		return yellow(text)
	}
}

// openRepo opens the checkout of the collection of id
func openRepo(id identifier.Identifier) *dvcs.Repo {
	c, err := id.Collection()
	if err != nil {
		wrapFatalln("no collection for "+id.ID, err)
		return nil
	}
	dir, err := c.PathAbs()
	if err != nil {
		wrapFatalln("no checkout for "+c.ID, err)
		return nil
	}
	repo, err := dvcs.Open(dir)
	if err != nil {
		wrapFatalln("cannot open checkout", err)
		return nil
	}
	return repo
}

// stagePaths adds written documents to the index of the checkouts of their collections
func stagePaths(paths []string) {
	byCollection := make(map[string][]string)
	collections := make(map[string]identifier.Identifier)
	for _, p := range paths {
		id, err := identifier.FromPath(p)
		if err != nil {
			wrapFatalln("cannot stage "+p, err)
			return
		}
		c, err := id.Collection()
		if err != nil {
			wrapFatalln("cannot stage "+p, err)
			return
		}
		collections[c.ID] = c
		byCollection[c.ID] = append(byCollection[c.ID], p)
	}
	ids := make([]string, 0, len(collections))
	for cid := range collections {
		ids = append(ids, cid)
	}
	sort.Strings(ids)
	for _, cid := range ids {
		repo := openRepo(collections[cid])
		if repo == nil {
			return
		}
		if err := repo.Stage(byCollection[cid]...); err != nil {
			wrapFatalln("cannot stage changes", err)
			return
		}
		logStdOut("%s %d files in %s\n", green("staged"), len(byCollection[cid]), cid)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
