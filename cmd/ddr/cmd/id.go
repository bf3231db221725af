// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Commands to parse and format object identifiers",
	Long: `Commands to parse and format object identifiers.

An object may be designated by its id (ddr-test-123-1), by the absolute path of its
directory or of one of its files, or by its editor or public url.`,
}

// idReport is rendered as yaml, in this field order
type idReport struct {
	ID         string        `yaml:"id"`
	Model      string        `yaml:"model"`
	Method     string        `yaml:"method"`
	Parts      yaml.MapSlice `yaml:"parts"`
	Pattern    string        `yaml:"pattern,omitempty"`
	Ext        string        `yaml:"ext,omitempty"`
	BasePath   string        `yaml:"basepath,omitempty"`
	PathAbs    string        `yaml:"path_abs,omitempty"`
	PathRel    string        `yaml:"path_rel,omitempty"`
	Parent     string        `yaml:"parent,omitempty"`
	Collection string        `yaml:"collection,omitempty"`
	EditorURL  string        `yaml:"editor_url,omitempty"`
	PublicURL  string        `yaml:"public_url,omitempty"`
}

func parseIdentifier(arg string) identifier.Identifier {
	id, err := identifier.New(arg, identifier.BasePath(ddrConfig.BasePath))
	if err != nil {
		wrapFatalln("cannot parse "+arg, err)
		return identifier.Identifier{}
	}
	return id
}

func newIDReport(id identifier.Identifier) (idReport, error) {
	r := idReport{
		ID:        id.ID,
		Model:     id.Model.String(),
		Method:    string(id.Method),
		Pattern:   id.Pattern,
		Ext:       id.Ext,
		BasePath:  id.BasePath,
		Parent:    id.ParentID(false),
		EditorURL: id.URL(identifier.Editor),
		PublicURL: id.URL(identifier.Public),
	}
	for _, pair := range id.Parts.Pairs(id.Model) {
		r.Parts = append(r.Parts, yaml.MapItem{Key: string(pair.Key), Value: pair.Value})
	}
	var err error
	if r.PathAbs, err = id.PathAbs(); err != nil && !errors.Is(err, identifier.ErrMissingBasePath) {
		return idReport{}, err
	}
	if r.PathRel, err = id.PathRel(); err != nil {
		return idReport{}, err
	}
	if id.Model.InCollection() {
		if r.Collection, err = id.CollectionID(); err != nil {
			return idReport{}, err
		}
	}
	return r, nil
}

var idParseCmd = &cobra.Command{
	Use:   "parse <id|path|url>",
	Short: "Parse an identifier and show all its forms",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		r, err := newIDReport(id)
		if err != nil {
			wrapFatalln("cannot format "+id.ID, err)
			return
		}
		b, err := yaml.Marshal(r)
		if err != nil {
			wrapFatalln("cannot render "+id.ID, err)
			return
		}
		logStdOut("%s", b)
	},
}

var idPathsCmd = &cobra.Command{
	Use:   "paths <id|path|url>",
	Short: "List the paths of the files of an object",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		p, err := id.PathAbs()
		if err != nil {
			wrapFatalln("cannot format path of "+id.ID, err)
			return
		}
		if p == "" {
			logStdOut("%s has no path\n", id.ID)
			return
		}
		logStdOut("%-10s %s\n", "self", p)
		for _, name := range identifier.AdditionalPaths(id.Model) {
			additional, err := id.PathAbs(name)
			if err != nil {
				wrapFatalln("cannot format path of "+id.ID, err)
				return
			}
			logStdOut("%-10s %s\n", name, additional)
		}
	},
}

var idLineageCmd = &cobra.Command{
	Use:   "lineage <id|path|url>",
	Short: "List an object and its ancestors",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		for _, ancestor := range id.Lineage(ddrFlags.id.stubs) {
			logStdOut("%-12s %s\n", ancestor.Model, ancestor.ID)
		}
	},
}

var idURLCmd = &cobra.Command{
	Use:   "url <id|path|url>",
	Short: "Print the url of an object",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseIdentifier(args[0])
		if id.ID == "" {
			return
		}
		ctx := identifier.Context(ddrFlags.id.context)
		if ctx != identifier.Editor && ctx != identifier.Public {
			wrapFatalWithCodef(2, "unknown url context %q", ddrFlags.id.context)
			return
		}
		logStdOut("%s\n", id.URL(ctx))
	},
}

func init() {
	addStubsFlag(idLineageCmd)
	addURLContextFlag(idURLCmd)

	idCmd.AddCommand(idParseCmd)
	idCmd.AddCommand(idPathsCmd)
	idCmd.AddCommand(idLineageCmd)
	idCmd.AddCommand(idURLCmd)
	rootCmd.AddCommand(idCmd)
}
