// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/oneconcern/ddr/pkg/batch"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/lister"
	"github.com/oneconcern/ddr/pkg/lock"
	"github.com/spf13/cobra"
)

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Commands to import and export object metadata as csv",
	Long: `Commands to import and export object metadata as csv.

The header line names fields of the schema of the model. Imports are validated entirely
before anything is written: any invalid header or value aborts the whole import.`,
}

func readTable(path string) batch.Table {
	f, err := fsys.Open(path)
	if err != nil {
		wrapFatalln("cannot open "+path, err)
		return batch.Table{}
	}
	defer f.Close()
	t, err := batch.ReadCSV(f)
	if err != nil {
		wrapFatalln("cannot read "+path, err)
		return batch.Table{}
	}
	return t
}

func parseModel(name string) identifier.Model {
	m, err := identifier.ParseModel(name)
	if err != nil {
		wrapFatalln("invalid model", err)
		return ""
	}
	return m
}

func newImporter(m identifier.Model) *batch.Importer {
	imp, err := batch.NewImporter(metadataStore(), m, ddrConfig.BasePath,
		batch.WithRegistry(getRegistry()),
		batch.WithVocab(getVocab()),
		batch.WithExceptions(getExceptions()),
		batch.WithHeader(getHeader()),
	)
	if err != nil {
		wrapFatalln("cannot import "+string(m), err)
		return nil
	}
	return imp
}

var csvValidateCmd = &cobra.Command{
	Use:   "validate <model> <file.csv>",
	Short: "Validate a csv file for a model",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m := parseModel(args[0])
		if m == "" {
			return
		}
		imp := newImporter(m)
		if imp == nil {
			return
		}
		t := readTable(args[1])
		if err := imp.Validate(t); err != nil {
			reportFatal(args[1]+" is not valid", err)
			return
		}
		logStdOut("%s %s: %d rows are valid\n", green("✓"), args[1], len(t.Rows))
	},
}

var csvImportCmd = &cobra.Command{
	Use:   "import <model> <file.csv>",
	Short: "Create or update objects from a csv file",
	Long: `Create or update objects from a csv file.

The collections of all rows are locked while documents are written.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		m := parseModel(args[0])
		if m == "" {
			return
		}
		imp := newImporter(m)
		if imp == nil {
			return
		}
		t := readTable(args[1])
		if len(t.Rows) == 0 {
			logStdOut("%s %s: no rows\n", yellow("!"), args[1])
			return
		}
		if err := imp.Validate(t); err != nil {
			reportFatal(args[1]+" is not valid", err)
			return
		}

		store := metadataStore()
		targets := make([]identifier.Identifier, 0, len(t.Rows))
		for _, row := range t.Rows {
			id, err := identifier.FromID(row.Values["id"], identifier.BasePath(ddrConfig.BasePath))
			if err != nil {
				wrapFatalln("invalid id", err)
				return
			}
			targets = append(targets, id)
		}
		token, err := lock.LockAll(ctx, store, targets, "")
		if err != nil {
			wrapFatalln("cannot lock collections", err)
			return
		}
		defer func() {
			if err := lock.UnlockAll(ctx, store, targets, token); err != nil {
				logStdErr("%s cannot release lock: %v\n", yellow("!"), err)
			}
		}()

		result, err := imp.Import(ctx, t)
		if err != nil {
			reportFatal("import failed", err)
			return
		}
		for _, p := range result.Created {
			logStdOut("%s %s\n", green("created"), p)
		}
		for _, p := range result.Updated {
			logStdOut("%s %s\n", green("updated"), p)
		}
		written := result.Paths()
		written = append(written, recordChanges(ctx, store, written, "Updated metadata from "+filepath.Base(args[1]))...)
		if ddrFlags.csv.stage {
			stagePaths(written)
		}
	},
}

var csvExportCmd = &cobra.Command{
	Use:   "export <collection-path> <model>",
	Short: "Export the objects of a model below a collection as csv",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		m := parseModel(args[1])
		if m == "" {
			return
		}
		root, err := identifier.FromPath(args[0])
		if err != nil {
			wrapFatalln("invalid path", err)
			return
		}
		paths, err := lister.MetadataFiles(ctx, fsys, args[0])
		if err != nil {
			wrapFatalln("cannot list "+args[0], err)
			return
		}
		store := metadataStore()
		if own, err := root.PathAbs(identifier.AddJSON); err == nil && own != "" {
			if found, _ := store.Has(ctx, own); found {
				paths = append([]string{own}, paths...)
			}
		}

		r := getRegistry()
		schema, err := r.Schema(m)
		if err != nil {
			wrapFatalln("cannot export "+string(m), err)
			return
		}
		objects, err := batch.ReadObjects(ctx, store, r, paths, m)
		if err != nil {
			wrapFatalln("cannot read objects", err)
			return
		}
		headers, rows, err := batch.Export(objects, schema)
		if err != nil {
			wrapFatalln("cannot export objects", err)
			return
		}

		var w io.Writer = stdout
		if ddrFlags.csv.output != "" {
			if err = fsys.MkdirAll(filepath.Dir(ddrFlags.csv.output), 0755); err != nil {
				wrapFatalln("cannot create output", err)
				return
			}
			f, err := fsys.OpenFile(ddrFlags.csv.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
			if err != nil {
				wrapFatalln("cannot create output", err)
				return
			}
			defer f.Close()
			w = f
		}
		if err = batch.WriteCSV(w, headers, rows); err != nil {
			wrapFatalln("cannot write csv", err)
		}
	},
}

func init() {
	addExceptionsFlag(csvValidateCmd)
	addExceptionsFlag(csvImportCmd)
	addCSVStageFlag(csvImportCmd)
	addOutputFlag(csvExportCmd)

	csvCmd.AddCommand(csvValidateCmd)
	csvCmd.AddCommand(csvImportCmd)
	csvCmd.AddCommand(csvExportCmd)
	rootCmd.AddCommand(csvCmd)
}
