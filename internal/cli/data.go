package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/tended/internal/model"
	"github.com/lazypower/tended/internal/snapshot"
	"github.com/lazypower/tended/internal/store"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Switch to the demo garden and fill it with sample friends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			g, err := st.LoadDemoData()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is ready with %d friends. Try `tended friend list`.\n",
				g.Icon, g.Name, len(st.Friends()))
			return nil
		})
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every friend from the active garden",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			g, err := activeGarden(st)
			if err != nil {
				return err
			}
			if !clearYes {
				return fmt.Errorf("clearing %s removes all of its friends; pass --yes to confirm", g.Name)
			}
			if st.ClearGarden() == store.Unchanged {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already empty\n", g.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", g.Name)
			return nil
		})
	},
}

var (
	exportFormat string
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every garden to a JSON or YAML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := chooseFormat(cmd, exportFormat, exportOutput)
		if err != nil {
			return err
		}
		return readStore(func(st *store.Store) error {
			if exportOutput == "" || exportOutput == "-" {
				return snapshot.Encode(cmd.OutOrStdout(), format, st.Snapshot(), time.Now())
			}
			return writeExport(exportOutput, format, st.Snapshot(), time.Now())
		})
	},
}

// writeExport encodes snap into the file at path. A failed close is reported,
// since it can mean the data never reached disk.
func writeExport(path string, format snapshot.Format, snap model.Snapshot, at time.Time) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return snapshot.Encode(fh, format, snap, at)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with the contents of an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := chooseFormat(cmd, importFormat, args[0])
		if err != nil {
			return err
		}
		fh, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer fh.Close()

		doc, err := snapshot.Decode(fh, format)
		if err != nil {
			return err
		}
		return writeStore(func(st *store.Store) error {
			if err := st.Restore(doc.Snapshot); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d gardens, %d friends and %d contacts\n",
				len(doc.Gardens), len(doc.Friends), len(doc.Interactions))
			return nil
		})
	},
}

// chooseFormat prefers an explicit --format, then the file extension, then JSON.
func chooseFormat(cmd *cobra.Command, flag, path string) (snapshot.Format, error) {
	if cmd.Flags().Changed("format") {
		return snapshot.ParseFormat(flag)
	}
	if path != "" && path != "-" {
		if f, err := snapshot.FormatFor(path); err == nil {
			return f, nil
		}
	}
	return snapshot.JSON, nil
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm clearing")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "json", "json or yaml (default from extension)")
}
