package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lazypower/tended/internal/store"
)

var gardenCmd = &cobra.Command{
	Use:   "garden",
	Short: "Manage gardens",
	Long:  "A garden is a separate group of friends, such as family or work. Commands act on the active garden.",
}

var (
	gardenIcon        string
	gardenDescription string
)

var gardenCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a garden",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			g, err := st.CreateGarden(args[0], gardenIcon, gardenDescription)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created garden %s %s (%s)\n", g.Icon, g.Name, shortID(g.ID))
			return nil
		})
	},
}

var gardenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gardens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readStore(func(st *store.Store) error {
			gardens := st.Gardens()
			if len(gardens) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No gardens yet.")
				return nil
			}
			counts := make(map[string]int)
			for _, f := range st.Snapshot().Friends {
				counts[f.GardenID]++
			}
			active, _ := st.ActiveGarden()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, g := range gardens {
				mark := " "
				if g.ID == active.ID {
					mark = "*"
				}
				demo := ""
				if g.IsDemo {
					demo = dimStyle.Render("demo")
				}
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%d friends\t%s\n", mark, shortID(g.ID), g.Icon, g.Name, counts[g.ID], demo)
			}
			return w.Flush()
		})
	},
}

var gardenSwitchCmd = &cobra.Command{
	Use:   "switch <garden>",
	Short: "Make a garden active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			g, err := resolveGarden(st, args[0])
			if err != nil {
				return err
			}
			if st.SwitchGarden(g.ID) == store.Unchanged {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already active\n", g.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s %s\n", g.Icon, g.Name)
			return nil
		})
	},
}

var gardenRenameCmd = &cobra.Command{
	Use:   "rename <garden> <new-name>",
	Short: "Rename a garden and optionally change its icon or description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			g, err := resolveGarden(st, args[0])
			if err != nil {
				return err
			}
			u := store.GardenUpdate{Name: &args[1]}
			if cmd.Flags().Changed("icon") {
				u.Icon = &gardenIcon
			}
			if cmd.Flags().Changed("description") {
				u.Description = &gardenDescription
			}
			if _, err := st.UpdateGarden(g.ID, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", g.Name, args[1])
			return nil
		})
	},
}

var gardenDeleteYes bool

var gardenDeleteCmd = &cobra.Command{
	Use:   "delete <garden>",
	Short: "Delete a garden with all of its friends and history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			g, err := resolveGarden(st, args[0])
			if err != nil {
				return err
			}
			if !gardenDeleteYes {
				return fmt.Errorf("deleting %s removes all of its friends; pass --yes to confirm", g.Name)
			}
			st.DeleteGarden(g.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", g.Name)
			if next, ok := st.ActiveGarden(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Active garden is now %s %s\n", next.Icon, next.Name)
			}
			return nil
		})
	},
}

func init() {
	gardenCmd.AddCommand(gardenCreateCmd)
	gardenCmd.AddCommand(gardenListCmd)
	gardenCmd.AddCommand(gardenSwitchCmd)
	gardenCmd.AddCommand(gardenRenameCmd)
	gardenCmd.AddCommand(gardenDeleteCmd)

	for _, c := range []*cobra.Command{gardenCreateCmd, gardenRenameCmd} {
		c.Flags().StringVar(&gardenIcon, "icon", "", "emoji icon")
		c.Flags().StringVar(&gardenDescription, "description", "", "short description")
	}
	gardenDeleteCmd.Flags().BoolVar(&gardenDeleteYes, "yes", false, "confirm deletion")
}
