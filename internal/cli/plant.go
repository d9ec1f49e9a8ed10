package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazypower/tended/internal/model"
	"github.com/lazypower/tended/internal/store"
)

var plantCmd = &cobra.Command{
	Use:   "plant",
	Short: "Restyle a friend's plant",
}

var (
	plantSpecies string
	plantPot     string
	plantColor   string
)

var plantSetCmd = &cobra.Command{
	Use:   "set <friend>",
	Short: "Pick a species, pot or color for a friend's plant",
	Long:  "Species must suit the friend's tier; run `tended plant species` to see the options.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var u store.AppearanceUpdate
		if cmd.Flags().Changed("species") {
			s := model.Species(plantSpecies)
			u.Species = &s
		}
		if cmd.Flags().Changed("pot") {
			p := model.PotStyle(plantPot)
			u.PotStyle = &p
		}
		if cmd.Flags().Changed("color") {
			c := model.PotColor(plantColor)
			u.PotColor = &c
		}
		return writeStore(func(st *store.Store) error {
			f, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			out, err := st.SetAppearance(f.ID, u)
			if err != nil {
				return err
			}
			a, _ := st.Appearance(f.ID)
			if out == store.Unchanged {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already a %s\n", f.Name, plantText(a))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now a %s\n", f.Name, plantText(a))
			return nil
		})
	},
}

var plantSpeciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List plant species, pots and colors",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, t := range model.Tiers {
			var names []string
			for _, s := range model.SpeciesFor(t) {
				names = append(names, string(s))
			}
			fmt.Fprintf(out, "%-22s %s\n", tierText(t), strings.Join(names, ", "))
		}
		pots := make([]string, 0, len(model.PotStyles))
		for _, p := range model.PotStyles {
			pots = append(pots, string(p))
		}
		colors := make([]string, 0, len(model.PotColors))
		for _, c := range model.PotColors {
			colors = append(colors, string(c))
		}
		fmt.Fprintf(out, "%-22s %s\n", "pots", strings.Join(pots, ", "))
		fmt.Fprintf(out, "%-22s %s\n", "colors", strings.Join(colors, ", "))
	},
}

func init() {
	plantCmd.AddCommand(plantSetCmd)
	plantCmd.AddCommand(plantSpeciesCmd)
	plantSetCmd.Flags().StringVar(&plantSpecies, "species", "", "plant species")
	plantSetCmd.Flags().StringVar(&plantPot, "pot", "", "pot style")
	plantSetCmd.Flags().StringVar(&plantColor, "color", "", "pot color")
}
