package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lazypower/tended/internal/health"
	"github.com/lazypower/tended/internal/model"
	"github.com/lazypower/tended/internal/store"
	"github.com/lazypower/tended/internal/timeline"
)

var friendCmd = &cobra.Command{
	Use:   "friend",
	Short: "Manage friends in the active garden",
}

var (
	friendTier          int
	friendRoles         []string
	friendPhoto         string
	friendName          string
	friendBirthday      string
	friendCity          string
	friendRegion        string
	friendDates         []string
	friendNotes         []string
	friendClearBirthday bool
	friendClearLocation bool
	friendListTier      int
	friendTierReason    string
)

var friendAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a friend to the active garden",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roles, err := parseRoles(friendRoles)
		if err != nil {
			return err
		}
		in := store.NewFriend{
			Name:  args[0],
			Tier:  model.Tier(friendTier),
			Roles: roles,
			Photo: friendPhoto,
		}
		if friendBirthday != "" {
			md, err := model.ParseMonthDay(friendBirthday)
			if err != nil {
				return err
			}
			in.Birthday = &md
		}
		if friendCity != "" || friendRegion != "" {
			in.Location = &model.Location{City: friendCity, Region: friendRegion}
		}
		if in.ImportantDates, err = parseDates(friendDates); err != nil {
			return err
		}
		if len(friendNotes) > 0 {
			in.Profile = &model.Profile{RawNotes: friendNotes}
		}

		return writeStore(func(st *store.Store) error {
			g, err := activeGarden(st)
			if err != nil {
				return err
			}
			f, err := st.AddFriend(g.ID, in)
			if err != nil {
				return err
			}
			a, _ := st.Appearance(f.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Planted %s (%s) as a %s in %s\n",
				f.Name, shortID(f.ID), plantText(a), g.Name)
			return nil
		})
	},
}

var friendListCmd = &cobra.Command{
	Use:   "list",
	Short: "List friends with their status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readStore(func(st *store.Store) error {
			if _, err := activeGarden(st); err != nil {
				return err
			}
			friends := st.Friends()
			if friendListTier != 0 {
				friends = st.FriendsByTier(model.Tier(friendListTier))
			}
			if len(friends) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No friends here yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTIER\tSTATUS\tLAST CONTACT")
			for _, f := range friends {
				m, _ := st.Metrics(f.ID)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
					shortID(f.ID), f.Name, tierText(f.Tier), face(m.Status), statusText(m.Status),
					timeline.DescribeLastContact(m.DaysSinceLastContact))
			}
			return w.Flush()
		})
	},
}

var friendShowCmd = &cobra.Command{
	Use:   "show <friend>",
	Short: "Show a friend's details, health and recent contacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return readStore(func(st *store.Store) error {
			f, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			m, _ := st.Metrics(f.ID)
			a, _ := st.Appearance(f.ID)
			printFriend(cmd.OutOrStdout(), f, m, a, st.InteractionsFor(f.ID))
			return nil
		})
	},
}

var friendUpdateCmd = &cobra.Command{
	Use:   "update <friend>",
	Short: "Change a friend's details (use `friend tier` for tier changes)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := friendUpdateFromFlags(cmd)
		if err != nil {
			return err
		}
		return writeStore(func(st *store.Store) error {
			f, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			if _, err := st.UpdateFriend(f.ID, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", f.Name)
			return nil
		})
	},
}

var friendRemoveCmd = &cobra.Command{
	Use:   "remove <friend>",
	Short: "Remove a friend with their history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			f, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			st.RemoveFriend(f.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", f.Name)
			return nil
		})
	},
}

var friendTierCmd = &cobra.Command{
	Use:   "tier <friend> <1-5>",
	Short: "Move a friend to another tier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var n int
		if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil {
			return fmt.Errorf("tier %q: want a number from 1 to 5", args[1])
		}
		tier, err := model.ParseTier(n)
		if err != nil {
			return err
		}
		return writeStore(func(st *store.Store) error {
			f, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			before, _ := st.Appearance(f.ID)
			out, err := st.ChangeTier(f.ID, tier, friendTierReason)
			if err != nil {
				return err
			}
			if out == store.Unchanged {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already %s\n", f.Name, tierText(tier))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s moved from %s to %s\n", f.Name, tierText(f.Tier), tierText(tier))
			if after, _ := st.Appearance(f.ID); after.Species != before.Species {
				fmt.Fprintf(cmd.OutOrStdout(), "Repotted as a %s\n", plantText(after))
			}
			return nil
		})
	},
}

func init() {
	friendCmd.AddCommand(friendAddCmd)
	friendCmd.AddCommand(friendListCmd)
	friendCmd.AddCommand(friendShowCmd)
	friendCmd.AddCommand(friendUpdateCmd)
	friendCmd.AddCommand(friendRemoveCmd)
	friendCmd.AddCommand(friendTierCmd)

	for _, c := range []*cobra.Command{friendAddCmd, friendUpdateCmd} {
		c.Flags().StringSliceVar(&friendRoles, "role", nil, "role tag, repeatable (mentor, emotional_anchor, adventure, ...)")
		c.Flags().StringVar(&friendPhoto, "photo", "", "photo URL or path")
		c.Flags().StringVar(&friendBirthday, "birthday", "", "birthday as YYYY-MM-DD or MM-DD")
		c.Flags().StringVar(&friendCity, "city", "", "city")
		c.Flags().StringVar(&friendRegion, "region", "", "region or state")
		c.Flags().StringArrayVar(&friendDates, "date", nil, `significant date as "Label=MM-DD", repeatable`)
		c.Flags().StringArrayVar(&friendNotes, "note", nil, "free-form note, repeatable")
	}
	friendAddCmd.Flags().IntVarP(&friendTier, "tier", "t", int(model.TierGoodFriend), "tier from 1 (inner circle) to 5 (acquaintance)")
	friendUpdateCmd.Flags().StringVar(&friendName, "name", "", "new name")
	friendUpdateCmd.Flags().BoolVar(&friendClearBirthday, "clear-birthday", false, "remove the birthday")
	friendUpdateCmd.Flags().BoolVar(&friendClearLocation, "clear-location", false, "remove the location")
	friendListCmd.Flags().IntVarP(&friendListTier, "tier", "t", 0, "only show this tier")
	friendTierCmd.Flags().StringVar(&friendTierReason, "reason", "", "why the tier changed")
}

func friendUpdateFromFlags(cmd *cobra.Command) (store.FriendUpdate, error) {
	var u store.FriendUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		u.Name = &friendName
	}
	if flags.Changed("photo") {
		u.Photo = &friendPhoto
	}
	if flags.Changed("role") {
		roles, err := parseRoles(friendRoles)
		if err != nil {
			return u, err
		}
		u.Roles = &roles
	}
	if flags.Changed("birthday") {
		md, err := model.ParseMonthDay(friendBirthday)
		if err != nil {
			return u, err
		}
		u.Birthday = &md
	}
	if flags.Changed("city") || flags.Changed("region") {
		u.Location = &model.Location{City: friendCity, Region: friendRegion}
	}
	if flags.Changed("date") {
		dates, err := parseDates(friendDates)
		if err != nil {
			return u, err
		}
		u.ImportantDates = &dates
	}
	if flags.Changed("note") {
		u.Profile = &model.Profile{RawNotes: friendNotes}
	}
	u.ClearBirthday = friendClearBirthday && flags.Changed("clear-birthday")
	u.ClearLocation = friendClearLocation && flags.Changed("clear-location")
	return u, nil
}

func parseRoles(in []string) ([]model.Role, error) {
	roles := make([]model.Role, 0, len(in))
	for _, s := range in {
		r := model.Role(strings.TrimSpace(s))
		if !r.Valid() {
			return nil, fmt.Errorf("unknown role %q", s)
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// parseDates reads "Label=MM-DD" or "Label=YYYY-MM-DD" pairs.
func parseDates(in []string) ([]model.SignificantDate, error) {
	var out []model.SignificantDate
	for _, s := range in {
		label, date, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("date %q: want Label=MM-DD", s)
		}
		md, err := model.ParseMonthDay(strings.TrimSpace(date))
		if err != nil {
			return nil, err
		}
		out = append(out, model.SignificantDate{Label: strings.TrimSpace(label), Date: md})
	}
	return out, nil
}

func printFriend(w io.Writer, f model.Friend, m health.Metrics, a model.Appearance, history []model.Interaction) {
	fmt.Fprintf(w, "%s %s\n", face(m.Status), headingStyle.Render(f.Name))
	fmt.Fprintf(w, "  id:            %s\n", f.ID)
	fmt.Fprintf(w, "  tier:          %s (every %d days)\n", tierText(f.Tier), m.CadenceTarget)
	fmt.Fprintf(w, "  status:        %s\n", statusText(m.Status))
	fmt.Fprintf(w, "  last contact:  %s\n", timeline.DescribeLastContact(m.DaysSinceLastContact))
	onTrack := "no"
	if m.OnTrack {
		onTrack = "yes"
	}
	fmt.Fprintf(w, "  on track:      %s\n", onTrack)
	fmt.Fprintf(w, "  last 90 days:  %d contacts\n", m.InteractionsLast90Days)
	fmt.Fprintf(w, "  reaching out:  %s\n", reciprocityText(m.ReciprocityRatio))
	fmt.Fprintf(w, "  roles:         %s\n", rolesText(f.Roles))
	if f.Location != nil {
		fmt.Fprintf(w, "  location:      %s\n", strings.Trim(f.Location.City+", "+f.Location.Region, ", "))
	}
	if f.Birthday != nil {
		fmt.Fprintf(w, "  birthday:      %s\n", f.Birthday)
	}
	for _, d := range f.ImportantDates {
		fmt.Fprintf(w, "  %-14s %s\n", d.Label+":", d.Date)
	}
	fmt.Fprintf(w, "  plant:         %s\n", plantText(a))
	fmt.Fprintf(w, "  added:         %s\n", ago(f.CreatedAt))
	if f.Profile != nil {
		for _, n := range f.Profile.RawNotes {
			fmt.Fprintf(w, "  note:          %s\n", n)
		}
	}

	if len(f.TierHistory) > 1 {
		fmt.Fprintln(w, headingStyle.Render("Tier history"))
		for _, c := range f.TierHistory {
			reason := ""
			if c.Reason != "" {
				reason = " - " + c.Reason
			}
			fmt.Fprintf(w, "  %s  %s%s\n", c.At.Format("2006-01-02"), tierText(c.Tier), reason)
		}
	}

	if len(history) > 0 {
		fmt.Fprintln(w, headingStyle.Render("Recent contacts"))
		for i, it := range history {
			if i == 5 {
				fmt.Fprintf(w, "  %s\n", dimStyle.Render(fmt.Sprintf("and %d more", len(history)-5)))
				break
			}
			printInteraction(w, it, "")
		}
	}
}
