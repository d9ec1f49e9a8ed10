package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lazypower/tended/internal/health"
	"github.com/lazypower/tended/internal/store"
	"github.com/lazypower/tended/internal/timeline"
)

var healthCmd = &cobra.Command{
	Use:   "health [friend]",
	Short: "Show how a friend, or the whole garden, is doing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return readStore(func(st *store.Store) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := resolveFriend(st, args[0])
				if err != nil {
					return err
				}
				m, _ := st.Metrics(f.ID)
				fmt.Fprintf(out, "%s %s is %s. Last contact: %s.\n",
					face(m.Status), f.Name, statusText(m.Status), timeline.DescribeLastContact(m.DaysSinceLastContact))
				return nil
			}

			g, err := activeGarden(st)
			if err != nil {
				return err
			}
			counts := make(map[health.Status]int)
			all := st.AllMetrics()
			for _, m := range all {
				counts[m.Status]++
			}
			fmt.Fprintf(out, "%s %s: %d friends\n", g.Icon, headingStyle.Render(g.Name), len(all))
			for _, s := range health.Statuses {
				if counts[s] > 0 {
					fmt.Fprintf(out, "  %s %s: %d\n", face(s), statusText(s), counts[s])
				}
			}
			return nil
		})
	},
}

var attentionCmd = &cobra.Command{
	Use:   "attention",
	Short: "List friends who are cooling off or need attention",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readStore(func(st *store.Store) error {
			if _, err := activeGarden(st); err != nil {
				return err
			}
			friends := st.NeedingAttention()
			if len(friends) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Everyone is doing fine.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range friends {
				m, _ := st.Metrics(f.ID)
				fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", face(m.Status), f.Name, statusText(m.Status),
					timeline.DescribeLastContact(m.DaysSinceLastContact), tierText(f.Tier))
			}
			return w.Flush()
		})
	},
}

var upcomingDays int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List birthdays and significant dates coming up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := upcomingDays
		if !cmd.Flags().Changed("days") {
			days = cfg.Queries.UpcomingDays
		}
		return readStore(func(st *store.Store) error {
			if _, err := activeGarden(st); err != nil {
				return err
			}
			dates := st.UpcomingDates(days)
			if len(dates) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing in the next %d days.\n", days)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, o := range dates {
				icon := "📅"
				if o.Kind == timeline.KindBirthday {
					icon = "🎂"
				}
				fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", icon, o.FriendName, o.Label, o.On.Format("Mon Jan 2"), inDays(o.DaysUntil))
			}
			return w.Flush()
		})
	},
}

func inDays(n int) string {
	switch n {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", n)
	}
}

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingDays, "days", "d", 30, "how many days ahead to look")
}
