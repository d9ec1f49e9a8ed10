package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/tended/internal/model"
	"github.com/lazypower/tended/internal/store"
)

var (
	logNote string
	logBy   string
	logAt   string
)

var logCmd = &cobra.Command{
	Use:   "log <friend> <type>",
	Short: "Record a contact with a friend",
	Long: "Record a contact. Types: text, call, hangout, deep_convo, event, helped, group_hangout.\n" +
		"Use --by to note who reached out; it feeds the reciprocity part of the health score.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := store.NewInteraction{
			Type:        model.InteractionType(args[1]),
			Note:        logNote,
			InitiatedBy: model.Initiator(logBy),
		}
		if cmd.Flags().Changed("at") {
			at, err := parseAt(logAt, time.Now())
			if err != nil {
				return err
			}
			in.At = at
		}

		return writeStore(func(st *store.Store) error {
			f, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			it, _, err := st.LogInteraction(f.ID, in)
			if err != nil {
				return err
			}
			m, _ := st.Metrics(f.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s with %s. %s is %s %s\n",
				it.Type.Icon(), it.Type.Label(), f.Name, f.Name, face(m.Status), statusText(m.Status))
			return nil
		})
	},
}

// parseAt accepts RFC 3339 timestamps, or a YYYY-MM-DD date taken as noon
// local time.
func parseAt(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("--at %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return d.Add(12 * time.Hour), nil
}

var interactionsCmd = &cobra.Command{
	Use:     "interactions",
	Aliases: []string{"history"},
	Short:   "Browse and prune logged contacts",
}

var interactionsLimit int

var interactionsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the latest contacts across all gardens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := interactionsLimit
		if !cmd.Flags().Changed("limit") {
			limit = cfg.Queries.RecentLimit
		}
		return readStore(func(st *store.Store) error {
			recent := st.RecentInteractions(limit)
			if len(recent) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing logged yet.")
				return nil
			}
			for _, it := range recent {
				name := "?"
				if f, ok := st.Friend(it.FriendID); ok {
					name = f.Name
				}
				printInteraction(cmd.OutOrStdout(), it, name)
			}
			return nil
		})
	},
}

var interactionsDeleteCmd = &cobra.Command{
	Use:   "delete <interaction-id>",
	Short: "Delete a logged contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStore(func(st *store.Store) error {
			id, err := resolveInteraction(st, args[0])
			if err != nil {
				return err
			}
			if st.DeleteInteraction(id) == store.NotFound {
				return fmt.Errorf("no interaction %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		})
	},
}

func init() {
	logCmd.Flags().StringVarP(&logNote, "note", "n", "", "what happened")
	logCmd.Flags().StringVar(&logBy, "by", "", "who reached out: me, them or mutual")
	logCmd.Flags().StringVar(&logAt, "at", "", "when it happened (RFC 3339 or YYYY-MM-DD; default now)")

	interactionsCmd.AddCommand(interactionsRecentCmd)
	interactionsCmd.AddCommand(interactionsDeleteCmd)
	interactionsRecentCmd.Flags().IntVarP(&interactionsLimit, "limit", "n", store.DefaultRecentLimit, "how many to show")
}

func printInteraction(w io.Writer, it model.Interaction, name string) {
	who := ""
	if name != "" {
		who = " with " + name
	}
	by := ""
	if it.InitiatedBy != "" {
		by = dimStyle.Render(" (" + string(it.InitiatedBy) + ")")
	}
	fmt.Fprintf(w, "  %s %s %s%s%s, %s\n", dimStyle.Render(shortID(it.ID)), it.Type.Icon(), it.Type.Label(), who, by, ago(it.At))
	if it.Note != "" {
		fmt.Fprintf(w, "      %s\n", it.Note)
	}
}
