package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/config"
	"github.com/lazypower/tended/internal/logging"
)

var (
	cfgFile string
	dbFlag  string

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tended",
	Short: "Keep track of the friendships you care about",
	Long: "Tended keeps a garden of friends, grouped by how close you are, and tells you " +
		"who is thriving, who is cooling off and whose birthday is coming up.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tended/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database path (default is $HOME/.tended/tended.db)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(gardenCmd)
	rootCmd.AddCommand(friendCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(interactionsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(attentionCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(plantCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	l, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
