package cmd

import (
	"github.com/fukushu-cli/fukushu/internal/config"
	"github.com/fukushu-cli/fukushu/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fukushu",
	Short: "Kanji review sessions with second-chance answer checking",
	Long: "Fukushu is a terminal review app for kanji and vocabulary that double-checks every verdict before it counts, with typo tolerance, answer overrides and burn warnings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FUKUSHU_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides FUKUSHU_CONFIG env var)")
	rootCmd.Flags().String("deck", "", "Path to a deck JSON file (built-in demo deck when empty)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then FUKUSHU_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveConfigPath returns the config path using --config flag, then
// FUKUSHU_CONFIG env var, then the default XDG path.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}
