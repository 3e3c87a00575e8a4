package cmd

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fukushu-cli/fukushu/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		sum, err := st.Summarize(ctx)
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}

		pct := 100
		if sum.Answered > 0 {
			pct = int(math.Round(100 * float64(sum.Correct) / float64(sum.Answered)))
		}
		fmt.Printf("Sessions:  %d\n", sum.Sessions)
		fmt.Printf("Answers:   %d\n", sum.Answered)
		fmt.Printf("Correct:   %d (%d%%)\n", sum.Correct, pct)

		if len(sum.ByCategory) > 0 {
			cats := make([]string, 0, len(sum.ByCategory))
			for c := range sum.ByCategory {
				cats = append(cats, c)
			}
			sort.Strings(cats)
			fmt.Println("\nExceptions caught:")
			for _, c := range cats {
				fmt.Printf("  %-26s %d\n", c, sum.ByCategory[c])
			}
		}

		missed, err := st.TopMissed(ctx, 10)
		if err != nil {
			return fmt.Errorf("top missed: %w", err)
		}
		if len(missed) > 0 {
			fmt.Println("\nMost missed:")
			for _, m := range missed {
				fmt.Printf("  %-8s ×%d\n", m.Characters, m.Missed)
			}
		}
		return nil
	},
}
