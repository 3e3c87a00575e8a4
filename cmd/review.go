package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fukushu-cli/fukushu/internal/app"
	"github.com/fukushu-cli/fukushu/internal/checker"
	"github.com/fukushu-cli/fukushu/internal/config"
	"github.com/fukushu-cli/fukushu/internal/deck"
	"github.com/fukushu-cli/fukushu/internal/review"
	reviewscreen "github.com/fukushu-cli/fukushu/internal/screens/review"
	"github.com/fukushu-cli/fukushu/internal/srs"
	"github.com/fukushu-cli/fukushu/internal/stats"
	"github.com/fukushu-cli/fukushu/internal/store"
)

// runReview loads config and deck, opens the store, wires the
// controller and launches the TUI.
func runReview(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, adv := range settings.Validate() {
		fmt.Fprintf(os.Stderr, "config: %s: %s\n", adv.Option, adv.Message)
	}

	dk := deck.Demo()
	if path, _ := cmd.Flags().GetString("deck"); path != "" {
		dk, err = deck.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load deck: %w", err)
		}
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sessionID, err := st.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	agg := stats.NewAggregator(func() int { return len(dk.Subjects) })
	srsMgr := srs.NewManager(dk.Stages)

	ctrl, err := review.New(&settings, checker.DefaultChecker{}, checker.KanaTransliterator{}, agg,
		review.WithSRS(srsMgr))
	if err != nil {
		return fmt.Errorf("build controller: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	queue := dk.BuildQueue(rng)
	if len(queue) == 0 {
		return fmt.Errorf("deck %q has no questions", dk.Name)
	}

	screen := reviewscreen.New(ctrl, &settings, dk, queue, agg, st, sessionID)
	if err := app.Run(screen); err != nil {
		return err
	}

	sess := agg.Session()
	return st.FinishSession(ctx, sessionID, sess.Answered, sess.Correct, sess.Complete)
}
