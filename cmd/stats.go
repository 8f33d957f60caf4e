package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anikdas/wordtrail/internal/card"
	"github.com/anikdas/wordtrail/internal/mastery"
)

var statsCmd = &cobra.Command{
	Use:   "stats [item-id]",
	Short: "Show mastery statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, cleanup, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()

		if len(args) == 1 {
			s, err := eng.MasterySummary(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s (score %.2f, %d recent failure(s))\n",
				s.ItemID, s.Level, s.Score, s.FailureCount)
			if !s.LastFailureAt.IsZero() {
				fmt.Printf("last failure: %s\n", s.LastFailureAt.Format("2006-01-02 15:04"))
			}
			return nil
		}

		items, err := st.List(ctx, card.Filter{})
		if err != nil {
			return err
		}

		counts := make(map[mastery.Level]int)
		for _, it := range items {
			s, err := eng.MasterySummary(ctx, it.ID)
			if err != nil {
				return err
			}
			counts[s.Level]++
		}

		fmt.Printf("%d item(s) in catalog\n", len(items))
		for _, level := range []mastery.Level{
			mastery.LevelStruggling, mastery.LevelChallenging,
			mastery.LevelLearning, mastery.LevelMastered,
		} {
			fmt.Printf("  %-12s %d\n", level, counts[level])
		}
		return nil
	},
}
