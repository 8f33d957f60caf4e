package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anikdas/wordtrail/internal/attention"
	"github.com/anikdas/wordtrail/internal/mastery"
)

var attentionCmd = &cobra.Command{
	Use:   "attention",
	Short: "List items that need the most attention",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		sortName, _ := cmd.Flags().GetString("sort")
		key := attention.SortKey(sortName)
		if !key.Valid() {
			return fmt.Errorf("unknown sort key %q", sortName)
		}

		f := attention.Filter{}
		f.Category, _ = cmd.Flags().GetString("category")
		if levelName, _ := cmd.Flags().GetString("level"); levelName != "" {
			level, ok := mastery.ParseLevel(levelName)
			if !ok {
				return fmt.Errorf("unknown mastery level %q", levelName)
			}
			f.Level = level
		}

		entries, err := eng.AttentionList(cmd.Context(), f, key)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no items match")
			return nil
		}

		fmt.Printf("%-16s %-12s %8s  %s\n", "ITEM", "LEVEL", "FAILURES", "LAST FAILURE")
		for _, e := range entries {
			last := "-"
			if !e.LastFailureAt.IsZero() {
				last = e.LastFailureAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("%-16s %-12s %8d  %s\n", e.Item.ID, e.Level, e.FailureCount, last)
		}
		return nil
	},
}

func init() {
	attentionCmd.Flags().String("sort", string(attention.SortFailureCount),
		"Sort key: failure-count, last-failure, mode, or mastery")
	attentionCmd.Flags().String("category", "", "Only include items from this category")
	attentionCmd.Flags().String("level", "", "Only include items at this mastery level")
}
