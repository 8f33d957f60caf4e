package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anikdas/wordtrail/internal/engine"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Build the next review queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, cleanup, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()

		category, _ := cmd.Flags().GetString("category")
		maxSize, _ := cmd.Flags().GetInt("max")

		ids, err := eng.NextQueue(ctx, engine.QueueFilter{Category: category}, maxSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("nothing to review")
			return nil
		}

		for i, id := range ids {
			it, err := st.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%2d. %-16s %s\n", i+1, it.ID, it.SourceText)
		}
		return nil
	},
}

func init() {
	queueCmd.Flags().String("category", "", "Only include items from this category")
	queueCmd.Flags().Int("max", 0, "Maximum queue length (0 = engine default)")
}
