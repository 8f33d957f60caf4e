package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anikdas/wordtrail/internal/card"
)

var addCmd = &cobra.Command{
	Use:   "add <id> <source> <target>",
	Short: "Add a vocabulary item to the catalog",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, cleanup, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		category, _ := cmd.Flags().GetString("category")
		tierName, _ := cmd.Flags().GetString("tier")
		tier, err := card.ParseTier(tierName)
		if err != nil {
			return err
		}

		it := card.Item{
			ID:         args[0],
			SourceText: args[1],
			TargetText: args[2],
			Category:   category,
			Tier:       tier,
		}
		if err := st.PutItem(cmd.Context(), it); err != nil {
			return err
		}
		fmt.Printf("added %s (%s -> %s)\n", it.ID, it.SourceText, it.TargetText)
		return nil
	},
}

func init() {
	addCmd.Flags().String("category", "", "Item category")
	addCmd.Flags().String("tier", "beginner", "Difficulty tier (beginner|intermediate|advanced)")
}
