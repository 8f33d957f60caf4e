package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anikdas/wordtrail/internal/engine"
	"github.com/anikdas/wordtrail/internal/mastery"
	"github.com/anikdas/wordtrail/internal/spacedrep"
)

var reviewCmd = &cobra.Command{
	Use:   "review <item-id>",
	Short: "Submit a review outcome for an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, cleanup, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()

		ratingName, _ := cmd.Flags().GetString("rating")
		rating, err := spacedrep.ParseRating(ratingName)
		if err != nil {
			return fmt.Errorf("--rating must be hard, medium, or easy: %w", err)
		}

		modeName, _ := cmd.Flags().GetString("mode")
		mode := mastery.ModeContext(modeName)
		if !mode.Valid() {
			return fmt.Errorf("unknown mode context %q", modeName)
		}

		wrong, _ := cmd.Flags().GetBool("wrong")
		o := engine.Outcome{
			ItemID:  args[0],
			Mode:    mode,
			Rating:  rating,
			Correct: !wrong,
		}
		if wrong {
			kindName, _ := cmd.Flags().GetString("kind")
			kind := mastery.ErrorKind(kindName)
			if !kind.Valid() {
				return fmt.Errorf("unknown error kind %q", kindName)
			}
			o.Kind = kind
			o.LatencyMs, _ = cmd.Flags().GetInt("latency")
			o.UserAnswer, _ = cmd.Flags().GetString("answer")
			o.ExpectedAnswer, _ = cmd.Flags().GetString("expected")
		}

		if err := eng.SubmitOutcome(ctx, o); err != nil {
			return err
		}

		p, ok, err := eng.Progress(ctx, args[0])
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("%s: next review in %d day(s), due %s\n",
				args[0], p.IntervalDays, p.DueAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().String("rating", "", "Recall rating: hard, medium, or easy")
	reviewCmd.Flags().String("mode", string(mastery.ModeFlashcard), "Learning mode the answer came from")
	reviewCmd.Flags().Bool("wrong", false, "Mark the answer as incorrect")
	reviewCmd.Flags().String("kind", string(mastery.KindRecall), "Error kind for incorrect answers")
	reviewCmd.Flags().Int("latency", 0, "Response latency in milliseconds")
	reviewCmd.Flags().String("answer", "", "The learner's answer")
	reviewCmd.Flags().String("expected", "", "The expected answer")
	_ = reviewCmd.MarkFlagRequired("rating")
}
