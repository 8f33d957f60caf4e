package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anikdas/wordtrail/internal/engine"
	"github.com/anikdas/wordtrail/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wordtrail",
	Short: "Adaptive vocabulary review scheduler",
	Long: "Wordtrail — spaced repetition and failure analytics for vocabulary learning:\n" +
		"it decides when each word comes back and which words need the most attention.",
}

func Execute() error {
	// A missing .env is fine; it only ever supplies WORDTRAIL_DB.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDTRAIL_DB env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(attentionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then WORDTRAIL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// openEngine opens the store and builds the engine with defaults.
// The returned cleanup closes the store and flushes the logger.
func openEngine(cmd *cobra.Command) (*engine.Engine, *store.SQLite, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}

	st, err := store.Open(dbPath, store.DefaultConfig())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	log, err := newLogger(cmd)
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	eng, err := engine.New(st, st, engine.DefaultConfig(), log)
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		_ = log.Sync()
		st.Close()
	}
	return eng, st, cleanup, nil
}
