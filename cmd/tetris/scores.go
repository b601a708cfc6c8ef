package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit       int
	flagScorePlayer string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores.

Examples:
  tetris scores
  tetris scores --limit 20
  tetris scores --player ann
  tetris scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScorePlayer, "player", "", "Also show this player's best score")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("All scores cleared.")
		return nil
	}

	table, err := tui.RenderScores(store, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	fmt.Println(table)

	stats, err := store.Stats()
	if err == nil && stats.Games > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f  Last played: %s\n",
			stats.HighScore, stats.Games, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if flagScorePlayer != "" {
		best, err := store.PlayerBest(flagScorePlayer)
		if err != nil {
			return err
		}
		fmt.Printf("%s's best: %d\n", flagScorePlayer, best)
	}
	return nil
}
