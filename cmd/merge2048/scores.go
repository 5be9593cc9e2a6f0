package main

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 rounds for a variant, or a summary of every
variant when none is given.

Examples:
  merge2048 scores
  merge2048 scores classic
  merge2048 scores mini --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().Bool("clear", false, "Delete the recorded rounds of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(opts.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if vp.GetBool("clear") {
			return fmt.Errorf("--clear needs a variant")
		}
		return printSummary(cmd, store)
	}

	variant, ok := t2048.VariantByID(args[0])
	if !ok {
		return fmt.Errorf("unknown variant %q (run 'merge2048 list')", args[0])
	}

	if vp.GetBool("clear") {
		if err := store.ClearScores(variant.ID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared scores for %s.\n", variant.Name)
		return nil
	}
	return printTop(cmd, store, variant)
}

func printTop(cmd *cobra.Command, store *storage.Store, variant t2048.Variant) error {
	out := cmd.OutOrStdout()

	scores, err := store.TopScores(variant.ID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - 2048 %s\n\n", variant.Name)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'merge2048 play %s' to set the first high score!\n", variant.ID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Result", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "------", "----")
	for i, rec := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %-6d  %-6s  %s\n",
			i+1, rec.Score, rec.MaxTile, rec.Moves, resultLabel(rec.Lost), rec.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d\n", scores[0].Score)
	return nil
}

func printSummary(cmd *cobra.Command, store *storage.Store) error {
	out := cmd.OutOrStdout()

	stats, err := store.AllStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	ids := lo.Keys(stats)
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-8s  %-6s  %-8s  %-8s  %-6s  %s\n", "Variant", "Games", "Best", "Average", "Tile", "Last played")
	fmt.Fprintf(out, "  %-8s  %-6s  %-8s  %-8s  %-6s  %s\n", "-------", "-----", "----", "-------", "----", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Fprintf(out, "  %-8s  %-6d  %-8d  %-8.0f  %-6d  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.BestTile, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func resultLabel(lost bool) string {
	if lost {
		return "lost"
	}
	return "quit"
}
