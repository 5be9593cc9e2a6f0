package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows every board variant that can be played or served.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	games := registry.List()
	maxIDLen := len("ID")
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintln(out, "Available boards:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %-14s  %s\n", maxIDLen, "ID", "Title", "Rules")
	fmt.Fprintf(out, "  %-*s  %-14s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, g := range games {
		info := ""
		if variant, ok := t2048.VariantByID(g.ID); ok {
			info = variant.Info
		}
		fmt.Fprintf(out, "  %-*s  %-14s  %s\n", maxIDLen, g.ID, g.Title, info)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'merge2048 play <id>' to play a board.")
}
