package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgenotes/vaultgraph/internal/vault"
	"github.com/forgenotes/vaultgraph/plugin/htmlviz"
	"github.com/forgenotes/vaultgraph/server/service/graph"
)

// layoutIterations bounds the offline layout pass. Circle seeding leaves
// little work for the simulation, so a short budget is enough.
const layoutIterations = 50

// scanVault loads documents for a report command.
func scanVault(ctx context.Context, args []string) ([]graph.Document, error) {
	vaultArgOverride(args)
	p, err := loadProfile()
	if err != nil {
		return nil, err
	}
	return vault.NewScanner().Scan(ctx, p.Vault)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [vault]",
	Short: "Analyze the vault and show statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := scanVault(cmd.Context(), args)
		if err != nil {
			return err
		}
		stats := graph.Build(docs, false).Stats()

		fmt.Println("VAULT ANALYSIS")
		fmt.Printf("Total notes:     %d\n", stats.NodeCount)
		fmt.Printf("Connected notes: %d (%.1f%%)\n", stats.NodeCount-stats.OrphanCount, stats.ConnectedPct)
		fmt.Printf("Orphaned notes:  %d (%.1f%%)\n", stats.OrphanCount, 100.0-stats.ConnectedPct)
		fmt.Printf("Total links:     %d\n", stats.EdgeCount)
		return nil
	},
}

var orphansCmd = &cobra.Command{
	Use:   "orphans [vault]",
	Short: "List notes with no incoming links",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := scanVault(cmd.Context(), args)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		orphans := graph.Build(docs, false).Orphans()

		fmt.Printf("ORPHANED NOTES (showing %d of %d)\n", min(count, len(orphans)), len(orphans))
		for i, name := range orphans {
			if i >= count {
				break
			}
			fmt.Printf("%d. %s\n", i+1, name)
		}
		return nil
	},
}

var dailyCmd = &cobra.Command{
	Use:   "daily [vault]",
	Short: "Show random orphans for daily connection work",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := scanVault(cmd.Context(), args)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		orphans := graph.Build(docs, false).Orphans()
		rand.Shuffle(len(orphans), func(i, j int) {
			orphans[i], orphans[j] = orphans[j], orphans[i]
		})

		fmt.Println("TODAY'S CONNECTION OPPORTUNITIES")
		fmt.Printf("Work on connecting these %d orphaned notes:\n", min(count, len(orphans)))
		for i, name := range orphans {
			if i >= count {
				break
			}
			fmt.Printf("%d. %s\n", i+1, name)
		}
		return nil
	},
}

var hubsCmd = &cobra.Command{
	Use:   "hubs [vault]",
	Short: "List notes with the most outgoing links",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := scanVault(cmd.Context(), args)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		hubs := graph.Hubs(docs, count)

		fmt.Printf("HUB NOTES (showing top %d of %d)\n", len(hubs), len(docs))
		for i, hub := range hubs {
			fmt.Printf("%d. %s -> %d links\n", i+1, hub.Name, hub.OutLinks)
		}
		return nil
	},
}

var vizCmd = &cobra.Command{
	Use:   "viz [vault]",
	Short: "Export an interactive HTML visualization",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := scanVault(cmd.Context(), args)
		if err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetString("filter")
		filterOrphans := filter == "connected"
		g := graph.Build(docs, filterOrphans)

		sim := graph.NewSimulator(graph.DefaultSimConfig(), g.NodeCount())
		sim.Run(g, layoutIterations)

		output, _ := cmd.Flags().GetString("output")
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := htmlviz.Render(f, g, len(docs), "Vault Graph"); err != nil {
			return err
		}
		fmt.Printf("Interactive graph saved to %s (%d nodes, %d links)\n",
			output, g.NodeCount(), g.EdgeCount())
		return nil
	},
}

func init() {
	orphansCmd.Flags().IntP("count", "c", 10, "number of notes to display")
	dailyCmd.Flags().IntP("count", "c", 10, "number of notes to display")
	hubsCmd.Flags().IntP("count", "c", 20, "number of notes to display")

	vizCmd.Flags().StringP("output", "o", "graph.html", "output HTML file path")
	vizCmd.Flags().StringP("filter", "f", "all", `"all" or "connected"`)
}
