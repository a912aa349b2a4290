package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/careerco/companion/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show AI usage grouped by agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().Query(context.Background(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No gateway activity recorded yet.")
			return nil
		}

		type agg struct {
			calls    int
			failures int
			latency  int64
			inChars  int
			outChars int
		}
		byPurpose := make(map[string]*agg)
		for _, e := range events {
			a := byPurpose[e.Purpose]
			if a == nil {
				a = &agg{}
				byPurpose[e.Purpose] = a
			}
			a.calls++
			if !e.Success {
				a.failures++
			}
			a.latency += e.LatencyMs
			a.inChars += e.InputChars
			a.outChars += e.OutputChars
		}

		purposes := make([]string, 0, len(byPurpose))
		for p := range byPurpose {
			purposes = append(purposes, p)
		}
		sort.Strings(purposes)

		fmt.Printf("%-14s  %-6s  %-6s  %-9s  %-10s  %s\n",
			"Agent", "Calls", "Fail", "Avg ms", "In chars", "Out chars")
		for _, p := range purposes {
			a := byPurpose[p]
			avg := a.latency / int64(a.calls)
			fmt.Printf("%-14s  %-6d  %-6d  %-9d  %-10d  %d\n",
				p, a.calls, a.failures, avg, a.inChars, a.outChars)
		}
		return nil
	},
}
