package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careerco/companion/internal/store"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Inspect AI gateway events",
}

var gatewayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent gateway calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().Query(context.Background(), store.QueryOpts{
			Limit:   limit,
			Purpose: purpose,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No gateway events found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-12s  %-10s  %-38s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Provider", "Model", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 104))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 38 {
				model = model[:38]
			}
			fmt.Printf("%-5d  %-19s  %-12s  %-10s  %-38s  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Provider,
				model,
				e.LatencyMs,
				ok,
			)
			if !e.Success && e.Error != "" {
				fmt.Printf("       error: %s\n", e.Error)
			}
		}
		return nil
	},
}

func init() {
	gatewayListCmd.Flags().Int("limit", 50, "Maximum events to show")
	gatewayListCmd.Flags().String("purpose", "", "Filter by agent purpose (lesson, tutor, coach, …)")
	gatewayCmd.AddCommand(gatewayListCmd)
}
