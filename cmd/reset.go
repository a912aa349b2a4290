package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerco/companion/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Sign out and clear cached data",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		if err := s.SessionRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Signed out.")

		if all {
			if _, err := s.DB().ExecContext(ctx, `DELETE FROM gateway_events`); err != nil {
				return fmt.Errorf("clear gateway events: %w", err)
			}
			if _, err := s.DB().ExecContext(ctx, `DELETE FROM users`); err != nil {
				return fmt.Errorf("clear local accounts: %w", err)
			}
			fmt.Println("Local accounts and event log cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also delete local accounts and the gateway event log")
}
