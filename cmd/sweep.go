package cmd

import (
	"context"
	"log"

	"rihla/sweeper"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired temporary itineraries once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		// an explicit run always sweeps, whatever a serving replica holds
		n, err := sweeper.New(a.repo, cfg.SweepInterval).RunOnce(ctx)
		if err != nil {
			return err
		}
		log.Printf("swept %d expired itineraries", n)
		return nil
	},
}
