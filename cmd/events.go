package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rihla/mq"
	"rihla/rdx"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print itinerary lifecycle events as they are published",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.RedisEnabled() {
			return errors.New("events need Redis; set REDIS_ADDR")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rdb, err := rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rdb.Close()

		log.Printf("[events] listening on %s", mq.Channel)
		return mq.Listen(ctx, rdb, func(ev mq.Event) {
			log.Printf("[events] %s %s city=%s user=%s fallback=%t", ev.Type, ev.ItineraryID, ev.City, ev.UserID, ev.Fallback)
		})
	},
}
