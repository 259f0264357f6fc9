package cmd

import (
	"context"
	"fmt"
	"log"

	"rihla/catalog"
	"rihla/db"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	seedCity   string
	seedCounts catalog.Counts
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a fake catalog for a city",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCity == "" {
			return fmt.Errorf("--city is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()

		store, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer store.Disconnect(ctx)

		acts, hotels, restaurants := catalog.Fake(faker.New(), seedCity, seedCounts)
		if err := insertAll(ctx, store.DestinationCollection, acts); err != nil {
			return err
		}
		if err := insertAll(ctx, store.HotelCollection, hotels); err != nil {
			return err
		}
		if err := insertAll(ctx, store.RestaurantCollection, restaurants); err != nil {
			return err
		}
		log.Printf("seeded %s: %d activities, %d hotels, %d restaurants", seedCity, len(acts), len(hotels), len(restaurants))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedCity, "city", "", "city to seed")
	seedCmd.Flags().IntVar(&seedCounts.Activities, "activities", 20, "number of activities")
	seedCmd.Flags().IntVar(&seedCounts.Hotels, "hotels", 6, "number of hotels")
	seedCmd.Flags().IntVar(&seedCounts.Restaurants, "restaurants", 15, "number of restaurants")
}

func insertAll[T any](ctx context.Context, coll *mongo.Collection, items []T) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return nil
}
