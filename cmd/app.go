package cmd

import (
	"context"
	"log"

	"rihla/catalog"
	"rihla/config"
	"rihla/db"
	"rihla/itinerary"
	"rihla/llm"
	"rihla/mq"
	"rihla/planner"
	"rihla/prefs"
	"rihla/rdx"
	"rihla/sweeper"

	"github.com/redis/go-redis/v9"
)

// app is the wired set of long-lived components shared by the commands.
type app struct {
	cfg     *config.Config
	store   *db.Store
	rdb     *redis.Client
	repo    *itinerary.MongoRepository
	manager *itinerary.Manager
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	store, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Printf("[app] index setup failed: %v", err)
	}

	a := &app{cfg: cfg, store: store, repo: itinerary.NewMongoRepository(store.ItineraryCollection)}

	if cfg.RedisEnabled() {
		rdb, err := rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			// the cache and the sweep lease are optional
			log.Printf("[app] continuing without Redis: %v", err)
		} else {
			a.rdb = rdb
		}
	}

	var cat catalog.Store = catalog.NewMongoStore(store.DestinationCollection, store.HotelCollection, store.RestaurantCollection)
	if a.rdb != nil {
		cat = catalog.NewCached(cat, a.rdb, cfg.CatalogCacheTTL)
	}

	mapper := prefs.NewMapper(prefs.DefaultAliases)
	gen := planner.NewGenerator(
		planner.NewSelector(cat, mapper, nil),
		planner.NewSynthesizer(mapper),
		newLLMClient(cfg),
		planner.WithTimeout(cfg.LLMTimeout),
		planner.WithMaxDuration(cfg.MaxDuration),
	)
	var opts []itinerary.ManagerOption
	if a.rdb != nil {
		opts = append(opts, itinerary.WithEvents(mq.NewRedisEmitter(a.rdb)))
	}
	a.manager = itinerary.NewManager(a.repo, gen, cfg.TempItineraryTTL, opts...)
	return a, nil
}

func newLLMClient(cfg *config.Config) llm.Client {
	if !cfg.LLMEnabled() {
		log.Println("[app] OPENAI_API_KEY not set; itineraries use the local synthesizer")
		return llm.Disabled{}
	}
	client, err := llm.NewOpenAI(
		llm.WithToken(cfg.OpenAIKey),
		llm.WithBaseURL(cfg.OpenAIBaseURL),
		llm.WithModel(cfg.OpenAIModel),
		llm.WithTemperature(cfg.OpenAITemperature),
		llm.WithMaxTokens(cfg.OpenAIMaxTokens),
		llm.WithJSONMode(true),
	)
	if err != nil {
		log.Printf("[app] external generation disabled: %v", err)
		return llm.Disabled{}
	}
	return client
}

func (a *app) newSweeper() *sweeper.Sweeper {
	var opts []sweeper.Option
	if a.rdb != nil {
		opts = append(opts, sweeper.WithLease(sweeper.NewRedisLease(a.rdb)))
	}
	return sweeper.New(a.repo, a.cfg.SweepInterval, opts...)
}

func (a *app) close(ctx context.Context) {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			log.Printf("[app] closing Redis: %v", err)
		}
	}
	if err := a.store.Disconnect(ctx); err != nil {
		log.Printf("[app] closing MongoDB: %v", err)
	}
}
