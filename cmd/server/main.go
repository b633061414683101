package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/thornvale/mud/internal/auth"
	"github.com/thornvale/mud/internal/config"
	"github.com/thornvale/mud/internal/gateway"
	"github.com/thornvale/mud/internal/repositories/accounts"
	"github.com/thornvale/mud/internal/repositories/characters"
	"github.com/thornvale/mud/internal/scheduler"
	"github.com/thornvale/mud/internal/session"
	"github.com/thornvale/mud/internal/world"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	characterRepo := characters.Repository(nil)
	accountRepo := accounts.Repository(nil)

	// Try to connect to Redis if URL is provided
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		log.Printf("Connecting to Redis at: %s", redisURL)

		opts, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory repositories")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory repositories")
			} else {
				cancel()
				log.Println("Successfully connected to Redis")

				characterRepo = characters.NewRedisRepository(&characters.RedisRepoConfig{
					Client: redisClient,
				})
				accountRepo = accounts.NewRedisRepository(&accounts.RedisRepoConfig{
					Client: redisClient,
				})
				log.Println("Using Redis for persistence")
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory repositories")
	}

	if characterRepo == nil {
		characterRepo = characters.NewInMemoryRepository()
	}
	if accountRepo == nil {
		accountRepo = accounts.NewInMemoryRepository()
	}

	authManager := auth.NewManager(&auth.ManagerConfig{Repository: accountRepo})

	registry := session.NewRegistry()
	provider := world.NewInMemoryProvider(&world.InMemoryProviderConfig{
		Rooms: world.DefaultRooms(),
		Zones: world.DefaultZones(),
	})
	provider.SetSink(session.NewRegistrySink(registry))

	sched := scheduler.New()
	timers := session.Timers{
		RegenInterval:      cfg.Game.RegenInterval,
		RegenThreshold:     cfg.Game.RegenThreshold,
		PersistInterval:    cfg.Game.PersistInterval,
		InactivityInterval: cfg.Game.InactivityInterval,
		AfkAfter:           cfg.Game.AfkAfter,
		KickAfter:          cfg.Game.KickAfter,
		ContinueDelay:      cfg.Game.ContinueDelay,
		ResurrectDelay:     cfg.Game.ResurrectDelay,
	}

	gw := gateway.New(&gateway.Config{
		Addr: cfg.Server.ListenAddr,
		NewSession: func(transport session.Transport) *session.Session {
			return session.New(&session.Config{
				Transport:   transport,
				Registry:    registry,
				Characters:  characterRepo,
				Auth:        authManager,
				World:       provider,
				Scheduler:   sched,
				StartRoomID: cfg.Game.StartRoomID,
				Timers:      timers,
			})
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() { serveErr <- gw.ListenAndServe(ctx) }()

	log.Printf("Thornvale is up on %s. Press Ctrl+C to exit.", cfg.Server.ListenAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutting down")
	case err := <-serveErr:
		if err != nil {
			log.Printf("Gateway failed: %v", err)
		}
	}

	registry.Drain("server shutdown")
	cancel()

	if redisClient != nil {
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Printf("Error closing Redis client: %v", closeErr)
		}
	}
	log.Println("Goodbye.")
}
