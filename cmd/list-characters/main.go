package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/thornvale/mud/internal/repositories/characters"
)

func main() {
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})

	chars, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list characters: %v", err)
	}

	fmt.Printf("Found %d characters:\n", len(chars))
	for _, c := range chars {
		fmt.Printf("  %s (%s) level %d %s - room %s, hp %d/%d, played %ds\n",
			c.Name, c.ID, c.Save.Level, c.Class().Name,
			c.Save.RoomID,
			c.Save.Stats.Health, c.Save.Stats.MaxHealth,
			c.Save.PlayedSeconds)
	}

	// Account index keys, for a quick orphan check.
	accountKeys, err := client.Keys(ctx, "account:*").Result()
	if err != nil {
		log.Fatalf("Failed to get account keys: %v", err)
	}
	fmt.Printf("\nFound %d accounts.\n", len(accountKeys))
}
