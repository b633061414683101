package characters

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	mkerr "github.com/thornvale/mud/internal/errors"
	"github.com/thornvale/mud/internal/game"
	"github.com/thornvale/mud/internal/uuid"
)

const (
	// Key patterns
	characterKeyPrefix = "character:"
	nameKeyPrefix      = "charname:"
	allCharactersKey   = "characters:all"
)

// CharacterData is the serialized form of a character in Redis.
type CharacterData struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	ClassKey string        `json:"class_key"`
	RaceKey  string        `json:"race_key,omitempty"`
	Save     game.SaveData `json:"save"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis repository.
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// NewRedisRepository creates a Redis-backed character repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: gen,
	}
}

// Create stores a new character and its name index entry.
func (r *redisRepo) Create(ctx context.Context, char *game.Character) error {
	if char == nil {
		return mkerr.InvalidArgument("character cannot be nil")
	}
	if char.Name == "" {
		return mkerr.InvalidArgument("character name is required")
	}
	if char.ID == "" {
		char.ID = r.uuidGenerator.New()
	}

	existing, err := r.client.Exists(ctx, characterKey(char.ID)).Result()
	if err != nil {
		return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to check character existence")
	}
	if existing > 0 {
		return mkerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	data, err := json.Marshal(toData(char))
	if err != nil {
		return mkerr.Wrap(err, "failed to serialize character")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, characterKey(char.ID), data, 0)
	pipe.Set(ctx, nameKey(char.Name), char.ID, 0)
	pipe.SAdd(ctx, allCharactersKey, char.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to create character")
	}

	return nil
}

// Get retrieves a character by ID.
func (r *redisRepo) Get(ctx context.Context, id string) (*game.Character, error) {
	if id == "" {
		return nil, mkerr.InvalidArgument("character ID is required")
	}

	raw, err := r.client.Get(ctx, characterKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, mkerr.NotFoundf("character '%s' not found", id)
		}
		return nil, mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to get character")
	}

	var data CharacterData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, mkerr.Wrap(err, "failed to deserialize character")
	}
	return fromData(&data), nil
}

// GetByName resolves the name index and loads the character.
func (r *redisRepo) GetByName(ctx context.Context, name string) (*game.Character, error) {
	if name == "" {
		return nil, mkerr.InvalidArgument("character name is required")
	}

	id, err := r.client.Get(ctx, nameKey(name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, mkerr.NotFoundf("no character named '%s'", name)
		}
		return nil, mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to resolve character name")
	}
	return r.Get(ctx, id)
}

// Update persists the character's current state.
func (r *redisRepo) Update(ctx context.Context, char *game.Character) error {
	if char == nil {
		return mkerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return mkerr.InvalidArgument("character ID is required")
	}

	char.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(toData(char))
	if err != nil {
		return mkerr.Wrap(err, "failed to serialize character")
	}

	if err := r.client.Set(ctx, characterKey(char.ID), data, 0).Err(); err != nil {
		return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to update character")
	}
	return nil
}

// Delete removes a character and its index entries.
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, characterKey(id))
	pipe.Del(ctx, nameKey(char.Name))
	pipe.SRem(ctx, allCharactersKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to delete character")
	}
	return nil
}

// List fetches every stored character, fanning the gets out in parallel.
func (r *redisRepo) List(ctx context.Context) ([]*game.Character, error) {
	ids, err := r.client.SMembers(ctx, allCharactersKey).Result()
	if err != nil {
		return nil, mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to list characters")
	}
	if len(ids) == 0 {
		return []*game.Character{}, nil
	}

	chars := make([]*game.Character, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			char, err := r.Get(gctx, id)
			if err != nil {
				if mkerr.IsNotFound(err) {
					// Stale index entry; skipped, cleaned up lazily.
					return nil
				}
				return err
			}
			chars[i] = char
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*game.Character, 0, len(chars))
	for _, c := range chars {
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func characterKey(id string) string {
	return characterKeyPrefix + id
}

func nameKey(name string) string {
	return nameKeyPrefix + strings.ToLower(name)
}

func toData(char *game.Character) *CharacterData {
	return &CharacterData{
		ID:        char.ID,
		Name:      char.Name,
		ClassKey:  char.ClassKey,
		RaceKey:   char.RaceKey,
		Save:      char.Save,
		CreatedAt: char.CreatedAt,
		UpdatedAt: char.UpdatedAt,
	}
}

func fromData(data *CharacterData) *game.Character {
	return &game.Character{
		ID:        data.ID,
		Name:      data.Name,
		ClassKey:  data.ClassKey,
		RaceKey:   data.RaceKey,
		Save:      data.Save,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
