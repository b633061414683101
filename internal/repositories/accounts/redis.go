package accounts

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"

	mkerr "github.com/thornvale/mud/internal/errors"
)

const accountKeyPrefix = "account:"

// RedisRepoConfig holds configuration for the Redis repository.
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed account repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}
	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) Create(ctx context.Context, account *Account) error {
	if account == nil || account.Name == "" {
		return mkerr.InvalidArgument("account name is required")
	}

	data, err := json.Marshal(account)
	if err != nil {
		return mkerr.Wrap(err, "failed to serialize account")
	}

	ok, err := r.client.SetNX(ctx, accountKey(account.Name), data, 0).Result()
	if err != nil {
		return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to create account")
	}
	if !ok {
		return mkerr.AlreadyExistsf("account '%s' already exists", account.Name)
	}
	return nil
}

func (r *redisRepo) Get(ctx context.Context, name string) (*Account, error) {
	raw, err := r.client.Get(ctx, accountKey(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, mkerr.NotFoundf("account '%s' not found", name)
		}
		return nil, mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to get account")
	}

	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, mkerr.Wrap(err, "failed to deserialize account")
	}
	return &account, nil
}

func (r *redisRepo) Update(ctx context.Context, account *Account) error {
	if account == nil || account.Name == "" {
		return mkerr.InvalidArgument("account name is required")
	}

	data, err := json.Marshal(account)
	if err != nil {
		return mkerr.Wrap(err, "failed to serialize account")
	}
	if err := r.client.Set(ctx, accountKey(account.Name), data, 0).Err(); err != nil {
		return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to update account")
	}
	return nil
}

func accountKey(name string) string {
	return accountKeyPrefix + strings.ToLower(name)
}
