package characters

import (
	"context"

	"github.com/thornvale/mud/internal/game"
)

// Repository defines storage operations for characters. Update persists the
// durable SaveData projection; a failed save is logged by the caller and
// retried on the next persistence tick.
type Repository interface {
	Create(ctx context.Context, char *game.Character) error
	Get(ctx context.Context, id string) (*game.Character, error)
	GetByName(ctx context.Context, name string) (*game.Character, error)
	Update(ctx context.Context, char *game.Character) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*game.Character, error)
}
