package characters

import (
	"context"
	"strings"
	"sync"

	mkerr "github.com/thornvale/mud/internal/errors"
	"github.com/thornvale/mud/internal/game"
	"github.com/thornvale/mud/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the character
// repository. Useful for testing and development.
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*game.Character
	byName     map[string]string
	ids        uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters: make(map[string]*game.Character),
		byName:     make(map[string]string),
		ids:        uuid.NewGoogleUUIDGenerator(),
	}
}

// Create stores a new character.
func (r *InMemoryRepository) Create(_ context.Context, char *game.Character) error {
	if char == nil {
		return mkerr.InvalidArgument("character cannot be nil")
	}
	if char.Name == "" {
		return mkerr.InvalidArgument("character name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if char.ID == "" {
		char.ID = r.ids.New()
	}
	if _, exists := r.characters[char.ID]; exists {
		return mkerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}
	if _, exists := r.byName[lower(char.Name)]; exists {
		return mkerr.AlreadyExistsf("character named '%s' already exists", char.Name)
	}

	r.characters[char.ID] = char.Clone()
	r.byName[lower(char.Name)] = char.ID
	return nil
}

// Get retrieves a character by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*game.Character, error) {
	if id == "" {
		return nil, mkerr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.characters[id]
	if !exists {
		return nil, mkerr.NotFoundf("character '%s' not found", id)
	}
	return char.Clone(), nil
}

// GetByName retrieves a character by display name.
func (r *InMemoryRepository) GetByName(_ context.Context, name string) (*game.Character, error) {
	if name == "" {
		return nil, mkerr.InvalidArgument("character name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byName[lower(name)]
	if !exists {
		return nil, mkerr.NotFoundf("no character named '%s'", name)
	}
	return r.characters[id].Clone(), nil
}

// Update persists the character's current state.
func (r *InMemoryRepository) Update(_ context.Context, char *game.Character) error {
	if char == nil {
		return mkerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return mkerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; !exists {
		return mkerr.NotFoundf("character '%s' not found", char.ID)
	}
	r.characters[char.ID] = char.Clone()
	return nil
}

// Delete removes a character.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	char, exists := r.characters[id]
	if !exists {
		return mkerr.NotFoundf("character '%s' not found", id)
	}
	delete(r.byName, lower(char.Name))
	delete(r.characters, id)
	return nil
}

// List returns every stored character.
func (r *InMemoryRepository) List(_ context.Context) ([]*game.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*game.Character, 0, len(r.characters))
	for _, char := range r.characters {
		out = append(out, char.Clone())
	}
	return out, nil
}

func lower(s string) string {
	return strings.ToLower(s)
}
