package world

import (
	"context"
	"sync"

	mkerr "github.com/thornvale/mud/internal/errors"
)

// InMemoryProvider serves rooms and zones from static tables. Useful for
// development servers and tests.
type InMemoryProvider struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	zones map[string]*Zone
	sink  Sink
}

// InMemoryProviderConfig holds configuration for the in-memory provider.
type InMemoryProviderConfig struct {
	Rooms []*Room
	Zones []*Zone

	// Sink receives broadcasts; may be set later via SetSink once the
	// session registry exists.
	Sink Sink
}

// NewInMemoryProvider creates a provider over the given static world data.
func NewInMemoryProvider(cfg *InMemoryProviderConfig) *InMemoryProvider {
	p := &InMemoryProvider{
		rooms: make(map[string]*Room),
		zones: make(map[string]*Zone),
		sink:  cfg.Sink,
	}
	for _, r := range cfg.Rooms {
		p.rooms[r.ID] = r
	}
	for _, z := range cfg.Zones {
		p.zones[z.ID] = z
	}
	return p
}

// SetSink wires the broadcast sink after construction.
func (p *InMemoryProvider) SetSink(sink Sink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink = sink
}

// Room returns the room snapshot for the given id.
func (p *InMemoryProvider) Room(_ context.Context, id string) (*Room, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	room, ok := p.rooms[id]
	if !ok {
		return nil, mkerr.NotFoundf("room '%s' not found", id)
	}
	return room, nil
}

// Graveyard returns the zone's configured resurrection room, if any.
func (p *InMemoryProvider) Graveyard(_ context.Context, zoneID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	zone, ok := p.zones[zoneID]
	if !ok || zone.GraveyardRoomID == "" {
		return "", false
	}
	return zone.GraveyardRoomID, true
}

// Broadcast delivers the event to the sink, if one is wired. Broadcasting
// into an unwired provider is a silent no-op so boot ordering stays simple.
func (p *InMemoryProvider) Broadcast(roomID string, ev Event) {
	p.mu.RLock()
	sink := p.sink
	p.mu.RUnlock()

	if sink != nil {
		sink.Deliver(roomID, ev)
	}
}
