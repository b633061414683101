// Package world defines the session engine's view of rooms and zones and the
// events that fan into sessions. The engine treats the provider as
// authoritative; a real deployment may back it with another service.
package world

import "context"

//go:generate mockgen -destination=mock/mock_provider.go -package=mockworld github.com/thornvale/mud/internal/world Provider

// Room is a snapshot of a room's navigable state.
type Room struct {
	ID          string            `json:"id"`
	ZoneID      string            `json:"zone_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"` // direction -> room id
}

// Zone groups rooms and configures the resurrection destination.
type Zone struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	GraveyardRoomID string `json:"graveyard_room_id,omitempty"`
}

// Provider is the world collaborator queried by session actors.
type Provider interface {
	// Room returns the room snapshot for the given id.
	Room(ctx context.Context, id string) (*Room, error)

	// Graveyard returns the configured resurrection room for a zone, or
	// false if the zone has none.
	Graveyard(ctx context.Context, zoneID string) (string, bool)

	// Broadcast fans an event out to every session present in the room.
	// Fire-and-forget: the caller never waits on delivery.
	Broadcast(roomID string, ev Event)
}

// Sink receives broadcast events for delivery to sessions. The session
// registry provides the production implementation; it is injected here to
// keep the dependency pointing from sessions to the world, not back.
type Sink interface {
	Deliver(roomID string, ev Event)
}
