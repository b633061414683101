package session

import "github.com/thornvale/mud/internal/world"

// RegistrySink delivers world broadcasts into the mailboxes of every session
// present in the target room. It is the production implementation of
// world.Sink, wired into the provider at startup.
type RegistrySink struct {
	registry *Registry
}

// NewRegistrySink creates a sink over the given registry.
func NewRegistrySink(registry *Registry) *RegistrySink {
	if registry == nil {
		panic("registry is required")
	}
	return &RegistrySink{registry: registry}
}

// Deliver posts the event to every session whose character occupies the room.
// Fire-and-forget: delivery never blocks the broadcaster.
func (k *RegistrySink) Deliver(roomID string, ev world.Event) {
	k.registry.Each(func(s *Session) {
		if s.CurrentRoom() == roomID {
			s.Post(Notify{Event: ev})
		}
	})
}
