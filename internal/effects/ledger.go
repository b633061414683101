package effects

import (
	"github.com/thornvale/mud/internal/game"
	"github.com/thornvale/mud/internal/uuid"
)

// Instance is one in-flight continuous effect.
type Instance struct {
	ID        string
	Source    game.Ref
	Effect    Effect
	Remaining int
}

// Ledger tracks a session's in-flight continuous effects in application
// order. It is owned by a single session actor and needs no locking.
type Ledger struct {
	ids       uuid.Generator
	instances []*Instance
}

// NewLedger creates an empty ledger drawing ids from the given generator.
func NewLedger(ids uuid.Generator) *Ledger {
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}
	return &Ledger{ids: ids}
}

// Add registers a continuous effect with a fresh unique id and returns the
// new instance. Remaining starts at the effect's repetition count.
func (l *Ledger) Add(source game.Ref, eff Effect) *Instance {
	inst := &Instance{
		ID:        l.ids.New(),
		Source:    source,
		Effect:    eff,
		Remaining: eff.Count,
	}
	l.instances = append(l.instances, inst)
	return inst
}

// Get looks up an instance without consuming a repetition.
func (l *Ledger) Get(id string) (*Instance, bool) {
	for _, inst := range l.instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return nil, false
}

// Fire consumes one repetition of the identified effect. It returns the
// instance, whether repetitions remain after this one, and whether the id was
// present at all. Firing an unknown id is a no-op: the effect may already
// have been cleared by a lethal earlier tick.
func (l *Ledger) Fire(id string) (inst *Instance, remaining, ok bool) {
	for i, candidate := range l.instances {
		if candidate.ID != id {
			continue
		}

		candidate.Remaining--
		if candidate.Remaining <= 0 {
			l.instances = append(l.instances[:i], l.instances[i+1:]...)
			return candidate, false, true
		}
		return candidate, true, true
	}
	return nil, false, false
}

// Remove drops an instance without firing it.
func (l *Ledger) Remove(id string) bool {
	for i, inst := range l.instances {
		if inst.ID == id {
			l.instances = append(l.instances[:i], l.instances[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every instance. Used when the owner dies.
func (l *Ledger) Clear() {
	l.instances = nil
}

// Len reports the number of in-flight effects.
func (l *Ledger) Len() int {
	return len(l.instances)
}
