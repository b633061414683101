package game

import "fmt"

// RefKind discriminates the closed set of entity reference kinds.
type RefKind string

const (
	RefPlayer    RefKind = "player"
	RefNonPlayer RefKind = "npc"
)

// Ref identifies an entity a session can act against. The zero value means
// "no reference".
type Ref struct {
	Kind RefKind `json:"kind"`
	ID   string  `json:"id"`
}

// PlayerRef returns a reference to a player character.
func PlayerRef(id string) Ref {
	return Ref{Kind: RefPlayer, ID: id}
}

// NonPlayerRef returns a reference to an NPC.
func NonPlayerRef(id string) Ref {
	return Ref{Kind: RefNonPlayer, ID: id}
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

func (r Ref) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}
