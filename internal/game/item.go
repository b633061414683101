package game

// Slot is an equipment position on a character.
type Slot string

const (
	SlotMainHand Slot = "main-hand"
	SlotOffHand  Slot = "off-hand"
	SlotBody     Slot = "body"
)

// Item is a carried or equipped object. Stackable items merge by key.
type Item struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Stackable bool   `json:"stackable,omitempty"`
}
