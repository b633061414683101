package world

// Default development world: a small starter zone with a graveyard, plus a
// cave zone that deliberately has none (players who die there stay down, see
// DESIGN.md).

// DefaultZones returns the built-in zones.
func DefaultZones() []*Zone {
	return []*Zone{
		{ID: "thornvale", Name: "Thornvale Village", GraveyardRoomID: "chapel-yard"},
		{ID: "caves", Name: "The Sunless Caves"},
	}
}

// DefaultRooms returns the built-in rooms.
func DefaultRooms() []*Room {
	return []*Room{
		{
			ID:          "village-square",
			ZoneID:      "thornvale",
			Name:        "Thornvale Village Square",
			Description: "A worn cobblestone square ringed by timber houses. A fountain gurgles in the middle.",
			Exits:       map[string]string{"north": "north-road", "east": "chapel-yard", "down": "cave-mouth"},
		},
		{
			ID:          "north-road",
			ZoneID:      "thornvale",
			Name:        "The North Road",
			Description: "A rutted dirt road leading away from the village.",
			Exits:       map[string]string{"south": "village-square", "north": "old-bridge"},
		},
		{
			ID:          "old-bridge",
			ZoneID:      "thornvale",
			Name:        "The Old Bridge",
			Description: "Mossy planks span a slow green river.",
			Exits:       map[string]string{"south": "north-road"},
		},
		{
			ID:          "chapel-yard",
			ZoneID:      "thornvale",
			Name:        "Chapel Yard",
			Description: "Leaning headstones and a small stone chapel. The air is still here.",
			Exits:       map[string]string{"west": "village-square"},
		},
		{
			ID:          "cave-mouth",
			ZoneID:      "caves",
			Name:        "Mouth of the Sunless Caves",
			Description: "Cold air breathes out of the dark.",
			Exits:       map[string]string{"up": "village-square", "north": "cave-gallery"},
		},
		{
			ID:          "cave-gallery",
			ZoneID:      "caves",
			Name:        "Dripping Gallery",
			Description: "Stalactites glisten overhead. Something skitters in the black.",
			Exits:       map[string]string{"south": "cave-mouth"},
		},
	}
}

// DefaultStartRoomID is where new characters begin.
const DefaultStartRoomID = "village-square"
