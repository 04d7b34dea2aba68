package host

// Types describing what the in-game shim forwards to us. These are plain
// data carriers; all interpretation happens in the classifier and ledger.

// ==========================================
// 1. DROP EVENTS
// ==========================================

// DropRequest mirrors one entry of the host's in-flight dropped-pickup
// request list. Each request carries the actor that produced the drop and
// the set of balances it may roll.
type DropRequest struct {
	// Class path of the actor the drop came from. Empty when the host
	// couldn't resolve one (the request is then ignored).
	ActorClass string `json:"actor_class"`

	// All balances this request may produce. These are always root
	// balances, never expanded ones.
	Balances []string `json:"balances"`

	// Extra item pool attached to the actor's balance component, if any.
	ExtraItemPool *string `json:"extra_item_pool,omitempty"`
}

// PickupCreated fires when an item pickup is constructed in the world.
type PickupCreated struct {
	// Stable identity of this pickup instance, valid until the next
	// world change.
	InstanceID string `json:"instance_id"`

	// Leaf name of the pickup's inventory category (e.g. "Ammo").
	Category string `json:"category"`

	// Root balance path of the item.
	Balance string `json:"balance"`

	// Part paths on the item, used to resolve expandable balances.
	Parts []string `json:"parts,omitempty"`

	// Snapshot of the host's in-flight drop requests at construction
	// time, in host iteration order.
	Requests []DropRequest `json:"requests,omitempty"`
}

// LookedAt fires when the player looks at a pickup. It fires for both the
// small type icon and the full item card; Distance tells them apart.
type LookedAt struct {
	InstanceID string  `json:"instance_id"`
	Distance   float64 `json:"distance"`
}

// WorldChanged fires on any level transition. Every pickup instance from
// the previous world is invalid afterwards.
type WorldChanged struct {
	WorldName string `json:"world_name"`
}

// ==========================================
// 2. PROGRESSION EVENTS
// ==========================================

// MissionComplete fires once per mission turn-in.
type MissionComplete struct {
	MissionClass string `json:"mission_class"`
}

// SaveQuit fires when the player answers the quit menu. Choice is the raw
// menu choice id; "None" means the menu was cancelled.
type SaveQuit struct {
	Choice  string `json:"choice"`
	Map     string `json:"map"`
	Station string `json:"station,omitempty"`
}
