package world

import "tilecraft.ai/internal/sim/physics"

// ThingKind is the closed visual-descriptor enum the snapshot builder and
// renderer dispatch on. New entity types get a new tag here rather than a
// runtime type lookup table.
type ThingKind int

const (
	KindPlayer ThingKind = iota
	KindBird
	KindSheep
	KindBee
	KindDroppedItem
	KindWall
	KindBlock
)

func (k ThingKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBird:
		return "bird"
	case KindSheep:
		return "sheep"
	case KindBee:
		return "bee"
	case KindDroppedItem:
		return "dropped_item"
	case KindWall:
		return "wall"
	case KindBlock:
		return "block"
	}
	return "undefined"
}

// Physical is anything with a body in the space: blocks and free entities.
type Physical interface {
	Body() *physics.Body
	Kind() ThingKind
}

// PhysicalThing is a free entity advanced by the step scheduler each tick.
type PhysicalThing interface {
	Physical
	Step(dt float64, ctx stepContext)
}

// Usable things react to a right-click with an effect (crafting tables).
type Usable interface {
	CanUse() bool
	Use() (Effect, bool)
}

// stepContext exposes read access to the world and player to entity steps.
type stepContext struct {
	world  *World
	player *Player
}

type BoundaryWall struct {
	id   string
	body *physics.Body
}

func (b *BoundaryWall) Body() *physics.Body          { return b.body }
func (b *BoundaryWall) Kind() ThingKind              { return KindWall }
func (b *BoundaryWall) Step(dt float64, _ stepContext) {}

// DroppedItem wraps an item lying in the world. It falls under gravity,
// can be picked up by the player, and despawns after its lifetime.
type DroppedItem struct {
	id   string
	item *Item
	body *physics.Body

	age          uint64
	despawnAfter uint64
	expired      bool
}

func (d *DroppedItem) Body() *physics.Body { return d.body }
func (d *DroppedItem) Kind() ThingKind     { return KindDroppedItem }
func (d *DroppedItem) Item() *Item         { return d.item }

func (d *DroppedItem) Step(dt float64, _ stepContext) {
	d.age++
	if d.despawnAfter > 0 && d.age >= d.despawnAfter {
		d.expired = true
	}
}
