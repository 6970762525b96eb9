package world

import (
	"fmt"

	"tilecraft.ai/internal/sim/catalogs"
)

const defaultAttackRange = 10 // cells

// Item is one item instance. Definitions come from the item catalog; tools
// additionally carry mutable durability.
type Item struct {
	def        catalogs.ItemDef
	durability int
}

// createItem is the item factory: total over the catalog's closed id set,
// lookup error for anything else.
func (w *World) createItem(id string) (*Item, error) {
	def, ok := w.cats.Items.Defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: no item defined for %q", errUnknownID, id)
	}
	return &Item{def: def, durability: def.Durability}, nil
}

func (it *Item) ID() string       { return it.def.ID }
func (it *Item) ItemKind() string { return it.def.Kind }
func (it *Item) Stackable() bool  { return it.def.Stackable }

// ToolType is the break-table key for this item; empty for non-attackers.
func (it *Item) ToolType() string { return it.def.ToolType }

func (it *Item) Durability() int    { return it.durability }
func (it *Item) MaxDurability() int { return it.def.Durability }

// Strength is the food/health recovery granted when a food item is used.
func (it *Item) Strength() float64 { return it.def.Strength }

// Damage dealt per hit when attacking a mob.
func (it *Item) Damage() float64 { return it.def.Damage }

// AttackRange is the reach of this item in cells.
func (it *Item) AttackRange() float64 {
	if it.def.AttackRange > 0 {
		return float64(it.def.AttackRange)
	}
	return defaultAttackRange
}

// CanAttack reports whether the item can be the effective item of an attack.
// Hands always can; tools can while durability remains.
func (it *Item) CanAttack() bool {
	switch it.def.Kind {
	case catalogs.ItemHand:
		return true
	case catalogs.ItemTool:
		return it.durability > 0
	}
	return false
}

// Attack spends the item on one attack. An unsuccessful attack costs a tool
// exactly 1 durability, clamped at zero; a successful one costs nothing.
// Hands never wear.
func (it *Item) Attack(successful bool) {
	if it.def.Kind != catalogs.ItemTool || successful {
		return
	}
	if it.durability > 0 {
		it.durability--
	}
}

// Place returns the drop effects of right-click placing this item: block
// items place their block form, food items yield a stat effect, everything
// else places nothing.
func (it *Item) Place() []Drop {
	switch it.def.Kind {
	case catalogs.ItemBlock:
		return []Drop{{Category: "block", ID: it.def.PlaceAs}}
	case catalogs.ItemFood:
		return []Drop{{Category: "effect", Effect: Effect{Kind: "food", Strength: it.def.Strength}}}
	}
	return nil
}

// Stack pairs an item with a positive quantity. A stack belongs to exactly
// one grid slot at a time; moving it between slots transfers ownership.
type Stack struct {
	item     *Item
	quantity int
}

func NewStack(item *Item, quantity int) *Stack {
	return &Stack{item: item, quantity: quantity}
}

func (s *Stack) Item() *Item   { return s.item }
func (s *Stack) Quantity() int { return s.quantity }

func (s *Stack) Add(n int)      { s.quantity += n }
func (s *Stack) Subtract(n int) {
	s.quantity -= n
	if s.quantity < 0 {
		s.quantity = 0
	}
}
