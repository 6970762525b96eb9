package world

import (
	"math"

	"tilecraft.ai/internal/protocol"
)

// holding resolves the active hotbar item and the effective item used for
// attack calculations: the active item when it can attack, bare hands
// otherwise.
func (w *World) holding() (active, effective *Item) {
	active = w.hands
	if s := w.hotbar.SelectedStack(); s != nil {
		active = s.Item()
	}
	effective = active
	if !active.CanAttack() {
		effective = w.hands
	}
	return active, effective
}

// positionsInRange reports whether two pixel positions are within rangePx.
func positionsInRange(ax, ay, bx, by, rangePx float64) bool {
	return math.Hypot(ax-bx, ay-by) <= rangePx
}

// targetInRange checks the cursor against the active item's reach.
func (w *World) targetInRange(x, y float64) bool {
	active, _ := w.holding()
	rangePx := active.AttackRange() * w.CellExpanse()
	pos := w.player.body.Position()
	return positionsInRange(pos.X, pos.Y, x, y, rangePx)
}

// mineBlock resolves one mining attack on a block: progress, durability,
// the player's food/health cost, removal, and drop dispatch. Mined blocks
// are never resolved twice, so a completed break cannot double-drop.
func (w *World) mineBlock(b *Block) error {
	if b.Mined() {
		return nil
	}

	luck := w.rng.Float64()
	active, effective := w.holding()

	wasEffective, success := b.Mine(effective, active, luck)
	effective.Attack(success)

	if !b.Mined() {
		return nil
	}

	// Satiety is the fuel for breaking blocks: spend food while any
	// remains, health only after.
	if w.player.Food() > 0 {
		w.player.AddFood(-w.tune.Player.MineFoodCost)
	} else {
		w.player.AddHealth(-w.tune.Player.MineHealthCost)
	}

	origin := b.body.Position()
	cell := b.cell
	w.removeBlock(b)
	w.addEvent(protocol.Event{"type": "BLOCK_MINED", "block": b.ID(), "cell": [2]int{cell.X, cell.Y}})

	drops := b.Drops(luck, wasEffective)
	if len(drops) == 0 {
		return nil
	}
	return w.dispatchDrops(drops, origin, cell)
}

// attackMob resolves one melee hit on a mob. The hit is successful when it
// kills; like mining, an unsuccessful hit costs tool durability. Dead mobs
// are removed immediately and release their drops where they stood.
func (w *World) attackMob(m *Mob) error {
	_, effective := w.holding()

	m.Damage(effective.Damage())
	killed := m.Dead()
	effective.Attack(killed)

	if !killed {
		w.addEvent(protocol.Event{"type": "MOB_HIT", "mob": m.id, "species": m.species, "health": m.health})
		return nil
	}

	pos := m.body.Position()
	w.removeThing(m)
	w.addEvent(protocol.Event{"type": "MOB_DIED", "mob": m.id, "species": m.species})

	drops := m.Drops()
	if len(drops) == 0 {
		return nil
	}
	return w.dispatchDrops(drops, pos, w.XYToGrid(pos.X, pos.Y))
}
