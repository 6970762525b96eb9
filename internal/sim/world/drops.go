package world

import (
	"fmt"

	"tilecraft.ai/internal/sim/physics"
)

// Drop is one abstract drop effect: something to create in the world after
// an action. The dispatcher understands "item" and "block"; the "effect"
// category appears only on the item-placement path and routes through the
// effect router instead.
type Drop struct {
	Category string
	ID       string
	Effect   Effect
}

// dispatchDrops converts an ordered list of drop effects into world
// mutations. Item drops spawn near origin on a 3-wide tiling advanced by
// drop index, each axis jittered independently, so simultaneous drops do
// not overlap exactly. Block drops reuse the mined block's cell, not the
// jittered coordinates. Any other category is a caller error and
// propagates.
func (w *World) dispatchDrops(drops []Drop, origin physics.Vec2, cell Cell) error {
	half := w.CellExpanse() / 2
	for i, d := range drops {
		switch d.Category {
		case "item":
			it, err := w.createItem(d.ID)
			if err != nil {
				return err
			}
			x := origin.X - half + 5 + float64(i%3)*11 + float64(w.rng.Intn(3))
			y := origin.Y - half + 5 + float64((i/3)%3)*11 + float64(w.rng.Intn(3))
			w.spawnDroppedItem(it, x, y)
		case "block":
			b, err := w.createBlock(d.ID)
			if err != nil {
				return err
			}
			if err := w.addBlockToGrid(b, cell); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w %q", errUnknownDropCategory, d.Category)
		}
	}
	return nil
}
