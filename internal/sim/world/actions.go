package world

import (
	"errors"
	"fmt"
	"math/rand"

	"tilecraft.ai/internal/protocol"
	"tilecraft.ai/internal/sim/physics"
)

// applyAct executes the player's queued intents in order. Each intent is a
// one-shot synchronous attempt; failures become events on the next OBS and
// never abort the tick.
func (w *World) applyAct(act protocol.ActMsg) {
	for _, in := range act.Intents {
		var err error
		switch in.Type {
		case protocol.IntentMove:
			w.movePlayer(in.Dx, in.Dy)
		case protocol.IntentJump:
			w.jump()
		case protocol.IntentSelect:
			if in.Slot < 0 || in.Slot >= w.hotbar.Cols() {
				w.addEvent(protocol.Event{"type": "ACT_FAIL", "intent": in.Type, "code": protocol.ErrBadRequest})
				continue
			}
			w.hotbar.Select(0, in.Slot)
		case protocol.IntentLeftClick:
			err = w.leftClick(in.X, in.Y)
		case protocol.IntentRightClick:
			err = w.rightClick(in.X, in.Y)
		case protocol.IntentCraft:
			err = w.craft(in.Grid)
		case protocol.IntentNewGame:
			err = w.reset()
		default:
			w.addEvent(protocol.Event{"type": "ACT_FAIL", "intent": in.Type, "code": protocol.ErrBadRequest})
		}
		if err != nil {
			w.addEvent(protocol.Event{"type": "ACT_FAIL", "intent": in.Type, "code": codeForError(err), "message": err.Error()})
			if w.logger != nil {
				w.logger.Printf("act %s: %v", in.Type, err)
			}
		}
	}
}

func codeForError(err error) string {
	switch {
	case errors.Is(err, errUnknownID):
		return protocol.ErrUnknownID
	case errors.Is(err, errUndefinedEffect):
		return protocol.ErrUndefinedEffect
	case errors.Is(err, errUnknownDropCategory):
		return protocol.ErrUnknownDrop
	case errors.Is(err, errUnimplemented):
		return protocol.ErrUnimplemented
	}
	return protocol.ErrInternal
}

// movePlayer applies a discrete directional impulse to the player.
func (w *World) movePlayer(dx, dy int) {
	v := w.player.body.Velocity()
	w.player.body.SetVelocity(physics.Vec2{
		X: v.X + float64(dx)*w.tune.Player.MoveImpulse,
		Y: v.Y + float64(dy)*w.tune.Player.MoveImpulse,
	})
}

// jump trades horizontal speed for an upward impulse.
func (w *World) jump() {
	v := w.player.body.Velocity()
	w.player.body.SetVelocity(physics.Vec2{
		X: v.X / w.tune.Player.JumpSlowdown,
		Y: v.Y - w.tune.Player.JumpImpulse,
	})
}

// leftClick mines the block under the cursor, or strikes a mob standing
// there. Out-of-reach clicks are reported, not errors.
func (w *World) leftClick(x, y float64) error {
	if !w.targetInRange(x, y) {
		w.addEvent(protocol.Event{"type": "ACT_FAIL", "intent": protocol.IntentLeftClick, "code": protocol.ErrOutOfRange})
		return nil
	}
	if b := w.BlockAt(x, y); b != nil {
		return w.mineBlock(b)
	}
	if t := w.ThingAt(x, y); t != nil {
		if m, ok := t.(*Mob); ok {
			return w.attackMob(m)
		}
	}
	return nil
}

// rightClick uses the thing under the cursor when it is usable, otherwise
// places the active hotbar item there.
func (w *World) rightClick(x, y float64) error {
	if t := w.ThingAt(x, y); t != nil {
		u, ok := t.(Usable)
		if !ok || !u.CanUse() {
			return nil
		}
		effect, ok := u.Use()
		if !ok {
			return nil
		}
		return w.runEffect(effect)
	}

	stack := w.hotbar.SelectedStack()
	if stack == nil {
		return nil
	}
	drops := stack.Item().Place()

	stack.Subtract(1)
	if stack.Quantity() == 0 {
		row, col := w.hotbar.Selected()
		w.hotbar.Set(row, col, nil)
	}

	if len(drops) == 0 {
		return nil
	}
	// Handling multiple placement drops would be somewhat finicky, so refuse.
	if len(drops) > 1 {
		return fmt.Errorf("%w: cannot place more than 1 drop", errUnimplemented)
	}

	d := drops[0]
	switch d.Category {
	case "block":
		if existing := w.BlockAt(x, y); existing != nil {
			return fmt.Errorf("%w: placing a block nearby when the target cell is full", errUnimplemented)
		}
		b, err := w.createBlock(d.ID)
		if err != nil {
			return err
		}
		return w.addBlockAt(b, x, y)
	case "effect":
		return w.runEffect(d.Effect)
	default:
		return fmt.Errorf("%w %q", errUnknownDropCategory, d.Category)
	}
}

// craft matches the working grid against the open crafting surface (the
// basic 2x2 when none is open) and places the result into the hotbar,
// falling back to the inventory.
func (w *World) craft(grid [][]string) error {
	surface := w.activeCrafting
	if surface == "" {
		surface = SurfaceBasic
	}
	crafter, ok := w.crafters[surface]
	if !ok {
		return fmt.Errorf("%w for crafting surface %q", errUndefinedEffect, surface)
	}

	resultItem, resultCount, ok := crafter.Match(grid)
	if !ok {
		w.addEvent(protocol.Event{"type": "CRAFT_NO_MATCH", "surface": surface})
		return nil
	}

	it, err := w.createItem(resultItem)
	if err != nil {
		return err
	}
	stack := NewStack(it, resultCount)
	if rest := w.hotbar.AddStack(stack, w.tune.MaxStack); rest > 0 {
		if rest = w.inventory.AddStack(stack, w.tune.MaxStack); rest > 0 {
			w.addEvent(protocol.Event{"type": "CRAFT_OVERFLOW", "item": resultItem, "count": rest, "code": protocol.ErrContainersFull})
		}
	}
	w.addEvent(protocol.Event{"type": "CRAFT_RESULT", "surface": surface, "item": resultItem, "count": resultCount})
	return nil
}

// reset tears the world down and rebuilds the fixed seed layout, a fresh
// player, and the starting containers. The layout RNG is reseeded so a new
// game is identical for a given seed.
func (w *World) reset() error {
	w.rng = rand.New(rand.NewSource(w.cfg.Seed))
	if err := w.buildWorld(); err != nil {
		return err
	}
	w.addEvent(protocol.Event{"type": "NEW_GAME"})
	return nil
}
