package world

import (
	"fmt"

	"tilecraft.ai/internal/protocol"
)

// Effect kinds.
const (
	EffectCrafting = "crafting"
	EffectFood     = "food"
	EffectHealth   = "health"
)

// Effect is one tagged effect: a crafting-surface selection or a stat
// change. This is the single extension point for new effect kinds.
type Effect struct {
	Kind     string
	Surface  string  // crafting
	Strength float64 // food, health
}

// runEffect dispatches an effect to its handler. Stat effects honor their
// declared kind: a "health" effect heals health and a "food" effect feeds,
// each clamped at its maximum. (The previous behavior of redirecting to
// whichever stat was below max made "health" silently feed instead; the
// declared kind is authoritative now.) Unrecognized kinds are programmer
// errors and surface to the caller.
func (w *World) runEffect(e Effect) error {
	switch e.Kind {
	case EffectCrafting:
		c, ok := w.crafters[e.Surface]
		if !ok {
			return fmt.Errorf("%w for crafting surface %q", errUndefinedEffect, e.Surface)
		}
		w.activeCrafting = e.Surface
		rows, cols := c.Size()
		w.addEvent(protocol.Event{"type": "CRAFTING_OPEN", "surface": e.Surface, "rows": rows, "cols": cols})
	case EffectFood:
		w.player.AddFood(e.Strength)
		w.addEvent(protocol.Event{"type": "STAT_GAIN", "stat": EffectFood, "strength": e.Strength})
	case EffectHealth:
		w.player.AddHealth(e.Strength)
		w.addEvent(protocol.Event{"type": "STAT_GAIN", "stat": EffectHealth, "strength": e.Strength})
	default:
		return fmt.Errorf("%w for %q", errUndefinedEffect, e.Kind)
	}
	return nil
}
