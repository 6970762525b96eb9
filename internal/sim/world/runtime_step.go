package world

import (
	"fmt"

	"tilecraft.ai/internal/protocol"
	"tilecraft.ai/internal/sim/encoding"
)

// step advances the simulation by one tick. Order matters: entities move
// first, the space settles their motion and fires collision callbacks, and
// only then do the player's queued intents apply, so every intent observes
// the settled world. The tick ends with the journal write and the OBS frame.
func (w *World) step(pending []ActionEnvelope) {
	dt := 1.0 / float64(w.tune.TickRateHz)
	ctx := stepContext{world: w, player: w.player}

	// Snapshot: steps may add or remove things.
	snapshot := make([]PhysicalThing, len(w.things))
	copy(snapshot, w.things)
	for _, t := range snapshot {
		if t.Body().InSpace() {
			t.Step(dt, ctx)
		}
	}

	w.space.Step(dt)

	for _, env := range pending {
		w.applyAct(env.Act)
	}

	w.sweepExpiredItems()

	if w.player.Dead() {
		w.addEvent(protocol.Event{"type": "PLAYER_DEAD"})
		if err := w.reset(); err != nil && w.logger != nil {
			w.logger.Printf("reset after death: %v", err)
		}
	}

	w.writeJournal(len(pending))
	w.sendObs(w.buildObs())
	w.events = nil
	w.tick.Add(1)
}

// sweepExpiredItems removes dropped items whose lifetime ran out this tick.
func (w *World) sweepExpiredItems() {
	var expired []*DroppedItem
	for _, t := range w.things {
		if d, ok := t.(*DroppedItem); ok && d.expired {
			expired = append(expired, d)
		}
	}
	for _, d := range expired {
		w.removeThing(d)
		w.addEvent(protocol.Event{"type": "ITEM_DESPAWN", "item": d.item.ID()})
	}
}

func (w *World) writeJournal(intents int) {
	if w.journal == nil {
		return
	}
	pos := w.player.body.Position()
	entry := TickEntry{
		Tick:    w.tick.Load(),
		Intents: intents,
		Events:  w.events,
		Player: map[string]string{
			"pos":    fmt.Sprintf("%.1f,%.1f", pos.X, pos.Y),
			"health": fmt.Sprintf("%.1f", w.player.Health()),
			"food":   fmt.Sprintf("%.1f", w.player.Food()),
		},
	}
	if w.terrainDirty {
		entry.Terrain = w.terrainSnapshot()
		w.terrainDirty = false
	}
	if err := w.journal.WriteTick(entry); err != nil && w.logger != nil {
		w.logger.Printf("journal tick %d: %v", entry.Tick, err)
	}
}

// terrainSnapshot flattens the block grid row-major against a palette built
// from the block catalog's id order. Palette index 0 is the empty cell.
func (w *World) terrainSnapshot() *TerrainEntry {
	palette := make([]string, 0, len(w.cats.Blocks.IDs)+1)
	palette = append(palette, "")
	index := map[string]uint16{}
	for _, id := range w.cats.Blocks.IDs {
		index[id] = uint16(len(palette))
		palette = append(palette, id)
	}

	cells := make([]uint16, 0, w.tune.GridWidth*w.tune.GridHeight)
	for y := 0; y < w.tune.GridHeight; y++ {
		for x := 0; x < w.tune.GridWidth; x++ {
			if b, ok := w.blocks[Cell{x, y}]; ok {
				cells = append(cells, index[b.ID()])
			} else {
				cells = append(cells, 0)
			}
		}
	}
	return &TerrainEntry{
		Width:   w.tune.GridWidth,
		Height:  w.tune.GridHeight,
		Palette: palette,
		Cells:   encoding.EncodeRLE(cells),
	}
}
