package world

import (
	"sort"

	"tilecraft.ai/internal/protocol"
)

// buildObs assembles the full drawable snapshot for the current tick. Blocks
// are emitted in cell order so identical states serialize identically.
func (w *World) buildObs() protocol.ObsMsg {
	pos := w.player.body.Position()
	obs := protocol.ObsMsg{
		Type:            protocol.TypeObs,
		ProtocolVersion: protocol.Version,
		Tick:            w.tick.Load(),
		Player: protocol.PlayerView{
			X:      pos.X,
			Y:      pos.Y,
			Health: w.player.Health(),
			Food:   w.player.Food(),
			Dead:   w.player.Dead(),
		},
		Hotbar:    w.buildHotbarView(),
		Inventory: gridSlots(w.inventory),
		Blocks:    w.buildBlockViews(),
		Things:    w.buildThingViews(),
		Events:    w.events,
	}
	if w.activeCrafting != "" {
		if c, ok := w.crafters[w.activeCrafting]; ok {
			rows, cols := c.Size()
			obs.Crafting = &protocol.CraftView{Surface: w.activeCrafting, Rows: rows, Cols: cols}
		}
	}
	return obs
}

func (w *World) buildHotbarView() protocol.HotbarView {
	_, sel := w.hotbar.Selected()
	return protocol.HotbarView{
		Slots:    gridSlots(&w.hotbar.Grid),
		Selected: sel,
	}
}

// gridSlots flattens occupied slots in row-major order; empty slots are
// omitted and implied by absence.
func gridSlots(g *Grid) []protocol.SlotView {
	var out []protocol.SlotView
	g.Each(func(row, col int, s *Stack) {
		if s == nil {
			return
		}
		view := protocol.SlotView{
			Row:      row,
			Col:      col,
			Item:     s.Item().ID(),
			Quantity: s.Quantity(),
		}
		if s.Item().MaxDurability() > 0 {
			view.Durability = s.Item().Durability()
			view.MaxDurability = s.Item().MaxDurability()
		}
		out = append(out, view)
	})
	return out
}

func (w *World) buildBlockViews() []protocol.BlockView {
	cells := make([]Cell, 0, len(w.blocks))
	for c := range w.blocks {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})

	out := make([]protocol.BlockView, 0, len(cells))
	for _, c := range cells {
		b := w.blocks[c]
		out = append(out, protocol.BlockView{
			Cell:     [2]int{c.X, c.Y},
			ID:       b.ID(),
			Progress: b.Progress(),
		})
	}
	return out
}

func (w *World) buildThingViews() []protocol.ThingView {
	out := make([]protocol.ThingView, 0, len(w.things))
	for _, t := range w.things {
		body := t.Body()
		p := body.Position()
		bw, bh := body.Size()
		view := protocol.ThingView{
			Kind: t.Kind().String(),
			X:    p.X,
			Y:    p.Y,
			W:    bw,
			H:    bh,
		}
		switch v := t.(type) {
		case *Player:
			view.ID = v.id
			view.Health = v.Health()
		case *Mob:
			view.ID = v.id
			view.Health = v.Health()
		case *DroppedItem:
			view.ID = v.id
			view.Item = v.item.ID()
		case *BoundaryWall:
			view.ID = v.id
		}
		out = append(out, view)
	}
	return out
}
