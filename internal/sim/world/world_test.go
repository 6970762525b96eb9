package world

import (
	"path/filepath"
	"testing"

	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/tuning"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	cats, err := catalogs.Load(filepath.Join("..", "..", "..", "configs"))
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	w, err := New(WorldConfig{ID: "test", Seed: 7}, tuning.Defaults(), cats, nil)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func mustItem(t *testing.T, w *World, id string) *Item {
	t.Helper()
	it, err := w.createItem(id)
	if err != nil {
		t.Fatalf("create item %s: %v", id, err)
	}
	return it
}

func mustPlaceBlock(t *testing.T, w *World, id string, c Cell) *Block {
	t.Helper()
	b, err := w.createBlock(id)
	if err != nil {
		t.Fatalf("create block %s: %v", id, err)
	}
	if err := w.addBlockToGrid(b, c); err != nil {
		t.Fatalf("place block %s at %v: %v", id, c, err)
	}
	return b
}

func findMob(t *testing.T, w *World, species string) *Mob {
	t.Helper()
	for _, thing := range w.things {
		if m, ok := thing.(*Mob); ok && m.species == species {
			return m
		}
	}
	t.Fatalf("no %s in world", species)
	return nil
}

func hasEvent(w *World, eventType string) bool {
	for _, e := range w.events {
		if e["type"] == eventType {
			return true
		}
	}
	return false
}

func TestNew_StartLayout(t *testing.T) {
	w := newTestWorld(t)

	if w.BlockAt(w.GridToXYCentre(Cell{3, 7})) == nil {
		t.Fatal("tree trunk missing at (3,7)")
	}
	if b := w.blocks[Cell{14, 8}]; b == nil || b.ID() != "mayhem" {
		t.Fatalf("trick block at (14,8) = %v", b)
	}
	if b := w.blocks[Cell{3, 2}]; b == nil || b.ID() != "leaf" {
		t.Fatalf("leaf at (3,2) = %v", b)
	}
	for x := 0; x < w.tune.GridWidth; x++ {
		for y := 9; y < w.tune.GridHeight; y++ {
			if x < 22 {
				if b := w.blocks[Cell{x, y}]; b == nil {
					t.Fatalf("ground missing at (%d,%d)", x, y)
				}
			}
		}
	}

	if got := w.hotbar.At(0, 0); got == nil || got.Item().ID() != "dirt" || got.Quantity() != 20 {
		t.Fatalf("hotbar slot 0 = %v", got)
	}
	if got := w.inventory.At(1, 5); got == nil || got.Item().ID() != "dirt" || got.Quantity() != 10 {
		t.Fatalf("inventory (1,5) = %v", got)
	}

	for _, species := range []string{"bird", "sheep", "bee"} {
		findMob(t, w, species)
	}
}

func TestNew_SameSeedSameTerrain(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)

	if len(a.blocks) != len(b.blocks) {
		t.Fatalf("block counts differ: %d vs %d", len(a.blocks), len(b.blocks))
	}
	for cell, ab := range a.blocks {
		bb := b.blocks[cell]
		if bb == nil || bb.ID() != ab.ID() {
			t.Fatalf("terrain differs at %v: %s vs %v", cell, ab.ID(), bb)
		}
	}
}

func TestReset_RestoresSeedLayout(t *testing.T) {
	w := newTestWorld(t)
	fresh := newTestWorld(t)

	// Disturb the world, then start a new game.
	b := w.blocks[Cell{5, 10}]
	w.removeBlock(b)
	w.player.AddHealth(-10)
	if err := w.reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if !hasEvent(w, "NEW_GAME") {
		t.Fatal("missing NEW_GAME event")
	}
	if w.player.Health() != w.tune.Player.MaxHealth {
		t.Fatalf("health after reset = %v", w.player.Health())
	}
	for cell, fb := range fresh.blocks {
		wb := w.blocks[cell]
		if wb == nil || wb.ID() != fb.ID() {
			t.Fatalf("terrain differs at %v after reset", cell)
		}
	}
}

func TestSpawnMob_UnknownSpecies(t *testing.T) {
	w := newTestWorld(t)
	if _, err := w.spawnMob("dragon", 100, 100); err == nil {
		t.Fatal("want error for unknown species")
	}
}

func TestXYToGrid_RoundTrip(t *testing.T) {
	w := newTestWorld(t)
	c := Cell{10, 4}
	x, y := w.GridToXYCentre(c)
	if got := w.XYToGrid(x, y); got != c {
		t.Fatalf("round trip %v -> (%v,%v) -> %v", c, x, y, got)
	}
}

func TestThingAt_SkipsPlayerAndWalls(t *testing.T) {
	w := newTestWorld(t)
	pos := w.player.body.Position()
	if got := w.ThingAt(pos.X, pos.Y); got != nil {
		t.Fatalf("ThingAt over player = %v, want nil", got)
	}

	m := findMob(t, w, "sheep")
	mp := m.body.Position()
	if got := w.ThingAt(mp.X, mp.Y); got != m {
		t.Fatalf("ThingAt over sheep = %v", got)
	}
}

func TestHandlePlayerCollideItem_PickupMerges(t *testing.T) {
	w := newTestWorld(t)
	d := w.spawnDroppedItem(mustItem(t, w, "wood"), 100, 100)

	before := w.hotbar.At(0, 9).Quantity() // starting wood stack
	solid := w.handlePlayerCollideItem(w.player.body, d.body)

	if solid {
		t.Fatal("pickup should void the collision")
	}
	if got := w.hotbar.At(0, 9).Quantity(); got != before+1 {
		t.Fatalf("wood stack = %d, want %d", got, before+1)
	}
	if d.body.InSpace() {
		t.Fatal("picked-up item still in space")
	}
	if !hasEvent(w, "PICKUP") {
		t.Fatal("missing PICKUP event")
	}
}

func TestHandlePlayerCollideItem_BothFullStaysSolid(t *testing.T) {
	w := newTestWorld(t)

	// Tools never merge, so a full grid cannot take one.
	w.inventory.Each(func(row, col int, s *Stack) {
		if s == nil {
			w.inventory.Set(row, col, NewStack(mustItem(t, w, "stick"), w.tune.MaxStack))
		}
	})
	d := w.spawnDroppedItem(mustItem(t, w, "wood_pickaxe"), 100, 100)

	solid := w.handlePlayerCollideItem(w.player.body, d.body)
	if !solid {
		t.Fatal("full containers should keep the item solid")
	}
	if !d.body.InSpace() {
		t.Fatal("item should remain in the world")
	}
	if !hasEvent(w, "PICKUP_FAIL") {
		t.Fatal("missing PICKUP_FAIL event")
	}
}

func TestStep_ExpiredItemDespawns(t *testing.T) {
	w := newTestWorld(t)
	d := w.spawnDroppedItem(mustItem(t, w, "stone"), 100, 100)
	d.despawnAfter = 2

	for i := 0; i < 3; i++ {
		w.step(nil)
	}
	if d.body.InSpace() {
		t.Fatal("expired item still in world")
	}
}
