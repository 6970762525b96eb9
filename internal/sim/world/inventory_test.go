package world

import "testing"

func TestGrid_AddItemMergesBeforeEmpty(t *testing.T) {
	w := newTestWorld(t)
	g := NewGrid(2, 2)
	g.Set(1, 1, NewStack(mustItem(t, w, "dirt"), 3))

	if !g.AddItem(mustItem(t, w, "dirt"), 64) {
		t.Fatal("add failed")
	}
	if got := g.At(1, 1).Quantity(); got != 4 {
		t.Fatalf("merged quantity = %d, want 4", got)
	}
	if g.At(0, 0) != nil {
		t.Fatal("item landed in an empty slot instead of merging")
	}
}

func TestGrid_AddItemFullStackOpensNewSlot(t *testing.T) {
	w := newTestWorld(t)
	g := NewGrid(1, 2)
	g.Set(0, 0, NewStack(mustItem(t, w, "dirt"), 64))

	if !g.AddItem(mustItem(t, w, "dirt"), 64) {
		t.Fatal("add failed")
	}
	if got := g.At(0, 1); got == nil || got.Quantity() != 1 {
		t.Fatalf("overflow slot = %v", got)
	}
}

func TestGrid_AddItemNonStackable(t *testing.T) {
	w := newTestWorld(t)
	g := NewGrid(1, 2)
	g.Set(0, 0, NewStack(mustItem(t, w, "wood_pickaxe"), 1))

	if !g.AddItem(mustItem(t, w, "wood_pickaxe"), 64) {
		t.Fatal("add failed")
	}
	if got := g.At(0, 1); got == nil || got.Quantity() != 1 {
		t.Fatalf("tool slot = %v", got)
	}
	if got := g.At(0, 0).Quantity(); got != 1 {
		t.Fatalf("tools merged: %d", got)
	}
}

func TestGrid_AddItemFull(t *testing.T) {
	w := newTestWorld(t)
	g := NewGrid(1, 1)
	g.Set(0, 0, NewStack(mustItem(t, w, "stick"), 64))

	if g.AddItem(mustItem(t, w, "stick"), 64) {
		t.Fatal("add to a full grid succeeded")
	}
}

func TestGrid_AddStackRemainder(t *testing.T) {
	w := newTestWorld(t)
	g := NewGrid(1, 1)
	g.Set(0, 0, NewStack(mustItem(t, w, "dirt"), 62))

	rest := g.AddStack(NewStack(mustItem(t, w, "dirt"), 5), 64)
	if rest != 3 {
		t.Fatalf("remainder = %d, want 3", rest)
	}
	if got := g.At(0, 0).Quantity(); got != 64 {
		t.Fatalf("stack = %d, want 64", got)
	}
}

func TestGrid_SetZeroQuantityClears(t *testing.T) {
	w := newTestWorld(t)
	g := NewGrid(1, 1)
	s := NewStack(mustItem(t, w, "dirt"), 1)
	s.Subtract(1)
	g.Set(0, 0, s)
	if g.At(0, 0) != nil {
		t.Fatal("zero-quantity stack stored")
	}
}

func TestSelectableGrid_SelectIgnoresOutOfBounds(t *testing.T) {
	g := NewSelectableGrid(1, 10)
	g.Select(0, 4)
	g.Select(0, 10)
	g.Select(-1, 0)
	if r, c := g.Selected(); r != 0 || c != 4 {
		t.Fatalf("selected = (%d,%d), want (0,4)", r, c)
	}
}
