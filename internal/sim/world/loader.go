package world

// The fixed seed layout: a sloped dirt/stone ground slab, one tree, one
// trick-candle block, and a starter population of mobs. Block kinds inside
// the ground are drawn from the world RNG, so a given seed always yields
// the same terrain.

type startStack struct {
	item  string
	count int
}

func (w *World) loadStartLayout() error {
	var ground []Cell
	for x := 0; x < w.tune.GridWidth; x++ {
		for y := 0; y < w.tune.GridHeight; y++ {
			if x < 22 {
				if y <= 8 {
					continue
				}
			} else if x+y < 30 {
				continue
			}
			ground = append(ground, Cell{x, y})
		}
	}

	// Weighted dirt/stone mix, 100:30.
	for _, c := range ground {
		id := "dirt"
		if w.rng.Float64() >= 100.0/130.0 {
			id = "stone"
		}
		if err := w.placeBlock(id, c); err != nil {
			return err
		}
	}

	trunks := []Cell{{3, 8}, {3, 7}, {3, 6}, {3, 5}}
	for _, c := range trunks {
		if err := w.placeBlock("wood", c); err != nil {
			return err
		}
	}
	leaves := []Cell{{4, 3}, {3, 3}, {2, 3}, {4, 2}, {3, 2}, {2, 2}, {4, 4}, {3, 4}, {2, 4}}
	for _, c := range leaves {
		if err := w.placeBlock("leaf", c); err != nil {
			return err
		}
	}

	if err := w.placeBlock("mayhem", Cell{14, 8}); err != nil {
		return err
	}

	starterMobs := []struct {
		species string
		x, y    float64
	}{
		{"bird", 400, 100},
		{"sheep", 500, 200},
		{"bee", 150, 100},
	}
	for _, m := range starterMobs {
		if _, err := w.spawnMob(m.species, m.x, m.y); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) placeBlock(id string, c Cell) error {
	b, err := w.createBlock(id)
	if err != nil {
		return err
	}
	return w.addBlockToGrid(b, c)
}

func (w *World) loadStartContainers() error {
	w.hotbar = NewSelectableGrid(1, 10)
	w.hotbar.Select(0, 0)

	startingHotbar := []startStack{
		{"dirt", 20},
		{"apple", 20},
		{"stone_pickaxe", 1},
		{"diamond", 20},
		{"wool", 20},
		{"furnace", 1},
		{"honey", 1},
		{"hive", 1},
		{"stick", 4},
		{"wood", 10},
	}
	for i, s := range startingHotbar {
		it, err := w.createItem(s.item)
		if err != nil {
			return err
		}
		w.hotbar.Set(0, i, NewStack(it, s.count))
	}

	w.inventory = NewGrid(3, 10)
	startingInventory := []struct {
		row, col int
		stack    startStack
	}{
		{1, 5, startStack{"dirt", 10}},
		{0, 2, startStack{"wood", 10}},
	}
	for _, s := range startingInventory {
		it, err := w.createItem(s.stack.item)
		if err != nil {
			return err
		}
		w.inventory.Set(s.row, s.col, NewStack(it, s.stack.count))
	}
	return nil
}
