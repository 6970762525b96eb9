package world

// Grid is a fixed-size 2D container of stacks. Empty slots are nil.
type Grid struct {
	rows, cols int
	cells      [][]*Stack
}

func NewGrid(rows, cols int) *Grid {
	cells := make([][]*Stack, rows)
	for r := range cells {
		cells[r] = make([]*Stack, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) At(row, col int) *Stack {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return g.cells[row][col]
}

// Set stores a stack in a slot, taking ownership. A nil stack or a stack
// with zero quantity clears the slot.
func (g *Grid) Set(row, col int, s *Stack) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	if s != nil && s.Quantity() == 0 {
		s = nil
	}
	g.cells[row][col] = s
}

// AddItem adds one item: first merged into an existing stack of the same
// stackable item with room, else into the first empty slot (row-major).
// Reports false when the grid is full.
func (g *Grid) AddItem(it *Item, maxStack int) bool {
	if it.Stackable() {
		for r := 0; r < g.rows; r++ {
			for c := 0; c < g.cols; c++ {
				s := g.cells[r][c]
				if s != nil && s.Item().ID() == it.ID() && s.Quantity() < maxStack {
					s.Add(1)
					return true
				}
			}
		}
	}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c] == nil {
				g.cells[r][c] = NewStack(it, 1)
				return true
			}
		}
	}
	return false
}

// AddStack adds a whole stack by repeated AddItem merging; the remainder
// that did not fit is reported.
func (g *Grid) AddStack(s *Stack, maxStack int) (remaining int) {
	for s.Quantity() > 0 {
		if !g.AddItem(s.Item(), maxStack) {
			return s.Quantity()
		}
		s.Subtract(1)
	}
	return 0
}

// Each visits every slot in row-major order.
func (g *Grid) Each(fn func(row, col int, s *Stack)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			fn(r, c, g.cells[r][c])
		}
	}
}

// SelectableGrid is a grid with a single selected cell: the active hotbar
// slot.
type SelectableGrid struct {
	Grid
	selRow, selCol int
}

func NewSelectableGrid(rows, cols int) *SelectableGrid {
	g := NewGrid(rows, cols)
	return &SelectableGrid{Grid: *g}
}

func (g *SelectableGrid) Select(row, col int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.selRow, g.selCol = row, col
}

func (g *SelectableGrid) Selected() (row, col int) { return g.selRow, g.selCol }

// SelectedStack returns the stack in the selected slot, nil when empty.
func (g *SelectableGrid) SelectedStack() *Stack {
	return g.At(g.selRow, g.selCol)
}
