package world

import (
	"fmt"

	"tilecraft.ai/internal/sim/catalogs"
)

// Craft surfaces.
const (
	SurfaceBasic = "basic" // the always-available 2x2 grid
)

// Recipe is one registered pattern: an exact full-grid layout mapped to a
// result. Patterns use "" for empty cells.
type Recipe struct {
	id          string
	pattern     [][]string
	resultItem  string
	resultCount int
}

// GridCrafter matches a working grid against its registered recipes by
// exact cell-for-cell equality. No rotations, reflections, or sub-pattern
// matching: the first registered pattern that matches wins, in file order.
type GridCrafter struct {
	surface    string
	rows, cols int
	recipes    []Recipe
}

// buildCrafters hoists the recipe catalog into one immutable crafter per
// surface. Built once at world construction; recipe lookup stays pure.
func buildCrafters(defs []catalogs.RecipeDef) (map[string]*GridCrafter, error) {
	crafters := map[string]*GridCrafter{}
	for _, def := range defs {
		rows := len(def.Pattern)
		cols := len(def.Pattern[0])

		c := crafters[def.Surface]
		if c == nil {
			c = &GridCrafter{surface: def.Surface, rows: rows, cols: cols}
			crafters[def.Surface] = c
		}
		if rows != c.rows || cols != c.cols {
			return nil, fmt.Errorf("recipe %s: %dx%d pattern on %dx%d surface %q",
				def.RecipeID, rows, cols, c.rows, c.cols, def.Surface)
		}
		c.recipes = append(c.recipes, Recipe{
			id:          def.RecipeID,
			pattern:     def.Pattern,
			resultItem:  def.Result.Item,
			resultCount: def.Result.Count,
		})
	}
	return crafters, nil
}

func (c *GridCrafter) Surface() string    { return c.surface }
func (c *GridCrafter) Size() (rows, cols int) { return c.rows, c.cols }

// Match compares the working grid against every registered pattern and
// returns the first exact match's result. Grid dimensions must equal the
// surface dimensions; any single-cell deviation from a pattern is a
// no-match.
func (c *GridCrafter) Match(grid [][]string) (resultItem string, resultCount int, ok bool) {
	if len(grid) != c.rows {
		return "", 0, false
	}
	for _, row := range grid {
		if len(row) != c.cols {
			return "", 0, false
		}
	}

	for _, r := range c.recipes {
		if patternEqual(r.pattern, grid) {
			return r.resultItem, r.resultCount, true
		}
	}
	return "", 0, false
}

func patternEqual(pattern, grid [][]string) bool {
	for i, row := range pattern {
		for j, want := range row {
			if grid[i][j] != want {
				return false
			}
		}
	}
	return true
}
