package world

import (
	"testing"

	"tilecraft.ai/internal/sim/catalogs"
)

func testRecipes() []catalogs.RecipeDef {
	return []catalogs.RecipeDef{
		{
			RecipeID: "sticks",
			Surface:  "basic",
			Pattern:  [][]string{{"", "wood"}, {"", "wood"}},
			Result:   catalogs.ItemCount{Item: "stick", Count: 4},
		},
		{
			RecipeID: "table",
			Surface:  "basic",
			Pattern:  [][]string{{"wood", "wood"}, {"wood", "wood"}},
			Result:   catalogs.ItemCount{Item: "crafting_table", Count: 1},
		},
		{
			RecipeID: "pickaxe",
			Surface:  "crafting_table",
			Pattern: [][]string{
				{"wood", "wood", "wood"},
				{"", "stick", ""},
				{"", "stick", ""},
			},
			Result: catalogs.ItemCount{Item: "wood_pickaxe", Count: 1},
		},
	}
}

func TestBuildCrafters(t *testing.T) {
	crafters, err := buildCrafters(testRecipes())
	if err != nil {
		t.Fatalf("buildCrafters: %v", err)
	}
	if len(crafters) != 2 {
		t.Fatalf("crafters = %d, want 2", len(crafters))
	}
	if r, c := crafters["basic"].Size(); r != 2 || c != 2 {
		t.Fatalf("basic size = %dx%d", r, c)
	}
	if r, c := crafters["crafting_table"].Size(); r != 3 || c != 3 {
		t.Fatalf("crafting_table size = %dx%d", r, c)
	}
}

func TestBuildCrafters_DimensionMismatch(t *testing.T) {
	defs := testRecipes()
	defs = append(defs, catalogs.RecipeDef{
		RecipeID: "bad",
		Surface:  "basic",
		Pattern:  [][]string{{"wood", "wood", "wood"}},
		Result:   catalogs.ItemCount{Item: "stick", Count: 1},
	})
	if _, err := buildCrafters(defs); err == nil {
		t.Fatal("want error for mismatched pattern dimensions on one surface")
	}
}

func TestMatch_Exact(t *testing.T) {
	crafters, err := buildCrafters(testRecipes())
	if err != nil {
		t.Fatalf("buildCrafters: %v", err)
	}
	basic := crafters["basic"]

	item, count, ok := basic.Match([][]string{{"", "wood"}, {"", "wood"}})
	if !ok || item != "stick" || count != 4 {
		t.Fatalf("match = (%s,%d,%v)", item, count, ok)
	}
}

func TestMatch_OneCellDeviation(t *testing.T) {
	crafters, _ := buildCrafters(testRecipes())
	basic := crafters["basic"]

	cases := map[string][][]string{
		"shifted":  {{"wood", ""}, {"wood", ""}},
		"extra":    {{"", "wood"}, {"wood", "wood"}},
		"missing":  {{"", "wood"}, {"", ""}},
		"replaced": {{"", "stone"}, {"", "wood"}},
	}
	for name, grid := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, ok := basic.Match(grid); ok {
				t.Fatalf("grid %v matched", grid)
			}
		})
	}
}

func TestMatch_WrongDimensions(t *testing.T) {
	crafters, _ := buildCrafters(testRecipes())
	basic := crafters["basic"]

	if _, _, ok := basic.Match([][]string{{"", "wood", ""}, {"", "wood", ""}}); ok {
		t.Fatal("3-wide grid matched a 2x2 surface")
	}
	if _, _, ok := basic.Match([][]string{{"", "wood"}}); ok {
		t.Fatal("1-row grid matched a 2x2 surface")
	}
}

func TestMatch_FirstRegisteredWins(t *testing.T) {
	defs := []catalogs.RecipeDef{
		{
			RecipeID: "first",
			Surface:  "basic",
			Pattern:  [][]string{{"wood", ""}, {"", ""}},
			Result:   catalogs.ItemCount{Item: "stick", Count: 1},
		},
		{
			RecipeID: "second",
			Surface:  "basic",
			Pattern:  [][]string{{"wood", ""}, {"", ""}},
			Result:   catalogs.ItemCount{Item: "apple", Count: 1},
		},
	}
	crafters, err := buildCrafters(defs)
	if err != nil {
		t.Fatalf("buildCrafters: %v", err)
	}
	item, _, ok := crafters["basic"].Match([][]string{{"wood", ""}, {"", ""}})
	if !ok || item != "stick" {
		t.Fatalf("match = (%s,%v), want first registration", item, ok)
	}
}
