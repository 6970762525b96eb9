package catalogs

import (
	"path/filepath"
	"testing"
)

func loadShipped(t *testing.T) *Catalogs {
	t.Helper()
	c, err := Load(filepath.Join("..", "..", "..", "configs"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoad_ShippedCatalogs(t *testing.T) {
	c := loadShipped(t)

	if len(c.Blocks.Defs) == 0 || len(c.Items.Defs) == 0 || len(c.Recipes.Defs) == 0 {
		t.Fatal("a shipped catalog loaded empty")
	}
	for _, digest := range []string{c.Blocks.Digest, c.Items.Digest, c.Recipes.Digest} {
		if len(digest) != 64 {
			t.Fatalf("digest %q is not sha256 hex", digest)
		}
	}
}

func TestLoad_StoneBreakTable(t *testing.T) {
	c := loadShipped(t)

	stone, ok := c.Blocks.Defs["stone"]
	if !ok {
		t.Fatal("no stone block")
	}
	if _, hasHand := stone.BreakTable["hand"]; hasHand {
		t.Fatal("stone is breakable by hand")
	}
	pick, ok := stone.BreakTable["pickaxe"]
	if !ok {
		t.Fatal("stone has no pickaxe entry")
	}
	if pick.Hits != 4 || !pick.Effective {
		t.Fatalf("stone pickaxe entry = %+v", pick)
	}
}

func TestLoad_SortedIDs(t *testing.T) {
	c := loadShipped(t)
	for i := 1; i < len(c.Blocks.IDs); i++ {
		if c.Blocks.IDs[i-1] >= c.Blocks.IDs[i] {
			t.Fatalf("block ids not sorted at %d: %q >= %q", i, c.Blocks.IDs[i-1], c.Blocks.IDs[i])
		}
	}
}

func TestLoad_RecipeFileOrder(t *testing.T) {
	c := loadShipped(t)

	if got := c.Recipes.Defs[0].RecipeID; got != "sticks_basic" {
		t.Fatalf("first recipe = %q, want sticks_basic", got)
	}
	lastBasic := -1
	for i, r := range c.Recipes.Defs {
		if r.Surface == "basic" {
			lastBasic = i
		}
	}
	if lastBasic < 0 {
		t.Fatal("no basic-surface recipes")
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("Load succeeded on an empty directory")
	}
}
