package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Catalogs is the closed id universe of the game: every block, item, and
// recipe the factories and the crafting registry may produce. Loaded once at
// startup; immutable afterwards.
type Catalogs struct {
	Blocks  BlockCatalog
	Items   ItemCatalog
	Recipes RecipeCatalog
}

type BlockCatalog struct {
	Defs   map[string]BlockDef
	IDs    []string // sorted, for deterministic catalog messages
	Digest string
}

type BlockDef struct {
	ID         string                `json:"id"`
	BreakTable map[string]BreakEntry `json:"break_table,omitempty"`
	Drops      []DropDef             `json:"drops,omitempty"`
	Use        *UseDef               `json:"use,omitempty"`
}

// BreakEntry is one row of a block's break table: how many hits a tool type
// needs, and whether that tool type is the ideal one for the block.
type BreakEntry struct {
	Hits      int  `json:"hits"`
	Effective bool `json:"effective"`
}

// DropDef describes one drop effect emitted when the block is mined.
type DropDef struct {
	Category          string  `json:"category"` // "item" or "block"
	ID                string  `json:"id"`
	Count             int     `json:"count,omitempty"` // default 1
	RequiresEffective bool    `json:"requires_effective,omitempty"`
	LuckBelow         float64 `json:"luck_below,omitempty"` // granted only when luck < this; 0 means always
}

type UseDef struct {
	Kind    string `json:"kind"` // "crafting"
	Surface string `json:"surface"`
}

type ItemCatalog struct {
	Defs   map[string]ItemDef
	IDs    []string
	Digest string
}

// Item kinds.
const (
	ItemSimple = "SIMPLE"
	ItemBlock  = "BLOCK"
	ItemTool   = "TOOL"
	ItemFood   = "FOOD"
	ItemHand   = "HAND"
)

type ItemDef struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	ToolType    string  `json:"tool_type,omitempty"`
	Durability  int     `json:"durability,omitempty"`
	Strength    float64 `json:"strength,omitempty"`     // food recovery
	Damage      float64 `json:"damage,omitempty"`       // mob attack damage
	AttackRange int     `json:"attack_range,omitempty"` // cells; 0 means default
	Stackable   bool    `json:"stackable,omitempty"`
	PlaceAs     string  `json:"place_as,omitempty"` // block id placed by right-click
}

// RecipeCatalog keeps file order: crafting matches first-registered-wins.
type RecipeCatalog struct {
	Defs   []RecipeDef
	Digest string
}

type RecipeDef struct {
	RecipeID string     `json:"recipe_id"`
	Surface  string     `json:"surface"` // "basic" (2x2) or a block surface id (3x3)
	Pattern  [][]string `json:"pattern"` // row-major, "" for empty cells
	Result   ItemCount  `json:"result"`
}

type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Load reads and validates blocks.json, items.json, and recipes.json from
// configDir. Each file is checked against its JSON Schema under
// configDir/schemas before decoding, so malformed catalogs fail at startup
// rather than mid-game.
func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadBlocks(configDir, &c.Blocks); err != nil {
		return nil, err
	}
	if err := loadItems(configDir, &c.Items); err != nil {
		return nil, err
	}
	if err := loadRecipes(configDir, &c.Recipes); err != nil {
		return nil, err
	}

	if err := c.crossCheck(); err != nil {
		return nil, err
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func readValidated(configDir, name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(configDir, name+".json"))
	if err != nil {
		return nil, err
	}

	schema, err := jsonschema.Compile(filepath.Join(configDir, "schemas", name+".schema.json"))
	if err != nil {
		return nil, fmt.Errorf("%s schema: %w", name, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%s.json: %w", name, err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("%s.json: %w", name, err)
	}
	return raw, nil
}

func loadBlocks(configDir string, out *BlockCatalog) error {
	raw, err := readValidated(configDir, "blocks")
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []BlockDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("blocks.json: %w", err)
	}
	out.Defs = map[string]BlockDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("blocks.json: empty id")
		}
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("blocks.json: duplicate id %q", d.ID)
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.IDs = ids
	return nil
}

func loadItems(configDir string, out *ItemCatalog) error {
	raw, err := readValidated(configDir, "items")
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("items.json: duplicate id %q", d.ID)
		}
		switch d.Kind {
		case ItemSimple, ItemBlock, ItemTool, ItemFood, ItemHand:
		default:
			return fmt.Errorf("items.json: %s: unknown kind %q", d.ID, d.Kind)
		}
		if d.Kind == ItemTool && d.ToolType == "" {
			return fmt.Errorf("items.json: %s: tool without tool_type", d.ID)
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.IDs = ids
	return nil
}

func loadRecipes(configDir string, out *RecipeCatalog) error {
	raw, err := readValidated(configDir, "recipes")
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []RecipeDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("recipes.json: %w", err)
	}
	seen := map[string]struct{}{}
	for _, r := range defs {
		if r.RecipeID == "" {
			return fmt.Errorf("recipes.json: empty recipe_id")
		}
		if _, dup := seen[r.RecipeID]; dup {
			return fmt.Errorf("recipes.json: duplicate recipe_id %q", r.RecipeID)
		}
		seen[r.RecipeID] = struct{}{}
		if len(r.Pattern) == 0 {
			return fmt.Errorf("recipes.json: %s: empty pattern", r.RecipeID)
		}
		width := len(r.Pattern[0])
		for _, row := range r.Pattern {
			if len(row) != width {
				return fmt.Errorf("recipes.json: %s: ragged pattern", r.RecipeID)
			}
		}
		if r.Result.Count <= 0 {
			return fmt.Errorf("recipes.json: %s: result count must be positive", r.RecipeID)
		}
	}
	out.Defs = defs
	return nil
}

// crossCheck verifies that every id referenced by a catalog resolves inside
// the catalogs, so factory lookups cannot fail for data reasons at runtime.
func (c *Catalogs) crossCheck() error {
	for id, b := range c.Blocks.Defs {
		for _, d := range b.Drops {
			switch d.Category {
			case "item":
				if _, ok := c.Items.Defs[d.ID]; !ok {
					return fmt.Errorf("blocks.json: %s drops unknown item %q", id, d.ID)
				}
			case "block":
				if _, ok := c.Blocks.Defs[d.ID]; !ok {
					return fmt.Errorf("blocks.json: %s drops unknown block %q", id, d.ID)
				}
			default:
				return fmt.Errorf("blocks.json: %s: unknown drop category %q", id, d.Category)
			}
		}
	}
	for id, it := range c.Items.Defs {
		if it.PlaceAs != "" {
			if _, ok := c.Blocks.Defs[it.PlaceAs]; !ok {
				return fmt.Errorf("items.json: %s places unknown block %q", id, it.PlaceAs)
			}
		}
	}
	for _, r := range c.Recipes.Defs {
		for _, row := range r.Pattern {
			for _, cell := range row {
				if cell == "" {
					continue
				}
				if _, ok := c.Items.Defs[cell]; !ok {
					return fmt.Errorf("recipes.json: %s references unknown item %q", r.RecipeID, cell)
				}
			}
		}
		if _, ok := c.Items.Defs[r.Result.Item]; !ok {
			return fmt.Errorf("recipes.json: %s results in unknown item %q", r.RecipeID, r.Result.Item)
		}
	}
	return nil
}
