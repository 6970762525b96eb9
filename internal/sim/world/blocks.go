package world

import (
	"fmt"

	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/physics"
)

// Block is one placed block. Its break table maps tool types to the hits
// required and whether that tool type is the ideal one; mining progress
// accumulates across attacks until the block transitions to mined.
type Block struct {
	def  catalogs.BlockDef
	cell Cell
	body *physics.Body

	progress float64
	mined    bool
}

// createBlock is the block factory: total over the catalog's closed id set,
// lookup error for anything else.
func (w *World) createBlock(id string) (*Block, error) {
	def, ok := w.cats.Blocks.Defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: no block defined for %q", errUnknownID, id)
	}
	return &Block{def: def}, nil
}

func (b *Block) ID() string           { return b.def.ID }
func (b *Block) Cell() Cell           { return b.cell }
func (b *Block) Body() *physics.Body  { return b.body }
func (b *Block) Kind() ThingKind      { return KindBlock }
func (b *Block) Mined() bool          { return b.mined }
func (b *Block) Progress() float64    { return b.progress }

// Mine applies one attack. It reports whether the effective item's tool type
// is the ideal one for this block, and whether this attack completed the
// break. A tool type absent from the break table makes no progress at all,
// so bare hands never wear down a block that does not list them. Mining an
// already mined block is a no-op.
func (b *Block) Mine(effectiveItem, activeItem *Item, luck float64) (effective, success bool) {
	if b.mined {
		return false, false
	}
	entry, ok := b.def.BreakTable[effectiveItem.ToolType()]
	if !ok {
		return false, false
	}
	b.progress++
	if b.progress >= float64(entry.Hits) {
		b.mined = true
		return entry.Effective, true
	}
	return entry.Effective, false
}

// Drops returns the ordered drop effects for this block once mined. Luck is
// the uniform [0,1) sample drawn for the mining attempt; correctItemUsed is
// the effective flag reported by Mine.
func (b *Block) Drops(luck float64, correctItemUsed bool) []Drop {
	var out []Drop
	for _, d := range b.def.Drops {
		if d.RequiresEffective && !correctItemUsed {
			continue
		}
		if d.LuckBelow > 0 && luck >= d.LuckBelow {
			continue
		}
		n := d.Count
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, Drop{Category: d.Category, ID: d.ID})
		}
	}
	return out
}

func (b *Block) CanUse() bool { return b.def.Use != nil }

func (b *Block) Use() (Effect, bool) {
	if b.def.Use == nil {
		return Effect{}, false
	}
	return Effect{Kind: b.def.Use.Kind, Surface: b.def.Use.Surface}, true
}
