package world

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync/atomic"

	"tilecraft.ai/internal/protocol"
	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/physics"
	"tilecraft.ai/internal/sim/tuning"
)

// Physical body categories. Collision handlers register on pairs of these.
const (
	CategoryPlayer = "player"
	CategoryMob    = "mob"
	CategoryItem   = "item"
	CategoryBlock  = "block"
	CategoryWall   = "wall"
)

var (
	errUnknownID           = errors.New("unknown id")
	errUndefinedEffect     = errors.New("no effect defined")
	errUnknownDropCategory = errors.New("unknown drop category")
	errUnimplemented       = errors.New("not implemented")
)

type WorldConfig struct {
	ID   string
	Seed int64
}

// Cell addresses one grid square. A cell holds at most one block; free
// entities live at continuous pixel coordinates independent of the grid.
type Cell struct {
	X int
	Y int
}

// World is a single-threaded authoritative simulation. All state must be
// accessed only from the world loop goroutine.
type World struct {
	cfg  WorldConfig
	tune tuning.Tuning
	cats *catalogs.Catalogs

	tick atomic.Uint64

	space  *physics.Space
	blocks map[Cell]*Block
	things []PhysicalThing
	player *Player
	hands  *Item

	hotbar    *SelectableGrid
	inventory *Grid

	crafters       map[string]*GridCrafter
	activeCrafting string // surface id of the open crafter, "" when closed

	rng *rand.Rand

	inbox  chan ActionEnvelope
	attach chan attachReq
	stop   chan struct{}

	client *clientState

	events       []protocol.Event
	terrainDirty bool

	nextThingNum atomic.Uint64

	logger *log.Logger

	// Optional tick journal (may be nil). Implemented in internal/journal.
	journal TickJournal
}

type ActionEnvelope struct {
	Act protocol.ActMsg
}

// TickJournal receives one entry per simulation tick.
type TickJournal interface {
	WriteTick(entry TickEntry) error
}

type TickEntry struct {
	Tick    uint64            `json:"tick"`
	Intents int               `json:"intents"`
	Events  []protocol.Event  `json:"events,omitempty"`
	Player  map[string]string `json:"player,omitempty"`

	// Terrain is present on the first tick after a world (re)build: the full
	// block grid, run-length encoded against the palette.
	Terrain *TerrainEntry `json:"terrain,omitempty"`
}

type TerrainEntry struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Palette []string `json:"palette"` // index 0 is always the empty cell
	Cells   string   `json:"cells"`   // row-major RLE of palette indexes
}

func New(cfg WorldConfig, tune tuning.Tuning, cats *catalogs.Catalogs, logger *log.Logger) (*World, error) {
	w := &World{
		cfg:    cfg,
		tune:   tune,
		cats:   cats,
		blocks: map[Cell]*Block{},
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		inbox:  make(chan ActionEnvelope, 256),
		attach: make(chan attachReq, 4),
		stop:   make(chan struct{}),
		logger: logger,
	}

	crafters, err := buildCrafters(cats.Recipes.Defs)
	if err != nil {
		return nil, err
	}
	w.crafters = crafters

	hands, err := w.createItem("hands")
	if err != nil {
		return nil, fmt.Errorf("hands item: %w", err)
	}
	w.hands = hands

	if err := w.buildWorld(); err != nil {
		return nil, err
	}
	return w, nil
}

// buildWorld assembles the physical space, boundary, seed layout, player,
// and starting containers. Used at construction and by NEW_GAME resets.
func (w *World) buildWorld() error {
	w.space = physics.NewSpace(w.tune.Physics.Gravity, w.tune.Physics.Damping)
	w.blocks = map[Cell]*Block{}
	w.things = nil
	w.activeCrafting = ""
	w.terrainDirty = true

	w.space.OnBegin(CategoryPlayer, CategoryItem, w.handlePlayerCollideItem)

	w.addBoundaryWalls()
	if err := w.loadStartLayout(); err != nil {
		return err
	}

	w.player = w.addPlayer(250, 150)
	return w.loadStartContainers()
}

func (w *World) SetJournal(j TickJournal) { w.journal = j }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

// CellExpanse is the pixel edge length of one grid cell.
func (w *World) CellExpanse() float64 { return float64(w.tune.CellExpanse) }

// PixelSize is the world extent in pixels.
func (w *World) PixelSize() (float64, float64) {
	return float64(w.tune.GridWidth) * w.CellExpanse(), float64(w.tune.GridHeight) * w.CellExpanse()
}

// XYToGrid converts pixel coordinates to the containing cell.
func (w *World) XYToGrid(x, y float64) Cell {
	e := w.CellExpanse()
	return Cell{int(math.Floor(x / e)), int(math.Floor(y / e))}
}

// GridToXYCentre converts a cell to the pixel coordinates of its center.
func (w *World) GridToXYCentre(c Cell) (float64, float64) {
	e := w.CellExpanse()
	return float64(c.X)*e + e/2, float64(c.Y)*e + e/2
}

func (w *World) inGrid(c Cell) bool {
	return c.X >= 0 && c.X < w.tune.GridWidth && c.Y >= 0 && c.Y < w.tune.GridHeight
}

// BlockAt returns the block under the given pixel coordinates, or nil.
func (w *World) BlockAt(x, y float64) *Block {
	return w.blocks[w.XYToGrid(x, y)]
}

// ThingAt returns the physical thing under the given pixel coordinates:
// the block in that cell if any, otherwise the first free entity whose box
// contains the point. The player and boundary walls are never returned.
func (w *World) ThingAt(x, y float64) Physical {
	if b := w.BlockAt(x, y); b != nil {
		return b
	}
	for _, t := range w.things {
		switch t.(type) {
		case *Player, *BoundaryWall:
			continue
		}
		if t.Body().Bounds().Contains(x, y) {
			return t
		}
	}
	return nil
}

func (w *World) addBlockToGrid(b *Block, c Cell) error {
	if !w.inGrid(c) {
		return fmt.Errorf("cell %v outside the grid", c)
	}
	if _, occupied := w.blocks[c]; occupied {
		return fmt.Errorf("%w: cell %v already holds a block", errUnimplemented, c)
	}
	x, y := w.GridToXYCentre(c)
	e := w.CellExpanse()
	b.cell = c
	b.body = w.space.AddBody(CategoryBlock, physics.Vec2{X: e, Y: e}, physics.Vec2{X: x, Y: y}, true)
	b.body.Owner = b
	w.blocks[c] = b
	return nil
}

func (w *World) addBlockAt(b *Block, x, y float64) error {
	return w.addBlockToGrid(b, w.XYToGrid(x, y))
}

func (w *World) removeBlock(b *Block) {
	if b == nil || b.body == nil {
		return
	}
	w.space.RemoveBody(b.body)
	delete(w.blocks, b.cell)
}

func (w *World) addThing(t PhysicalThing) {
	w.things = append(w.things, t)
}

func (w *World) removeThing(t PhysicalThing) {
	w.space.RemoveBody(t.Body())
	for i, other := range w.things {
		if other == t {
			w.things = append(w.things[:i], w.things[i+1:]...)
			return
		}
	}
}

func (w *World) nextThingID() string {
	return fmt.Sprintf("T%d", w.nextThingNum.Add(1))
}

func (w *World) addEvent(e protocol.Event) {
	if e["t"] == nil {
		e["t"] = w.tick.Load()
	}
	w.events = append(w.events, e)
}

func (w *World) addBoundaryWalls() {
	pw, ph := w.PixelSize()
	thickness := w.CellExpanse()
	walls := []struct {
		size physics.Vec2
		pos  physics.Vec2
	}{
		{physics.Vec2{X: pw + 2*thickness, Y: thickness}, physics.Vec2{X: pw / 2, Y: -thickness / 2}},
		{physics.Vec2{X: pw + 2*thickness, Y: thickness}, physics.Vec2{X: pw / 2, Y: ph + thickness/2}},
		{physics.Vec2{X: thickness, Y: ph}, physics.Vec2{X: -thickness / 2, Y: ph / 2}},
		{physics.Vec2{X: thickness, Y: ph}, physics.Vec2{X: pw + thickness/2, Y: ph / 2}},
	}
	for _, spec := range walls {
		wall := &BoundaryWall{id: w.nextThingID()}
		wall.body = w.space.AddBody(CategoryWall, spec.size, spec.pos, true)
		wall.body.Owner = wall
		w.addThing(wall)
	}
}

func (w *World) addPlayer(x, y float64) *Player {
	p := &Player{
		id:        w.nextThingID(),
		health:    w.tune.Player.MaxHealth,
		maxHealth: w.tune.Player.MaxHealth,
		food:      w.tune.Player.MaxFood,
		maxFood:   w.tune.Player.MaxFood,
	}
	p.body = w.space.AddBody(CategoryPlayer,
		physics.Vec2{X: w.tune.Player.Width, Y: w.tune.Player.Height},
		physics.Vec2{X: x, Y: y}, false)
	p.body.Owner = p
	w.addThing(p)
	return p
}

func (w *World) spawnMob(species string, x, y float64) (*Mob, error) {
	sp, ok := w.tune.Species[species]
	if !ok {
		return nil, fmt.Errorf("%w: no species defined for %q", errUnknownID, species)
	}
	m := &Mob{
		id:        w.nextThingID(),
		species:   species,
		sp:        sp,
		health:    sp.Health,
		maxHealth: sp.Health,
	}
	m.body = w.space.AddBody(CategoryMob,
		physics.Vec2{X: sp.Width, Y: sp.Height},
		physics.Vec2{X: x, Y: y}, false)
	m.body.Owner = m
	w.addThing(m)
	return m, nil
}

func (w *World) spawnDroppedItem(it *Item, x, y float64) *DroppedItem {
	d := &DroppedItem{
		id:           w.nextThingID(),
		item:         it,
		despawnAfter: w.tune.ItemDespawnTicks,
	}
	size := w.CellExpanse() / 2
	d.body = w.space.AddBody(CategoryItem,
		physics.Vec2{X: size, Y: size},
		physics.Vec2{X: x, Y: y}, false)
	d.body.Owner = d
	w.addThing(d)
	return d
}

// handlePlayerCollideItem picks a touched dropped item into the hotbar,
// falling back to the inventory. The collision is voided in every case
// except both containers being full, where the item stays solid and visibly
// rests against the player instead of overlapping it.
func (w *World) handlePlayerCollideItem(playerBody, itemBody *physics.Body) bool {
	d, ok := itemBody.Owner.(*DroppedItem)
	if !ok {
		return false
	}
	item := d.item
	switch {
	case w.hotbar.AddItem(item, w.tune.MaxStack):
		w.addEvent(protocol.Event{"type": "PICKUP", "item": item.ID(), "into": "hotbar"})
	case w.inventory.AddItem(item, w.tune.MaxStack):
		w.addEvent(protocol.Event{"type": "PICKUP", "item": item.ID(), "into": "inventory"})
	default:
		w.addEvent(protocol.Event{"type": "PICKUP_FAIL", "item": item.ID(), "code": protocol.ErrContainersFull})
		return true
	}
	w.removeThing(d)
	return false
}
