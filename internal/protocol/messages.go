package protocol

// HELLO (client -> server). The client is the renderer/UI shell; it draws
// OBS frames and turns input events into ACT intents.
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
	ResumeToken     string `json:"resume_token,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	SessionID       string         `json:"session_id"`
	ResumeToken     string         `json:"resume_token"`
	WorldParams     WorldParams    `json:"world_params"`
	Catalogs        CatalogDigests `json:"catalogs"`
}

type WorldParams struct {
	TickRateHz  int   `json:"tick_rate_hz"`
	GridWidth   int   `json:"grid_width"`
	GridHeight  int   `json:"grid_height"`
	CellExpanse int   `json:"cell_expanse"`
	Seed        int64 `json:"seed"`
}

type CatalogDigests struct {
	BlocksDigest  string `json:"blocks_digest"`
	ItemsDigest   string `json:"items_digest"`
	RecipesDigest string `json:"recipes_digest"`
}

// CATALOG (server -> client): one catalog as a single part.
type CatalogMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Name            string      `json:"name"`   // "blocks", "items", "recipes"
	Digest          string      `json:"digest"` // sha256 hex
	Data            interface{} `json:"data"`
}

// ACT (client -> server): ordered player intents for the next tick.
type ActMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Tick            uint64      `json:"tick,omitempty"`
	Intents         []IntentReq `json:"intents"`
}

// Intent types.
const (
	IntentMove       = "MOVE"
	IntentJump       = "JUMP"
	IntentSelect     = "SELECT"
	IntentLeftClick  = "LEFT_CLICK"
	IntentRightClick = "RIGHT_CLICK"
	IntentCraft      = "CRAFT"
	IntentNewGame    = "NEW_GAME"
)

type IntentReq struct {
	Type string `json:"type"`

	// MOVE: unit direction; JUMP has no payload.
	Dx int `json:"dx,omitempty"`
	Dy int `json:"dy,omitempty"`

	// SELECT: hotbar slot 0..9.
	Slot int `json:"slot,omitempty"`

	// LEFT_CLICK / RIGHT_CLICK: cursor pixel coordinates.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// CRAFT: the working grid contents, row-major, "" for empty cells.
	Grid [][]string `json:"grid,omitempty"`
}

// OBS (server -> client): a full drawable snapshot of the world.
type ObsMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Tick            uint64      `json:"tick"`
	Player          PlayerView  `json:"player"`
	Hotbar          HotbarView  `json:"hotbar"`
	Inventory       []SlotView  `json:"inventory"`
	Blocks          []BlockView `json:"blocks"`
	Things          []ThingView `json:"things"`
	Crafting        *CraftView  `json:"crafting,omitempty"`
	Events          []Event     `json:"events,omitempty"`
}

type PlayerView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health float64 `json:"health"`
	Food   float64 `json:"food"`
	Dead   bool    `json:"dead,omitempty"`
}

type HotbarView struct {
	Slots    []SlotView `json:"slots"`
	Selected int        `json:"selected"`
}

type SlotView struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`

	// Tool wear, present only for tools.
	Durability    int `json:"durability,omitempty"`
	MaxDurability int `json:"max_durability,omitempty"`
}

type BlockView struct {
	Cell     [2]int  `json:"cell"`
	ID       string  `json:"id"`
	Progress float64 `json:"progress,omitempty"`
}

// ThingView carries the visual descriptor for one free-floating physical
// thing. Kind is a closed enum the renderer switches on; it never needs to
// inspect concrete entity types.
type ThingView struct {
	Kind   string  `json:"kind"` // "player","bird","sheep","bee","dropped_item","wall"
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Item   string  `json:"item,omitempty"`   // dropped items
	Health float64 `json:"health,omitempty"` // mobs
}

type CraftView struct {
	Surface string `json:"surface"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
}

type Event map[string]interface{}
