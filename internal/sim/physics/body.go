package physics

type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

type AABB struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (a AABB) Overlaps(b AABB) bool {
	return a.MinX < b.MaxX && b.MinX < a.MaxX && a.MinY < b.MaxY && b.MinY < a.MaxY
}

func (a AABB) Contains(x, y float64) bool {
	return x >= a.MinX && x < a.MaxX && y >= a.MinY && y < a.MaxY
}

// Body is an axis-aligned box in the space. Static bodies (blocks, boundary
// walls) never move; dynamic bodies integrate under gravity and collide
// against statics. Position is the box center in pixels.
type Body struct {
	category string
	pos      Vec2
	vel      Vec2
	half     Vec2
	static   bool

	// Owner points back at the game entity this body belongs to. The space
	// never inspects it; collision handlers use it to reach their entities.
	Owner interface{}

	space *Space
}

func (b *Body) Category() string { return b.category }
func (b *Body) Static() bool     { return b.static }

func (b *Body) Position() Vec2       { return b.pos }
func (b *Body) SetPosition(p Vec2)   { b.pos = p }
func (b *Body) Velocity() Vec2       { return b.vel }
func (b *Body) SetVelocity(v Vec2)   { b.vel = v }
func (b *Body) Size() (w, h float64) { return b.half.X * 2, b.half.Y * 2 }

func (b *Body) Bounds() AABB {
	return AABB{
		MinX: b.pos.X - b.half.X,
		MinY: b.pos.Y - b.half.Y,
		MaxX: b.pos.X + b.half.X,
		MaxY: b.pos.Y + b.half.Y,
	}
}

// InSpace reports whether the body is still attached to its space. Handlers
// may remove bodies mid-step; stale handles answer false.
func (b *Body) InSpace() bool { return b.space != nil }
