package physics

// BeginHandler is invoked once for a pair of bodies that started touching
// this step, first argument always the body whose category was registered
// first. Returning false voids the collision: the bodies pass through each
// other this contact (used so item pickup never physically blocks the
// player). Returning true keeps the contact solid and the space separates
// the pair.
type BeginHandler func(a, b *Body) bool

type pairKey struct {
	a, b string
}

type bodyPair struct {
	a, b *Body
}

// Space owns every physical body and advances them under gravity. All calls
// must come from the simulation goroutine; the space is not safe for
// concurrent use and does not need to be.
type Space struct {
	gravity float64 // px/s^2, downward positive
	damping float64 // horizontal velocity retained per step

	bodies   []*Body
	handlers map[pairKey]BeginHandler

	// Currently touching handled pairs; a pair fires its begin handler
	// again only after the bodies separate.
	touching map[bodyPair]struct{}
}

func NewSpace(gravity, damping float64) *Space {
	return &Space{
		gravity:  gravity,
		damping:  damping,
		handlers: map[pairKey]BeginHandler{},
		touching: map[bodyPair]struct{}{},
	}
}

// AddBody inserts a body of the given category. Size is the full box extent
// and pos its center. Bodies keep insertion order, which keeps stepping and
// collision scans deterministic.
func (s *Space) AddBody(category string, size, pos Vec2, static bool) *Body {
	b := &Body{
		category: category,
		pos:      pos,
		half:     Vec2{size.X / 2, size.Y / 2},
		static:   static,
		space:    s,
	}
	s.bodies = append(s.bodies, b)
	return b
}

func (s *Space) RemoveBody(b *Body) {
	if b == nil || b.space != s {
		return
	}
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}
	for pair := range s.touching {
		if pair.a == b || pair.b == b {
			delete(s.touching, pair)
		}
	}
	b.space = nil
}

func (s *Space) Bodies() []*Body { return s.bodies }

// OnBegin installs the begin handler for a category pair. One handler per
// pair; order of the categories fixes the argument order.
func (s *Space) OnBegin(categoryA, categoryB string, h BeginHandler) {
	s.handlers[pairKey{categoryA, categoryB}] = h
}

// Step advances the space by dt seconds: gravity and damping on dynamic
// bodies, axis-separated motion against statics, then begin-collision
// detection for registered category pairs. Handlers run before Step returns,
// so callers observe a settled world.
func (s *Space) Step(dt float64) {
	for _, b := range s.bodies {
		if b.static {
			continue
		}
		b.vel.Y += s.gravity * dt
		b.vel.X *= s.damping
		s.moveAgainstStatics(b, dt)
	}
	s.detectCollisions()
}

// moveAgainstStatics advances one axis at a time and stops at static edges,
// zeroing velocity on the blocked axis so bodies rest instead of jittering.
func (s *Space) moveAgainstStatics(b *Body, dt float64) {
	if b.vel.X != 0 {
		newX := b.pos.X + b.vel.X*dt
		for _, o := range s.bodies {
			if !o.static {
				continue
			}
			ob := o.Bounds()
			if b.pos.Y-b.half.Y >= ob.MaxY || b.pos.Y+b.half.Y <= ob.MinY {
				continue
			}
			if b.vel.X > 0 && b.pos.X+b.half.X <= ob.MinX && newX+b.half.X > ob.MinX {
				newX = ob.MinX - b.half.X
				b.vel.X = 0
			} else if b.vel.X < 0 && b.pos.X-b.half.X >= ob.MaxX && newX-b.half.X < ob.MaxX {
				newX = ob.MaxX + b.half.X
				b.vel.X = 0
			}
		}
		b.pos.X = newX
	}

	if b.vel.Y != 0 {
		newY := b.pos.Y + b.vel.Y*dt
		for _, o := range s.bodies {
			if !o.static {
				continue
			}
			ob := o.Bounds()
			if b.pos.X-b.half.X >= ob.MaxX || b.pos.X+b.half.X <= ob.MinX {
				continue
			}
			if b.vel.Y > 0 && b.pos.Y+b.half.Y <= ob.MinY && newY+b.half.Y > ob.MinY {
				newY = ob.MinY - b.half.Y
				b.vel.Y = 0
			} else if b.vel.Y < 0 && b.pos.Y-b.half.Y >= ob.MaxY && newY-b.half.Y < ob.MaxY {
				newY = ob.MaxY + b.half.Y
				b.vel.Y = 0
			}
		}
		b.pos.Y = newY
	}
}

func (s *Space) detectCollisions() {
	// Snapshot candidates first: handlers may remove bodies mid-loop.
	type contact struct {
		pair    bodyPair
		handler BeginHandler
	}
	var begins []contact

	for pair := range s.touching {
		if !pair.a.InSpace() || !pair.b.InSpace() || !pair.a.Bounds().Overlaps(pair.b.Bounds()) {
			delete(s.touching, pair)
		}
	}

	for i := 0; i < len(s.bodies); i++ {
		a := s.bodies[i]
		for j := i + 1; j < len(s.bodies); j++ {
			b := s.bodies[j]
			if a.static && b.static {
				continue
			}
			first, second, h := s.handlerFor(a, b)
			if h == nil {
				continue
			}
			if !a.Bounds().Overlaps(b.Bounds()) {
				continue
			}
			pair := bodyPair{first, second}
			if _, seen := s.touching[pair]; seen {
				continue
			}
			s.touching[pair] = struct{}{}
			begins = append(begins, contact{pair, h})
		}
	}

	for _, c := range begins {
		a, b := c.pair.a, c.pair.b
		if !a.InSpace() || !b.InSpace() {
			continue
		}
		if c.handler(a, b) {
			s.separate(a, b)
		}
	}
}

func (s *Space) handlerFor(a, b *Body) (*Body, *Body, BeginHandler) {
	if h, ok := s.handlers[pairKey{a.category, b.category}]; ok {
		return a, b, h
	}
	if h, ok := s.handlers[pairKey{b.category, a.category}]; ok {
		return b, a, h
	}
	return nil, nil, nil
}

// separate pushes the dynamic body of a valid contact out along the axis of
// least penetration, so solid pairs rest against each other.
func (s *Space) separate(a, b *Body) {
	mover := b
	if mover.static {
		mover = a
	}
	if mover.static {
		return
	}
	other := a
	if mover == a {
		other = b
	}

	ab, ob := mover.Bounds(), other.Bounds()
	overlapX := minFloat(ab.MaxX, ob.MaxX) - maxFloat(ab.MinX, ob.MinX)
	overlapY := minFloat(ab.MaxY, ob.MaxY) - maxFloat(ab.MinY, ob.MinY)
	if overlapX <= 0 || overlapY <= 0 {
		return
	}

	if overlapX < overlapY {
		if mover.pos.X < other.pos.X {
			mover.pos.X -= overlapX
		} else {
			mover.pos.X += overlapX
		}
		mover.vel.X = 0
	} else {
		if mover.pos.Y < other.pos.Y {
			mover.pos.Y -= overlapY
		} else {
			mover.pos.Y += overlapY
		}
		mover.vel.Y = 0
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
