package world

import (
	"math"

	"tilecraft.ai/internal/sim/physics"
	"tilecraft.ai/internal/sim/tuning"
)

// Mob is a wandering creature. Every K steps it adds a random impulse to its
// velocity: a polar draw of magnitude tempo scaled by its health fraction at
// a uniformly random angle, minus a species-specific downward bias that
// keeps it grounded against gravity. Direction is unbiased; speed fades as
// the mob is hurt.
type Mob struct {
	id      string
	species string
	sp      tuning.Species
	body    *physics.Body

	health, maxHealth float64
	steps             uint64
}

func (m *Mob) Body() *physics.Body { return m.body }

func (m *Mob) Kind() ThingKind {
	switch m.species {
	case "bird":
		return KindBird
	case "sheep":
		return KindSheep
	case "bee":
		return KindBee
	}
	return KindSheep
}

func (m *Mob) Species() string    { return m.species }
func (m *Mob) Health() float64    { return m.health }
func (m *Mob) MaxHealth() float64 { return m.maxHealth }
func (m *Mob) Dead() bool         { return m.health <= 0 }

func (m *Mob) Step(dt float64, ctx stepContext) {
	m.steps++
	if m.sp.StepEvery == 0 || m.steps%m.sp.StepEvery != 0 {
		return
	}
	magnitude := m.sp.Tempo * (m.health / m.maxHealth)
	angle := ctx.world.rng.Float64() * 2 * math.Pi
	dx := math.Cos(angle) * magnitude * m.sp.XScale
	dy := math.Sin(angle) * magnitude

	v := m.body.Velocity()
	m.body.SetVelocity(physics.Vec2{
		X: v.X + dx,
		Y: v.Y + dy - m.sp.GravityBias,
	})
}

// Damage reduces health, clamped at zero.
func (m *Mob) Damage(amount float64) {
	m.health -= amount
	if m.health < 0 {
		m.health = 0
	}
}

func (m *Mob) CanUse() bool        { return false }
func (m *Mob) Use() (Effect, bool) { return Effect{}, false }

// Drops returns the drop effects released when the mob dies.
func (m *Mob) Drops() []Drop {
	if m.sp.DropsItem == "" {
		return nil
	}
	return []Drop{{Category: "item", ID: m.sp.DropsItem}}
}
