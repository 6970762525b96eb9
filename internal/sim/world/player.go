package world

import "tilecraft.ai/internal/sim/physics"

// Player is the controlled body. Food buffers health: strenuous actions
// spend food first and only cut into health once food is exhausted.
type Player struct {
	id   string
	body *physics.Body

	health, maxHealth float64
	food, maxFood     float64
}

func (p *Player) Body() *physics.Body { return p.body }
func (p *Player) Kind() ThingKind     { return KindPlayer }

func (p *Player) Health() float64    { return p.health }
func (p *Player) MaxHealth() float64 { return p.maxHealth }
func (p *Player) Food() float64      { return p.food }
func (p *Player) MaxFood() float64   { return p.maxFood }

func (p *Player) Dead() bool { return p.health <= 0 }

// AddHealth changes health by delta, clamped to [0, max].
func (p *Player) AddHealth(delta float64) {
	p.health += delta
	if p.health < 0 {
		p.health = 0
	}
	if p.health > p.maxHealth {
		p.health = p.maxHealth
	}
}

// AddFood changes food by delta, clamped to [0, max].
func (p *Player) AddFood(delta float64) {
	p.food += delta
	if p.food < 0 {
		p.food = 0
	}
	if p.food > p.maxFood {
		p.food = p.maxFood
	}
}

func (p *Player) Step(dt float64, _ stepContext) {}
