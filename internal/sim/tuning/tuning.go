package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every numeric knob of the simulation. The world never reaches
// for package-level constants; it reads the effective tuning it was built
// with, so tests can shrink or pin values without touching configs.
type Tuning struct {
	TickRateHz int `yaml:"tick_rate_hz"`

	GridWidth   int `yaml:"grid_width"`
	GridHeight  int `yaml:"grid_height"`
	CellExpanse int `yaml:"cell_expanse"`

	Physics Physics `yaml:"physics"`
	Player  Player  `yaml:"player"`

	MaxStack         int    `yaml:"max_stack"`
	ItemDespawnTicks uint64 `yaml:"item_despawn_ticks"`

	Species map[string]Species `yaml:"species"`
}

type Physics struct {
	Gravity float64 `yaml:"gravity"` // px/s^2, downward positive
	Damping float64 `yaml:"damping"` // horizontal velocity retained per step
}

type Player struct {
	MaxHealth float64 `yaml:"max_health"`
	MaxFood   float64 `yaml:"max_food"`

	MoveImpulse  float64 `yaml:"move_impulse"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	JumpSlowdown float64 `yaml:"jump_slowdown"` // horizontal divisor on jump

	MineFoodCost   float64 `yaml:"mine_food_cost"`
	MineHealthCost float64 `yaml:"mine_health_cost"`

	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Species struct {
	StepEvery   uint64  `yaml:"step_every"` // self-propel every K steps
	Tempo       float64 `yaml:"tempo"`      // impulse magnitude at full health
	XScale      float64 `yaml:"x_scale"`    // horizontal impulse multiplier
	GravityBias float64 `yaml:"gravity_bias"`
	Health      float64 `yaml:"health"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	DropsItem   string  `yaml:"drops_item,omitempty"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Defaults mirror configs/tuning.yaml so tests and tools can run without a
// config directory.
func Defaults() Tuning {
	return Tuning{
		TickRateHz:  60,
		GridWidth:   32,
		GridHeight:  16,
		CellExpanse: 32,
		Physics: Physics{
			Gravity: 300,
			Damping: 0.9,
		},
		Player: Player{
			MaxHealth:      20,
			MaxFood:        20,
			MoveImpulse:    80,
			JumpImpulse:    150,
			JumpSlowdown:   1.5,
			MineFoodCost:   0.5,
			MineHealthCost: 2.5,
			Width:          20,
			Height:         30,
		},
		MaxStack:         64,
		ItemDespawnTicks: 3600,
		Species: map[string]Species{
			"bird":  {StepEvery: 20, Tempo: 40, XScale: 1, GravityBias: 300, Health: 10, Width: 12, Height: 12},
			"sheep": {StepEvery: 100, Tempo: 50, XScale: 2, GravityBias: 100, Health: 20, Width: 26, Height: 18, DropsItem: "wool"},
			"bee":   {StepEvery: 20, Tempo: 60, XScale: 1.5, GravityBias: 200, Health: 4, Width: 6, Height: 6},
		},
	}
}
