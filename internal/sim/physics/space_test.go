package physics

import (
	"math"
	"testing"
)

func TestStep_FallsAndRestsOnStatic(t *testing.T) {
	s := NewSpace(300, 0.9)
	floor := s.AddBody("wall", Vec2{200, 32}, Vec2{100, 116}, true)
	body := s.AddBody("player", Vec2{20, 30}, Vec2{100, 50}, false)

	for i := 0; i < 300; i++ {
		s.Step(1.0 / 60.0)
	}

	wantY := floor.Bounds().MinY - 15
	if got := body.Position().Y; math.Abs(got-wantY) > 1e-9 {
		t.Fatalf("rest position Y = %v, want %v", got, wantY)
	}
	if v := body.Velocity().Y; v != 0 {
		t.Fatalf("vertical velocity after rest = %v, want 0", v)
	}
}

func TestStep_HorizontalBlockedByStatic(t *testing.T) {
	s := NewSpace(0, 1)
	wall := s.AddBody("wall", Vec2{32, 200}, Vec2{200, 100}, true)
	body := s.AddBody("player", Vec2{20, 30}, Vec2{100, 100}, false)
	body.SetVelocity(Vec2{X: 600})

	for i := 0; i < 60; i++ {
		s.Step(1.0 / 60.0)
	}

	wantX := wall.Bounds().MinX - 10
	if got := body.Position().X; math.Abs(got-wantX) > 1e-9 {
		t.Fatalf("blocked position X = %v, want %v", got, wantX)
	}
	if v := body.Velocity().X; v != 0 {
		t.Fatalf("horizontal velocity after block = %v, want 0", v)
	}
}

func TestStep_DampingDecaysHorizontalVelocity(t *testing.T) {
	s := NewSpace(0, 0.5)
	body := s.AddBody("player", Vec2{10, 10}, Vec2{0, 0}, false)
	body.SetVelocity(Vec2{X: 64})

	s.Step(1.0 / 60.0)
	if v := body.Velocity().X; v != 32 {
		t.Fatalf("velocity after one damped step = %v, want 32", v)
	}
}

func TestOnBegin_FiresOncePerContact(t *testing.T) {
	s := NewSpace(0, 1)
	a := s.AddBody("player", Vec2{20, 20}, Vec2{0, 0}, false)
	b := s.AddBody("item", Vec2{20, 20}, Vec2{100, 0}, false)

	fired := 0
	s.OnBegin("player", "item", func(first, second *Body) bool {
		if first != a || second != b {
			t.Fatalf("handler argument order: got (%s,%s)", first.Category(), second.Category())
		}
		fired++
		return false
	})

	// Not touching yet.
	s.Step(1.0 / 60.0)
	if fired != 0 {
		t.Fatalf("handler fired before contact")
	}

	b.SetPosition(Vec2{10, 0})
	s.Step(1.0 / 60.0)
	s.Step(1.0 / 60.0)
	if fired != 1 {
		t.Fatalf("handler fired %d times while touching, want 1", fired)
	}

	// Separate and touch again: a new contact.
	b.SetPosition(Vec2{100, 0})
	s.Step(1.0 / 60.0)
	b.SetPosition(Vec2{10, 0})
	s.Step(1.0 / 60.0)
	if fired != 2 {
		t.Fatalf("handler fired %d times after re-contact, want 2", fired)
	}
}

func TestOnBegin_SolidContactSeparates(t *testing.T) {
	s := NewSpace(0, 1)
	s.AddBody("player", Vec2{20, 20}, Vec2{0, 0}, false)
	item := s.AddBody("item", Vec2{20, 20}, Vec2{15, 0}, false)

	s.OnBegin("player", "item", func(a, b *Body) bool { return true })
	s.Step(1.0 / 60.0)

	if item.Position().X != 20 {
		t.Fatalf("separated item X = %v, want 20", item.Position().X)
	}
}

func TestOnBegin_VoidedContactOverlaps(t *testing.T) {
	s := NewSpace(0, 1)
	player := s.AddBody("player", Vec2{20, 20}, Vec2{0, 0}, false)
	item := s.AddBody("item", Vec2{20, 20}, Vec2{15, 0}, false)

	s.OnBegin("player", "item", func(a, b *Body) bool { return false })
	s.Step(1.0 / 60.0)

	if !player.Bounds().Overlaps(item.Bounds()) {
		t.Fatal("voided contact should leave the bodies overlapping")
	}
}

func TestRemoveBody_HandlerMayRemoveMidStep(t *testing.T) {
	s := NewSpace(0, 1)
	s.AddBody("player", Vec2{20, 20}, Vec2{0, 0}, false)
	item := s.AddBody("item", Vec2{20, 20}, Vec2{10, 0}, false)

	s.OnBegin("player", "item", func(a, b *Body) bool {
		s.RemoveBody(b)
		return false
	})
	s.Step(1.0 / 60.0)

	if item.InSpace() {
		t.Fatal("item should be detached after handler removal")
	}
	if len(s.Bodies()) != 1 {
		t.Fatalf("bodies left = %d, want 1", len(s.Bodies()))
	}
}
