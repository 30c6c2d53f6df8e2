package core

import "testing"

func TestSwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   Action
	}{
		{"inside dead zone", 1, -1, ActionNone},
		{"no movement", 0, 0, ActionNone},
		{"right", 5, 1, ActionRight},
		{"left", -4, 2, ActionLeft},
		{"down", 1, 3, ActionDown},
		{"up", -1, -6, ActionUp},
		{"tie prefers vertical", 3, -3, ActionUp},
		{"exactly min distance", 2, 0, ActionRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Swipe(tt.dx, tt.dy, DefaultSwipeDistance); got != tt.want {
				t.Errorf("Swipe(%d, %d) = %v, expected %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionUp)
	f.Set(ActionRestart)
	if !f.Has(ActionUp) || !f.Has(ActionRestart) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionDown) {
		t.Error("unset action reported")
	}

	f.Clear()
	if f.Has(ActionUp) {
		t.Error("Clear() should reset actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionContinue.String() != "Continue" {
		t.Errorf("ActionContinue.String() = %q", ActionContinue.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(99).String())
	}
}

func TestRectHelpers(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("Right/Bottom = %d/%d", r.Right(), r.Bottom())
	}
	if c := CenteredRect(10, 10, 4, 2); c.X != 8 || c.Y != 9 || c.W != 4 || c.H != 2 {
		t.Errorf("CenteredRect(10, 10, 4, 2) = %+v", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{12, 0, 10, 10},
		{-1, 0, 10, 0},
		{5, 0, 10, 5},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}
