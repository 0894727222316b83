package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionLeft) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionLeft)
	f.Set(ActionLaunch)
	if !f.Has(ActionLeft) || !f.Has(ActionLaunch) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionRight) {
		t.Error("unset action should not be reported")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should release all actions")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}

	// Out of range actions are ignored
	f.Set(Action(-1))
	f.Set(actionCount + 3)
	if f.Has(Action(-1)) || f.Has(actionCount+3) {
		t.Error("out of range actions should be ignored")
	}
}

func TestKeyLatch(t *testing.T) {
	l := NewKeyLatch(3)
	l.Press(ActionRight)
	l.Tap(ActionLaunch)

	first := l.Frame()
	if !first.Has(ActionRight) || !first.Has(ActionLaunch) {
		t.Fatal("first frame should hold both actions")
	}

	second := l.Frame()
	if !second.Has(ActionRight) {
		t.Error("pressed action should still be held on the second frame")
	}
	if second.Has(ActionLaunch) {
		t.Error("tapped action should last a single frame")
	}

	l.Frame()
	if l.Frame().Has(ActionRight) {
		t.Error("pressed action should be released after hold ticks")
	}

	l.Press(ActionLeft)
	l.Release()
	if l.Frame().Has(ActionLeft) {
		t.Error("Release should drop held actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionLaunch.String() != "Launch" {
		t.Errorf("ActionLaunch.String() = %q", ActionLaunch.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
