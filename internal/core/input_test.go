package core

import "testing"

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionNone)
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	expected := []Action{ActionLeft, ActionLeft, ActionRotate}
	if len(f.Actions) != len(expected) {
		t.Fatalf("len(Actions) = %d, expected %d", len(f.Actions), len(expected))
	}
	for i, a := range expected {
		if f.Actions[i] != a {
			t.Errorf("Actions[%d] = %v, expected %v", i, f.Actions[i], a)
		}
	}
	if !f.Has(ActionRotate) || f.Has(ActionPause) {
		t.Error("Has() returned wrong membership")
	}
}

func TestInputFrameCloneAndClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	clone := f.Clone()

	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
	if !clone.Has(ActionPause) {
		t.Error("Clone() should not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionSoftDropStart.String() != "SoftDropStart" {
		t.Errorf("String() = %q", ActionSoftDropStart.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() = %q, expected Unknown", Action(99).String())
	}
}
