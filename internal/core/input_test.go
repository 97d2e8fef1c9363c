package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionJump) {
		t.Error("empty frame should not have Jump")
	}

	f.Set(ActionJump)
	f.Set(ActionLeft)
	if !f.Has(ActionJump) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestInputFrameIntent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionRight)
	f.Set(ActionRestart)

	in := f.Intent()
	if !in.MoveLeft || !in.MoveRight || in.Jump {
		t.Errorf("Intent() = %+v, expected left+right without jump", in)
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" {
		t.Errorf("ActionJump.String() = %q", ActionJump.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
