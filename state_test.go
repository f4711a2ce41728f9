package hsmx_test

import (
	"testing"

	"github.com/comalice/hsmx"
)

func TestState_NameParentString(t *testing.T) {
	e := hsmx.NewEngine("e")
	parent, _ := e.MakeState("parent", nilHandler, nil)
	child, _ := e.MakeState("child", nilHandler, parent)

	if child.Name() != "child" {
		t.Errorf("Name() = %q, want %q", child.Name(), "child")
	}
	if child.Parent() != parent {
		t.Error("Parent() did not return the state passed to MakeState")
	}
	if child.String() != "child" {
		t.Errorf("String() = %q, want %q", child.String(), "child")
	}
	if parent.Parent() != e.Root() {
		t.Error("a state created with nil parent should be a child of the engine root")
	}
}

func TestEvent_String(t *testing.T) {
	cases := []struct {
		event hsmx.Event
		want  string
	}{
		{hsmx.EventInit, "INIT"},
		{hsmx.EventEntry, "ENTRY"},
		{hsmx.EventExit, "EXIT"},
		{hsmx.Event(0), "0"},
		{hsmx.Event(7), "7"},
	}
	for _, c := range cases {
		if got := c.event.String(); got != c.want {
			t.Errorf("Event(%d).String() = %q, want %q", int(c.event), got, c.want)
		}
	}
}
