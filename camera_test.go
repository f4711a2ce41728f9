package hsmx_test

import (
	"testing"

	"github.com/comalice/hsmx"
)

// camera ports the seed example from SPEC_FULL.md §8 (itself a direct port
// of original_source/examples/ex2/camera.py): Off, On, On.Shoot, On.Disp,
// On.Disp.Play, On.Disp.Menu, with an observable side-effect tape standing
// in for the example's print() calls.
type camera struct {
	tape []string

	eng                                               *hsmx.Engine
	off, on, onShoot, onDisp, onDispPlay, onDispMenu *hsmx.State
}

const (
	evtPWR hsmx.Event = iota
	evtRELEASE
	evtMODE
	evtLOWBATT
)

func (c *camera) log(msg string) {
	c.tape = append(c.tape, msg)
}

func newCamera() *camera {
	c := &camera{}
	c.eng = hsmx.NewEngine("Canon")

	c.off, _ = c.eng.MakeState("Off", c.offHandler, nil)
	c.on, _ = c.eng.MakeState("On", c.onHandler, nil)
	c.onShoot, _ = c.eng.MakeState("On.Shoot", c.onShootHandler, c.on)
	c.onDisp, _ = c.eng.MakeState("On.Disp", c.onDispHandler, c.on)
	c.onDispPlay, _ = c.eng.MakeState("On.Disp.Play", c.onDispPlayHandler, c.onDisp)
	c.onDispMenu, _ = c.eng.MakeState("On.Disp.Menu", c.onDispMenuHandler, c.onDisp)

	_ = c.eng.SetInitial(c.off)
	return c
}

func (c *camera) offHandler(eng *hsmx.Engine, event hsmx.Event, param any) *hsmx.Event {
	switch event {
	case hsmx.EventEntry:
		c.log("Enter Low Power Mode")
		return nil
	case hsmx.EventExit:
		c.log("Exit Low Power Mode")
		return nil
	case evtPWR:
		eng.Tran(c.on, param, nil)
		return nil
	}
	return hsmx.Unhandled(event)
}

func (c *camera) onHandler(eng *hsmx.Engine, event hsmx.Event, param any) *hsmx.Event {
	switch event {
	case hsmx.EventEntry:
		c.log("Open Lens")
		return nil
	case hsmx.EventExit:
		c.log("Close Lens")
		return nil
	case hsmx.EventInit:
		eng.Tran(c.onShoot, param, nil)
		return nil
	case evtPWR:
		eng.Tran(c.off, param, nil)
		return nil
	case evtLOWBATT:
		c.log("Beep low battery warning")
		return nil
	}
	return hsmx.Unhandled(event)
}

func (c *camera) onShootHandler(eng *hsmx.Engine, event hsmx.Event, param any) *hsmx.Event {
	switch event {
	case hsmx.EventEntry:
		c.log("Enable Sensor")
		return nil
	case hsmx.EventExit:
		c.log("Disable Sensor")
		return nil
	case evtRELEASE:
		c.log("CLICK!, save photo")
		return nil
	case evtMODE:
		eng.Tran(c.onDispPlay, param, nil)
		return nil
	}
	return hsmx.Unhandled(event)
}

func (c *camera) onDispHandler(_ *hsmx.Engine, event hsmx.Event, _ any) *hsmx.Event {
	switch event {
	case hsmx.EventEntry:
		c.log("Turn on LCD")
		return nil
	case hsmx.EventExit:
		c.log("Turn off LCD")
		return nil
	}
	return hsmx.Unhandled(event)
}

func (c *camera) onDispPlayHandler(eng *hsmx.Engine, event hsmx.Event, param any) *hsmx.Event {
	switch event {
	case hsmx.EventEntry:
		c.log("Display Pictures")
		return nil
	case evtMODE:
		eng.Tran(c.onDispMenu, param, nil)
		return nil
	}
	return hsmx.Unhandled(event)
}

func (c *camera) onDispMenuHandler(eng *hsmx.Engine, event hsmx.Event, param any) *hsmx.Event {
	switch event {
	case hsmx.EventEntry:
		c.log("Display Menu")
		return nil
	case evtMODE:
		eng.Tran(c.onShoot, param, nil)
		return nil
	}
	return hsmx.Unhandled(event)
}

func TestCameraScenario(t *testing.T) {
	c := newCamera()

	steps := []struct {
		event    hsmx.Event
		expected []string
	}{
		{evtPWR, []string{"Exit Low Power Mode", "Open Lens", "Enable Sensor"}},
		{evtRELEASE, []string{"CLICK!, save photo"}},
		{evtRELEASE, []string{"CLICK!, save photo"}},
		{evtMODE, []string{"Disable Sensor", "Turn on LCD", "Display Pictures"}},
		{evtRELEASE, nil}, // dropped by root: no handler on the On.Disp.Play path
		{evtMODE, []string{"Display Menu"}},
		{evtLOWBATT, []string{"Beep low battery warning"}},
		{evtPWR, []string{"Turn off LCD", "Close Lens", "Enter Low Power Mode"}},
	}

	for i, step := range steps {
		c.tape = nil
		c.eng.Run(step.event, nil)
		if !equalTapes(c.tape, step.expected) {
			t.Errorf("step %d (event %v): got tape %v, want %v", i+1, step.event, c.tape, step.expected)
		}
	}

	if c.eng.Current() != c.off {
		t.Errorf("final state = %v, want Off", c.eng.Current())
	}
}

func equalTapes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCamera_IsIn(t *testing.T) {
	c := newCamera()
	c.eng.Run(evtPWR, nil) // Off -> On -> On.Shoot

	if !c.eng.IsIn(c.onShoot) {
		t.Error("should be in On.Shoot")
	}
	if !c.eng.IsIn(c.on) {
		t.Error("On.Shoot's ancestor On should report IsIn true")
	}
	if c.eng.IsIn(c.onDisp) {
		t.Error("should not be in On.Disp")
	}
	if !c.eng.IsIn(c.eng.Root()) {
		t.Error("root is an ancestor of every state")
	}
}
