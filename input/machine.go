package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine parses tcell events into semantic Intent
// Mouse buttons are edge triggered: holding a button yields one intent per press
type Machine struct {
	keyTable *KeyTable

	// Button state of the previous mouse event
	buttons tcell.ButtonMask
}

// NewMachine creates a machine with the default key bindings
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// NewMachineWithKeys creates a machine with the given key bindings
func NewMachineWithKeys(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Reset forgets mouse button state
func (m *Machine) Reset() {
	m.buttons = tcell.ButtonNone
}

// Process parses a tcell event and returns an Intent
// Returns nil for events without a binding
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyRune {
		// Alt/Ctrl chords are not bound
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return nil
		}
		if entry, ok := m.keyTable.Runes[ev.Rune()]; ok {
			return &Intent{Type: entry.IntentType, Pattern: entry.Pattern}
		}
		return nil
	}

	if entry, ok := m.keyTable.SpecialKeys[ev.Key()]; ok {
		return &Intent{Type: entry.IntentType, Pattern: entry.Pattern}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	btn := ev.Buttons()
	pressed := btn &^ m.buttons
	m.buttons = btn

	x, y := ev.Position()
	switch {
	case pressed&tcell.Button1 != 0:
		return &Intent{Type: IntentMouseLeftDown, X: x, Y: y}
	case pressed&tcell.Button2 != 0:
		return &Intent{Type: IntentMouseRightDown, X: x, Y: y}
	}
	return nil
}
