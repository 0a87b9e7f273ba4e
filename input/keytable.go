package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixelweave/pattern"
)

// KeyEntry binds a key to an intent
type KeyEntry struct {
	IntentType IntentType
	Pattern    pattern.Kind
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {IntentType: IntentQuit},
			tcell.KeyEscape: {IntentType: IntentQuit},
			tcell.KeyEnter:  {IntentType: IntentGenerate},
		},
		Runes: map[rune]KeyEntry{
			'q': {IntentType: IntentQuit},
			'p': {IntentType: IntentPause},
			' ': {IntentType: IntentGenerate},
			'c': {IntentType: IntentClear},
			'C': {IntentType: IntentClear},
			'm': {IntentType: IntentMute},
			'1': {IntentType: IntentSelectPattern, Pattern: pattern.Random},
			'2': {IntentType: IntentSelectPattern, Pattern: pattern.Clusters},
			'3': {IntentType: IntentSelectPattern, Pattern: pattern.Gradient},
			'4': {IntentType: IntentSelectPattern, Pattern: pattern.Geometric},
			'5': {IntentType: IntentSelectPattern, Pattern: pattern.Organic},
			'+': {IntentType: IntentGrow},
			'=': {IntentType: IntentGrow},
			'-': {IntentType: IntentShrink},
			']': {IntentType: IntentNextColor},
			'[': {IntentType: IntentPrevColor},
			'x': {IntentType: IntentRandomColor},
		},
	}
}

// MergeKeyTable applies sparse override entries onto base
// An override bound to IntentNone removes the base binding
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	if override == nil {
		return base
	}
	for k, e := range override.SpecialKeys {
		if e.IntentType == IntentNone {
			delete(base.SpecialKeys, k)
			continue
		}
		base.SpecialKeys[k] = e
	}
	for r, e := range override.Runes {
		if e.IntentType == IntentNone {
			delete(base.Runes, r)
			continue
		}
		base.Runes[r] = e
	}
	return base
}
