package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"plus":      '+',
	"minus":     '-',
	"lbracket":  '[',
	"rbracket":  ']',
	"equals":    '=',
	"backslash": '\\',
}

// Special key names accepted in the [special_keys] section
var specialKeyNames = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"escape":    tcell.KeyEscape,
	"esc":       tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"ctrl_c":    tcell.KeyCtrlC,
	"ctrl_q":    tcell.KeyCtrlQ,
	"ctrl_r":    tcell.KeyCtrlR,
	"ctrl_g":    tcell.KeyCtrlG,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f5":        tcell.KeyF5,
}

type keymapFile struct {
	Keys        map[string]string `toml:"keys"`
	SpecialKeys map[string]string `toml:"special_keys"`
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw keymapFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry, len(raw.SpecialKeys)),
		Runes:       make(map[rune]KeyEntry, len(raw.Keys)),
	}

	for key, action := range raw.Keys {
		r, err := resolveRune(key)
		if err != nil {
			return nil, fmt.Errorf("section [keys]: %w", err)
		}
		entry, err := resolveAction(action)
		if err != nil {
			return nil, fmt.Errorf("section [keys] key %q: %w", key, err)
		}
		kt.Runes[r] = entry
	}

	for name, action := range raw.SpecialKeys {
		k, ok := specialKeyNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("section [special_keys]: unknown key %q", name)
		}
		entry, err := resolveAction(action)
		if err != nil {
			return nil, fmt.Errorf("section [special_keys] key %q: %w", name, err)
		}
		kt.SpecialKeys[k] = entry
	}

	return kt, nil
}

// resolveRune converts a TOML key to a rune, single chars or named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid key %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func resolveAction(name string) (KeyEntry, error) {
	entry, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action %q", name)
	}
	return entry, nil
}
