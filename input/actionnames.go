package input

import "github.com/lixenwraith/pixelweave/pattern"

// actionRegistry maps canonical action names to KeyEntry structs
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	reg := map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		"quit":         {IntentType: IntentQuit},
		"pause":        {IntentType: IntentPause},
		"mute":         {IntentType: IntentMute},
		"generate":     {IntentType: IntentGenerate},
		"clear":        {IntentType: IntentClear},
		"grow":         {IntentType: IntentGrow},
		"shrink":       {IntentType: IntentShrink},
		"next_color":   {IntentType: IntentNextColor},
		"prev_color":   {IntentType: IntentPrevColor},
		"random_color": {IntentType: IntentRandomColor},
	}

	for _, k := range pattern.Kinds() {
		reg["pattern_"+k.String()] = KeyEntry{IntentType: IntentSelectPattern, Pattern: k}
	}
	return reg
}

// ActionNames returns every bindable action name
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
