package input

import (
	"github.com/gdamore/tcell/v2"
)

// Key is one logical keypress: a special key, or a character when Code is
// tcell.KeyRune.
type Key struct {
	Code tcell.Key
	Rune rune
}

// RuneKey returns the Key for a character.
func RuneKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// SpecialKey returns the Key for a non-character key.
func SpecialKey(code tcell.Key) Key {
	return Key{Code: code}
}

// FromEvent converts a terminal key event, already mapped from its escape
// sequence by tcell, into a Key.
func FromEvent(event *tcell.EventKey) Key {
	if event.Key() == tcell.KeyRune {
		return RuneKey(event.Rune())
	}
	return SpecialKey(event.Key())
}

// KeyBinding maps a set of keys to a single command.
type KeyBinding struct {
	Command Command
	Keys    []tcell.Key // for special keys like arrows, enter, esc
	Runes   []rune      // for character keys
}

// Keymap resolves keys to commands.
type Keymap struct {
	bindings map[tcell.Key]Command // special key -> command
	runeMap  map[rune]Command      // rune -> command
}

// NewKeymap creates a keymap from bindings. Later bindings win on conflicts.
func NewKeymap(bindings ...KeyBinding) *Keymap {
	km := &Keymap{
		bindings: make(map[tcell.Key]Command),
		runeMap:  make(map[rune]Command),
	}
	for _, b := range bindings {
		km.RegisterKeyBinding(b)
	}
	return km
}

// RegisterKeyBinding registers a single key binding.
func (km *Keymap) RegisterKeyBinding(b KeyBinding) {
	for _, key := range b.Keys {
		km.bindings[key] = b.Command
	}
	for _, r := range b.Runes {
		km.runeMap[r] = b.Command
	}
}

// Lookup returns the command bound to key.
func (km *Keymap) Lookup(key Key) (Command, bool) {
	if key.Code == tcell.KeyRune {
		cmd, ok := km.runeMap[key.Rune]
		return cmd, ok
	}
	cmd, ok := km.bindings[key.Code]
	return cmd, ok
}

// DefaultNormalBindings are the playback display keys.
var DefaultNormalBindings = []KeyBinding{
	{Command: PlayPause, Runes: []rune{' '}},
	{Command: Advance, Keys: []tcell.Key{tcell.KeyRight}, Runes: []rune{'>'}},
	{Command: Retreat, Keys: []tcell.Key{tcell.KeyLeft}, Runes: []rune{'<'}},
	{Command: PlayRandom, Runes: []rune{'z'}},
	{Command: Quit, Keys: []tcell.Key{tcell.KeyCtrlC}, Runes: []rune{'Q'}},
	{Command: SearchAdd, Runes: []rune{'a'}},
	{Command: SearchAddStay, Runes: []rune{'A'}},
	{Command: SearchPlay, Runes: []rune{'s'}},
	{Command: SearchAddAll, Runes: []rune{'b'}},
	{Command: ClearQueue, Runes: []rune{'c'}},
	{Command: ToggleShuffle, Runes: []rune{'x'}},
}

// DefaultSearchBindings are the keys local to search mode.
var DefaultSearchBindings = []KeyBinding{
	{Command: SelectNext, Keys: []tcell.Key{tcell.KeyDown}, Runes: []rune{'j'}},
	{Command: SelectPrevious, Keys: []tcell.Key{tcell.KeyUp}, Runes: []rune{'k'}},
	{Command: ConfirmSelection, Keys: []tcell.Key{tcell.KeyEnter}},
	{Command: CancelSearch, Keys: []tcell.Key{tcell.KeyEscape}, Runes: []rune{'q'}},
}
