package input

// Dispatcher resolves keys against the keymap of the current mode.
type Dispatcher struct {
	normal *Keymap
	search *Keymap
}

// NewDispatcher creates a dispatcher with the default keymaps.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		normal: NewKeymap(DefaultNormalBindings...),
		search: NewKeymap(DefaultSearchBindings...),
	}
}

// passThrough lists the normal mode commands that stay live while a search
// is open.
var passThrough = map[Command]bool{
	PlayPause: true,
	Advance:   true,
	Retreat:   true,
}

// Dispatch returns the command for key in mode, or None when the key is
// unbound or swallowed by search mode.
func (d *Dispatcher) Dispatch(key Key, mode Mode) Command {
	if mode == Search {
		if cmd, ok := d.search.Lookup(key); ok {
			return cmd
		}
		if cmd, ok := d.normal.Lookup(key); ok && passThrough[cmd] {
			return cmd
		}
		return None
	}
	if cmd, ok := d.normal.Lookup(key); ok {
		return cmd
	}
	return None
}
