// Package input maps logical keypresses to commands.
package input

// Command is a logical action resolved from a keypress.
type Command int

const (
	None Command = iota
	PlayPause
	Advance
	Retreat
	PlayRandom
	Quit
	SearchAdd
	SearchAddStay
	SearchPlay
	SearchAddAll
	ClearQueue
	ToggleShuffle

	// Search mode only.
	SelectNext
	SelectPrevious
	ConfirmSelection
	CancelSearch
)

var commandNames = map[Command]string{
	None:             "none",
	PlayPause:        "play-pause",
	Advance:          "advance",
	Retreat:          "retreat",
	PlayRandom:       "play-random",
	Quit:             "quit",
	SearchAdd:        "search-add",
	SearchAddStay:    "search-add-stay",
	SearchPlay:       "search-play",
	SearchAddAll:     "search-add-all",
	ClearQueue:       "clear-queue",
	ToggleShuffle:    "toggle-shuffle",
	SelectNext:       "select-next",
	SelectPrevious:   "select-previous",
	ConfirmSelection: "confirm-selection",
	CancelSearch:     "cancel-search",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsSearch reports whether c opens a catalog search.
func (c Command) IsSearch() bool {
	switch c {
	case SearchAdd, SearchAddStay, SearchPlay, SearchAddAll:
		return true
	default:
		return false
	}
}

// Mode is the UI state keys are resolved against.
type Mode int

const (
	// Normal is the playback display.
	Normal Mode = iota
	// Search is the modal search result browser.
	Search
)

func (m Mode) String() string {
	if m == Search {
		return "search"
	}
	return "normal"
}
