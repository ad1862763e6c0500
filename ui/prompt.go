package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/yhkl-dev/navistream/input"
)

// SearchPrompt is the one-line query field opened by the search commands.
// Its methods run on the UI goroutine.
type SearchPrompt struct {
	field    *tview.InputField
	cmd      input.Command
	active   bool
	onSubmit func(cmd input.Command, query string)
	onClose  func()
}

// NewSearchPrompt creates a closed prompt. onSubmit receives the query
// when Enter is pressed; onClose runs when the prompt is cancelled.
func NewSearchPrompt(onSubmit func(input.Command, string), onClose func()) *SearchPrompt {
	p := &SearchPrompt{
		onSubmit: onSubmit,
		onClose:  onClose,
	}

	p.field = tview.NewInputField().
		SetFieldWidth(0).
		SetFieldBackgroundColor(tcell.ColorDefault)

	p.field.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			p.submit()
		case tcell.KeyEscape:
			p.Cancel()
		}
	})

	return p
}

// Field is the widget to lay out.
func (p *SearchPrompt) Field() *tview.InputField {
	return p.field
}

// Active reports whether the prompt is open.
func (p *SearchPrompt) Active() bool {
	return p.active
}

// Open shows an empty prompt for cmd.
func (p *SearchPrompt) Open(cmd input.Command) {
	p.cmd = cmd
	p.active = true
	p.field.SetLabel(promptLabel(cmd))
	p.field.SetText("")
}

func (p *SearchPrompt) submit() {
	if !p.active {
		return
	}
	p.active = false
	p.onSubmit(p.cmd, p.field.GetText())
}

// Cancel closes the prompt without searching.
func (p *SearchPrompt) Cancel() {
	if !p.active {
		return
	}
	p.active = false
	p.onClose()
}

func promptLabel(cmd input.Command) string {
	switch cmd {
	case input.SearchAddStay:
		return "Add (multiple): "
	case input.SearchPlay:
		return "Play: "
	case input.SearchAddAll:
		return "Add all: "
	default:
		return "Add: "
	}
}
