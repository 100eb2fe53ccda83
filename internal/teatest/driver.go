// Package teatest drives a bubbletea model synchronously in tests.
//
// The Driver stands in for tea.Program: each message goes straight to
// Update and every Cmd it returns is run to completion before Send returns.
// Cmds that wait on a timer (cursor blink, tea.Tick) outlive cmdTimeout and
// are dropped, so time-based messages such as notice expiry never arrive.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many follow-up Cmds one Send may chain.
const MaxDrainDepth = 100

// cmdTimeout is how long a Cmd may run before the driver gives up on it.
const cmdTimeout = 50 * time.Millisecond

// Driver feeds messages to a tea.Model and drains the Cmds it returns.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting reports that tea.Quit ran. The runtime normally swallows
	// tea.QuitMsg, so models rarely record it themselves.
	Quitting bool

	seen []tea.Msg
}

// Option configures a Driver in New.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Init is not run until DrainInit.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.Run(d.Model.Init())
}

// Send delivers msg and drains the result. Sends after a quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

// Run executes cmd as though Update had returned it.
func (d *Driver) Run(cmd tea.Cmd) {
	d.T.Helper()
	d.drain(cmd, 0)
}

// Seen lists every delivered message for which match is true.
func (d *Driver) Seen(match func(tea.Msg) bool) []tea.Msg {
	var out []tea.Msg
	for _, m := range d.seen {
		if match(m) {
			out = append(out, m)
		}
	}
	return out
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
}

// Press sends keys by name ("enter", "esc", "ctrl+c", ...). Any other
// string is typed one rune at a time.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		if kt, ok := namedKeys[k]; ok {
			d.Send(tea.KeyMsg{Type: kt})
			continue
		}
		d.Type(k)
	}
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s rune by rune.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter() { d.Press("enter") }
func (d *Driver) PressEsc()   { d.Press("esc") }
func (d *Driver) PressCtrlC() { d.Press("ctrl+c") }
func (d *Driver) PressTab()   { d.Press("tab") }
func (d *Driver) PressDown()  { d.Press("down") }
func (d *Driver) PressRight() { d.Press("right") }

func (d *Driver) deliver(msg tea.Msg, depth int) {
	d.seen = append(d.seen, msg)
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	if _, ok := msg.(tea.QuitMsg); ok {
		d.Quitting = true
		return
	}
	d.drain(next, depth+1)
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: gave up after %d chained commands", MaxDrainDepth)
		return
	}

	switch msg := await(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	default:
		if isBlink(msg) {
			return
		}
		d.deliver(msg, depth)
	}
}

// await runs cmd on its own goroutine and returns nil when it takes
// longer than cmdTimeout.
func await(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported blink messages of bubbles/cursor, which
// chain into timer Cmds if delivered.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
