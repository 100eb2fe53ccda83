package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{}
type pongMsg struct{}

// counterModel counts pings; a ping replies with a pong, "t" starts a tick
// that never fires inside the driver and "q" quits.
type counterModel struct {
	pings, pongs int
}

func (m counterModel) Init() tea.Cmd { return func() tea.Msg { return pingMsg{} } }

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pingMsg:
		m.pings++
		return m, func() tea.Msg { return pongMsg{} }
	case pongMsg:
		m.pongs++
	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return pingMsg{} })
		case "b":
			return m, tea.Batch(
				func() tea.Msg { return pingMsg{} },
				func() tea.Msg { return pingMsg{} },
			)
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m counterModel) View() string { return "" }

func TestDriver_DrainsInitChain(t *testing.T) {
	d := New(t, counterModel{})
	d.DrainInit()

	m := d.Model.(counterModel)
	assert.Equal(t, 1, m.pings)
	assert.Equal(t, 1, m.pongs)
}

func TestDriver_BatchAndSeen(t *testing.T) {
	d := New(t, counterModel{})
	d.PressKey('b')

	m := d.Model.(counterModel)
	assert.Equal(t, 2, m.pings)
	assert.Equal(t, 2, m.pongs)
	assert.Len(t, d.Seen(func(msg tea.Msg) bool { _, ok := msg.(pongMsg); return ok }), 2)
}

func TestDriver_SkipsTimers(t *testing.T) {
	d := New(t, counterModel{})
	d.PressKey('t')
	assert.Zero(t, d.Model.(counterModel).pings)
}

func TestDriver_Run(t *testing.T) {
	d := New(t, counterModel{})
	d.Run(func() tea.Msg { return pingMsg{} })
	assert.Equal(t, 1, d.Model.(counterModel).pongs)
}

func TestDriver_Quit(t *testing.T) {
	d := New(t, counterModel{})
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('b')
	assert.Zero(t, d.Model.(counterModel).pings, "sends after quit are ignored")
}

func TestDriver_PressNamedAndTyped(t *testing.T) {
	d := New(t, counterModel{})
	d.Press("enter", "bb")
	m := d.Model.(counterModel)
	assert.Equal(t, 4, m.pings)
	assert.Len(t, d.Seen(func(msg tea.Msg) bool {
		k, ok := msg.(tea.KeyMsg)
		return ok && k.Type == tea.KeyEnter
	}), 1)
}
