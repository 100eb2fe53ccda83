package cli

import (
	"time"

	"github.com/alexanderramin/planpin/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// showNoticeMsg asks the appModel to display a transient notice.
type showNoticeMsg struct {
	kind formatter.NoticeKind
	text string
}

// noticeExpiredMsg hides the notice with the same seq. Older ticks are
// ignored so a newer notice keeps its full duration.
type noticeExpiredMsg struct {
	seq int
}

func showNotice(kind formatter.NoticeKind, text string) tea.Cmd {
	return func() tea.Msg { return showNoticeMsg{kind: kind, text: text} }
}

// noticeBar holds the notice currently shown above the status bar.
type noticeBar struct {
	kind formatter.NoticeKind
	text string
	seq  int
}

func (n *noticeBar) show(state *SharedState, msg showNoticeMsg) tea.Cmd {
	n.seq++
	n.kind = msg.kind
	n.text = msg.text
	seq := n.seq
	return tea.Tick(state.noticeDuration(msg.kind), func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (n *noticeBar) expire(msg noticeExpiredMsg) {
	if msg.seq == n.seq {
		n.text = ""
	}
}

func (n *noticeBar) visible() bool { return n.text != "" }

func (n *noticeBar) View() string {
	if n.text == "" {
		return ""
	}
	return formatter.Notice(n.kind, n.text)
}
