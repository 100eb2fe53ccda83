package cli

import (
	"time"

	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/config"
	"github.com/alexanderramin/planpin/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active tab in the tab bar.
	Tab Tab

	// Project whose plans and tasks are listed. Empty means the service
	// falls back to the last used project.
	ProjectID string

	// Signed-in user, set once the session check or login succeeds.
	Session *domain.Session

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator), tab bar (1 line)
// and status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

func (s *SharedState) notices() config.Notices {
	n := s.App.Notices
	if n.SuccessMs <= 0 && n.InfoMs <= 0 && n.ErrorMs <= 0 {
		return config.Default().Notice
	}
	return n
}

// noticeDuration returns how long a notice of the given kind stays visible.
func (s *SharedState) noticeDuration(kind formatter.NoticeKind) time.Duration {
	n := s.notices()
	switch kind {
	case formatter.NoticeSuccess:
		return n.Success()
	case formatter.NoticeError:
		return n.Error()
	default:
		return n.Info()
	}
}
