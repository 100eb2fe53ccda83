package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	tea "github.com/charmbracelet/bubbletea"
)

// loginResultMsg carries the outcome of the TUI sign-in form.
type loginResultMsg struct {
	sess        *domain.Session
	err         error
	needCompany bool
}

// newLoginView returns the sign-in wizard. askCompany adds a company
// field for devices that have not chosen one.
func newLoginView(state *SharedState, askCompany bool) View {
	vals := &loginValues{}
	return newWizardView("Sign in", tuiLoginForm(vals, askCompany),
		func() tea.Cmd { return submitLogin(state, vals, askCompany) },
		nil,
	)
}

// submitLogin stores the company when it was asked for, then signs in.
func submitLogin(state *SharedState, vals *loginValues, askCompany bool) tea.Cmd {
	auth := state.App.Auth
	return func() tea.Msg {
		ctx := context.Background()
		if askCompany {
			if err := auth.SetCompany(ctx, vals.company); err != nil {
				return loginResultMsg{err: err, needCompany: true}
			}
		}
		sess, err := auth.Login(ctx, form.Login{Email: vals.email, Password: vals.password})
		if err != nil {
			var fe form.FieldErrors
			if !errors.As(err, &fe) {
				err = errors.New(api.Message(err))
			}
			return loginResultMsg{err: err}
		}
		return loginResultMsg{sess: sess}
	}
}
