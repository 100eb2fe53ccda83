package cli

import (
	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planpinHuhTheme styles forms in the site palette: the focused field in
// safety orange, everything else dimmed.
func planpinHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent := formatter.StyleHeader.UnsetBold()
	dim := formatter.StyleDim
	text := formatter.StyleFg
	bad := formatter.StyleRed

	f := &t.Focused
	f.Title = formatter.StyleHeader
	f.Description = dim
	f.SelectSelector, f.SelectedOption, f.UnselectedOption = accent, formatter.StyleGreen, text
	f.TextInput.Cursor, f.TextInput.Prompt = accent, accent
	f.TextInput.Text, f.TextInput.Placeholder = text, dim
	f.ErrorMessage, f.ErrorIndicator = bad, bad
	f.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	f.BlurredButton = dim.Padding(0, 1)

	bl := &t.Blurred
	bl.Title, bl.SelectSelector, bl.SelectedOption, bl.UnselectedOption = dim, dim, dim, dim
	bl.TextInput.Prompt, bl.TextInput.Text = dim, dim

	return t
}

// companyInput asks for the company this device signs in to.
func companyInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Company ID").
		Placeholder("your company code").
		Value(value).
		Validate(form.Field(form.Required("company ID is required")))
}

func emailInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Email").
		Placeholder("you@company.com").
		Value(value).
		Validate(form.EmailField)
}

func passwordInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(value).
		Validate(form.PasswordField)
}

// loginForm returns the sign-in form used by the login command.
func loginForm(email, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			emailInput(email),
			passwordInput(password),
		),
	).WithTheme(planpinHuhTheme()).WithShowHelp(false)
}

// loginValues backs the TUI sign-in form.
type loginValues struct {
	company  string
	email    string
	password string
}

// tuiLoginForm is loginForm with a company field in front when no company
// has been chosen yet.
func tuiLoginForm(vals *loginValues, askCompany bool) *huh.Form {
	fields := []huh.Field{}
	if askCompany {
		fields = append(fields, companyInput(&vals.company))
	}
	fields = append(fields, emailInput(&vals.email), passwordInput(&vals.password))
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(planpinHuhTheme()).
		WithShowHelp(false)
}

// taskValues backs the task dialog.
type taskValues struct {
	title       string
	description string
	category    string
	planID      string
	personID    string
}

func (v *taskValues) form() form.Task {
	return form.Task{
		Title:       v.title,
		Description: v.description,
		Category:    v.category,
		PlanID:      v.planID,
		PersonID:    v.personID,
	}
}

// taskForm builds the task dialog. The plan select is shown only when
// plans is non-empty; the person select only when users is non-empty.
func taskForm(vals *taskValues, users []domain.User, plans []*domain.Plan) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Task title").
			Value(&vals.title).
			Validate(form.TitleField),
		huh.NewText().
			Title("Description").
			Lines(3).
			Value(&vals.description).
			Validate(form.DescriptionField),
		huh.NewInput().
			Title("Category").
			Placeholder("e.g. Electrical").
			Value(&vals.category),
	}

	if len(plans) > 0 {
		options := []huh.Option[string]{huh.NewOption("No plan", "")}
		for _, p := range plans {
			options = append(options, huh.NewOption(p.DisplayName(), p.ID))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Plan").
			Options(options...).
			Value(&vals.planID))
	}

	if len(users) > 0 {
		options := []huh.Option[string]{huh.NewOption("Unassigned", "")}
		for _, u := range users {
			options = append(options, huh.NewOption(domain.CoalesceStr(u.Name, u.Email, u.ID), u.ID))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Assign to").
			Options(options...).
			Value(&vals.personID))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(planpinHuhTheme()).
		WithShowHelp(false)
}
