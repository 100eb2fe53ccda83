package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planpin/internal/domain"
)

// FormatPlanList renders the plans of a project inside a bordered box.
func FormatPlanList(plans []*domain.Plan) string {
	if len(plans) == 0 {
		return Dim("No plans in this project.") + "\n"
	}
	headers := []string{"ID", "CODE", "NAME", "IMAGE"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			TruncID(p.ID),
			StyleGreen.Render(Placeholder(p.Code)),
			Bold(Placeholder(p.Name)),
			Dim(Truncate(p.ImageURL, 40)),
		})
	}
	return RenderBox("Plans", RenderTable(headers, rows))
}

// FormatPinList renders the pins of a plan in source order. A non-empty
// query is shown in the title so an empty result reads as "no matches".
func FormatPinList(plan *domain.Plan, pins []domain.Pin, query string) string {
	title := "Pins · " + plan.DisplayName()
	if query != "" {
		title += fmt.Sprintf(" · %q", query)
	}
	if len(pins) == 0 {
		msg := "No pins on this plan."
		if query != "" {
			msg = "No pins match."
		}
		return RenderBox(title, Dim(msg))
	}

	headers := []string{"#", "TASK", "X", "Y"}
	rows := make([][]string, 0, len(pins))
	for i, p := range pins {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			PinTitle(p),
			Percent(p.Position.X),
			Percent(p.Position.Y),
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatTaskList renders project tasks with their category and plan.
func FormatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks in this project.") + "\n"
	}
	headers := []string{"ID", "TITLE", "CATEGORY", "PLAN"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			StylePurple.Render(Placeholder(t.Category)),
			Dim(Placeholder(t.PlanID)),
		})
	}
	return RenderBox("Tasks", RenderTable(headers, rows))
}

// FormatSession renders who is signed in and for which company.
func FormatSession(s *domain.Session, companyID string) string {
	var b strings.Builder
	b.WriteString(Header("Account") + "\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Company:"), Placeholder(companyID))
	if !s.Authenticated() {
		fmt.Fprintf(&b, "%s %s\n", Dim("User:   "), StyleYellow.Render("not signed in"))
		return b.String()
	}
	name := s.User.DisplayName()
	fmt.Fprintf(&b, "%s %s\n", Dim("User:   "), StyleGreen.Render(name))
	return b.String()
}
