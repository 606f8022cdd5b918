package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UML Class Diagram"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	var content string
	switch m.currentView {
	case diagramView:
		content = m.renderDiagram()
	case editorView:
		content = m.renderEditor()
	case historyView:
		content = m.renderHistory()
	case queryView:
		content = m.renderQuery()
	}
	b.WriteString(contentStyle.Render(content))
	b.WriteString("\n")

	if m.message != "" {
		style := successStyle
		if m.messageErr {
			style = errorStyle
		}
		b.WriteString(contentStyle.Render(style.Render(m.message)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m model) renderTabs() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.currentView {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderDiagram() string {
	var b strings.Builder

	snap := m.wb.Snapshot()
	b.WriteString(headerStyle.Render(fmt.Sprintf("Classes: %d  Links: %d  Version: %d  Health: %s",
		snap.Len(), len(snap.Links()), snap.Version(), m.wb.Health().Status)))
	b.WriteString("\n\n")
	b.WriteString(m.classTable.View())
	b.WriteString("\n\n")

	if m.renaming {
		b.WriteString("Rename: ")
		b.WriteString(m.renameInput.View())
		b.WriteString("\n\n")
	}

	selected, hasSelection := m.wb.Selected()
	nodes := m.wb.Canvas().Nodes()
	boxes := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines := []string{lipgloss.NewStyle().Bold(true).Render(n.ClassName)}
		lines = append(lines, strings.Repeat("─", lipgloss.Width(n.ClassName)))
		lines = append(lines, n.Attributes...)
		lines = append(lines, strings.Repeat("─", lipgloss.Width(n.ClassName)))
		lines = append(lines, n.Methods...)

		style := classBoxStyle
		if hasSelection && n.Key == selected.ID {
			style = selectedBoxStyle
		}
		boxes = append(boxes, style.Render(strings.Join(lines, "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	return b.String()
}

func (m model) renderEditor() string {
	rec, ok := m.wb.Selected()
	if !ok {
		return "No class selected. Pick one on the Diagram tab with enter."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(rec.Name))
	b.WriteString("\n\n")

	b.WriteString("Attributes\n")
	for i, a := range rec.Attributes {
		b.WriteString(m.memberLine(i, a.String()))
	}
	b.WriteString("\nMethods\n")
	for i, mt := range rec.Methods {
		b.WriteString(m.memberLine(len(rec.Attributes)+i, mt.String()))
	}

	if m.formKind != form.KindNone {
		b.WriteString("\n")
		b.WriteString(m.renderForm(rec))
	}
	return b.String()
}

func (m model) memberLine(i int, text string) string {
	if i == m.memberCursor && m.formKind == form.KindNone {
		return cursorStyle.Render("> "+text) + "\n"
	}
	return "  " + text + "\n"
}

func (m model) renderForm(rec uml.ClassRecord) string {
	title := "New " + m.formKind.String()
	if target, ok := m.editTarget(); ok {
		title = fmt.Sprintf("Edit %s %d of %s", m.formKind, target, rec.Name)
	}

	labels := attributeFields
	if m.formKind == form.KindMethod {
		labels = methodFields
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	for i, in := range m.formInputs {
		b.WriteString(fmt.Sprintf("%-20s %s\n", labels[i], in.View()))
	}
	b.WriteString("\nenter: save  tab: next field  esc: cancel\n")
	return b.String()
}

// editTarget returns the member position under edit, if the open form edits
// an existing member.
func (m model) editTarget() (int, bool) {
	switch m.formKind {
	case form.KindAttribute:
		if d, ok := m.wb.AttributeDraft(); ok {
			return d.Target.Index()
		}
	case form.KindMethod:
		if d, ok := m.wb.MethodDraft(); ok {
			return d.Target.Index()
		}
	}
	return 0, false
}

func (m model) renderHistory() string {
	var b strings.Builder
	h := m.wb.History()
	b.WriteString(headerStyle.Render(fmt.Sprintf("Events: %d retained, %d total", h.Len(), h.Total())))
	b.WriteString("\n\n")
	b.WriteString(m.historyTable.View())
	return b.String()
}

func (m model) renderQuery() string {
	var b strings.Builder
	b.WriteString("GraphQL Query:\n")
	b.WriteString(m.queryInput.View())
	b.WriteString("\n\nenter: focus/execute  esc: leave input\n")

	if m.queryResult != "" {
		b.WriteString("\n")
		b.WriteString(m.queryResult)
	}
	return b.String()
}
