package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gql "github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/graphql"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
	"github.com/dd0wney/cluso-classdiagram/pkg/workbench"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	classBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFD700")).
			Padding(0, 1).
			MarginRight(1)

	selectedBoxStyle = classBoxStyle.
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("#FF00FF"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF00FF")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	diagramView view = iota
	editorView
	historyView
	queryView
	viewCount
)

var viewNames = []string{"Diagram", "Editor", "History", "Query"}

type keyMap struct {
	Tab       key.Binding
	ShiftTab  key.Binding
	Enter     key.Binding
	Esc       key.Binding
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	AddClass  key.Binding
	Delete    key.Binding
	Rename    key.Binding
	Attribute key.Binding
	Method    key.Binding
	Edit      key.Binding
	Remove    key.Binding
}

var keys = keyMap{
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	ShiftTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/submit")),
	Esc:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	AddClass:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new class")),
	Delete:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete class")),
	Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	Attribute: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add attribute")),
	Method:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "add method")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit member")),
	Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove member")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Esc, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter, k.Esc},
		{k.Up, k.Down, k.AddClass, k.Delete, k.Rename},
		{k.Attribute, k.Method, k.Edit, k.Remove},
		{k.Quit},
	}
}

// member form field order
var (
	attributeFields = []string{"visibility (+ - #)", "name", "type"}
	methodFields    = []string{"visibility (+ - #)", "name", "return type", "args (a, b)"}
)

type modelChangedMsg workbench.Event

const queryTimeout = 5 * time.Second

type model struct {
	ctx     context.Context
	wb      *workbench.Workbench
	schema  gql.Schema
	changes <-chan workbench.Event

	currentView  view
	classTable   table.Model
	historyTable table.Model
	help         help.Model
	keys         keyMap

	memberCursor int

	// open form, if any
	formKind   form.Kind
	formInputs []textinput.Model
	formFocus  int

	renaming    bool
	renameInput textinput.Model

	queryInput  textinput.Model
	queryResult string

	width      int
	height     int
	message    string
	messageErr bool
}

func initialModel(ctx context.Context, wb *workbench.Workbench) (model, error) {
	schema, err := graphql.GenerateSchema(wb)
	if err != nil {
		return model{}, err
	}

	classTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Class", Width: 20},
			{Title: "Attributes", Width: 10},
			{Title: "Methods", Width: 8},
			{Title: "Location", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	historyTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Time", Width: 10},
			{Title: "Action", Width: 8},
			{Title: "Resource", Width: 10},
			{Title: "Member", Width: 14},
			{Title: "Source", Width: 8},
			{Title: "Status", Width: 8},
			{Title: "Error", Width: 40},
		}),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	classTable.SetStyles(s)
	historyTable.SetStyles(s)

	qi := textinput.New()
	qi.Placeholder = "{ classes { name attributes { display } } }"
	qi.CharLimit = 400
	qi.Width = 70

	ri := textinput.New()
	ri.Placeholder = uml.DefaultClassName
	ri.CharLimit = 60
	ri.Width = 30

	m := model{
		ctx:          ctx,
		wb:           wb,
		schema:       schema,
		currentView:  diagramView,
		classTable:   classTable,
		historyTable: historyTable,
		help:         help.New(),
		keys:         keys,
		renameInput:  ri,
		queryInput:   qi,
	}
	m.refresh()
	return m, nil
}

// waitForChange blocks on the workbench subscription.
func waitForChange(ch <-chan workbench.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return modelChangedMsg(e)
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case modelChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.formKind != form.KindNone:
			return m.updateForm(msg)
		case m.renaming:
			return m.updateRename(msg)
		case m.currentView == queryView && m.queryInput.Focused():
			return m.updateQuery(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.switchView((m.currentView + 1) % viewCount)
		if m.currentView == queryView {
			cmd = m.queryInput.Focus()
		}
		return m, cmd

	case key.Matches(msg, m.keys.ShiftTab):
		m.switchView((m.currentView + viewCount - 1) % viewCount)
		if m.currentView == queryView {
			cmd = m.queryInput.Focus()
		}
		return m, cmd
	}

	switch m.currentView {
	case diagramView:
		return m.updateDiagram(msg)
	case editorView:
		return m.updateEditor(msg)
	case historyView:
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	case queryView:
		if key.Matches(msg, m.keys.Enter) {
			cmd = m.queryInput.Focus()
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) switchView(v view) {
	m.currentView = v
	m.queryInput.Blur()
	m.classTable.Blur()
	m.historyTable.Blur()
	switch v {
	case diagramView:
		m.classTable.Focus()
	case historyView:
		m.historyTable.Focus()
	}
}

func (m model) updateDiagram(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if rec, ok := m.classAtCursor(); ok {
			// Picks go through the canvas, as a click on the diagram would.
			m.report(m.wb.Canvas().Click(rec.ID), "Selected "+rec.Name)
			m.memberCursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.AddClass):
		rec, err := m.wb.AddClass("")
		m.report(err, "Added "+rec.Name)
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.report(m.wb.DeleteSelected(), "Class deleted")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Rename):
		if rec, ok := m.classAtCursor(); ok {
			m.renaming = true
			m.renameInput.SetValue(rec.Name)
			return m, m.renameInput.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.classTable, cmd = m.classTable.Update(msg)
	return m, cmd
}

func (m model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rec, ok := m.wb.Selected()
	if !ok {
		return m, nil
	}
	total := len(rec.Attributes) + len(rec.Methods)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.memberCursor > 0 {
			m.memberCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.memberCursor < total-1 {
			m.memberCursor++
		}
	case key.Matches(msg, m.keys.Attribute):
		m.wb.CancelEdit()
		return m, m.openForm(form.KindAttribute)
	case key.Matches(msg, m.keys.Method):
		m.wb.CancelEdit()
		return m, m.openForm(form.KindMethod)
	case key.Matches(msg, m.keys.Edit):
		return m, m.editAtCursor(rec)
	case key.Matches(msg, m.keys.Remove):
		m.removeAtCursor(rec)
	}
	return m, nil
}

func (m *model) editAtCursor(rec uml.ClassRecord) tea.Cmd {
	if i := m.memberCursor; i < len(rec.Attributes) {
		if err := m.wb.EditAttribute(i); err != nil {
			m.report(err, "")
			return nil
		}
		return m.openForm(form.KindAttribute)
	}
	if err := m.wb.EditMethod(m.memberCursor - len(rec.Attributes)); err != nil {
		m.report(err, "")
		return nil
	}
	return m.openForm(form.KindMethod)
}

func (m *model) removeAtCursor(rec uml.ClassRecord) {
	var err error
	if i := m.memberCursor; i < len(rec.Attributes) {
		_, err = m.wb.RemoveAttribute(i)
	} else {
		_, err = m.wb.RemoveMethod(i - len(rec.Attributes))
	}
	m.report(err, "Member removed")
	if m.memberCursor > 0 {
		m.memberCursor--
	}
}

// openForm builds inputs for kind, prefilled from the draft in progress.
func (m *model) openForm(kind form.Kind) tea.Cmd {
	labels := attributeFields
	var values []string
	switch kind {
	case form.KindAttribute:
		if d, ok := m.wb.AttributeDraft(); ok {
			values = []string{d.Visibility, d.Name, d.Type}
		}
	case form.KindMethod:
		labels = methodFields
		if d, ok := m.wb.MethodDraft(); ok {
			values = []string{d.Visibility, d.Name, d.ReturnType, d.Args}
		}
	}

	m.formKind = kind
	m.formFocus = 0
	m.formInputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 60
		ti.Width = 30
		if i < len(values) {
			ti.SetValue(values[i])
		}
		m.formInputs[i] = ti
	}
	return m.formInputs[0].Focus()
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wb.CancelEdit()
		m.formKind = form.KindNone
		m.message = "Edit cancelled"
		m.messageErr = false
		return m, nil

	case "tab", "down":
		return m, m.focusField(m.formFocus + 1)

	case "shift+tab", "up":
		return m, m.focusField(m.formFocus - 1)

	case "enter":
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *model) focusField(i int) tea.Cmd {
	n := len(m.formInputs)
	m.formInputs[m.formFocus].Blur()
	m.formFocus = (i + n) % n
	return m.formInputs[m.formFocus].Focus()
}

// submitForm stores the typed fields as the draft and commits it. The form
// stays open with its contents when the commit is rejected.
func (m *model) submitForm() {
	v := func(i int) string { return m.formInputs[i].Value() }

	var err error
	switch m.formKind {
	case form.KindAttribute:
		if err = m.wb.DraftAttribute(form.AttributeDraft{Visibility: v(0), Name: v(1), Type: v(2)}); err == nil {
			_, err = m.wb.SubmitAttribute()
		}
	case form.KindMethod:
		if err = m.wb.DraftMethod(form.MethodDraft{Visibility: v(0), Name: v(1), ReturnType: v(2), Args: v(3)}); err == nil {
			_, err = m.wb.SubmitMethod()
		}
	}

	if err != nil {
		m.report(err, "")
		return
	}
	m.report(nil, "Saved "+strings.TrimSpace(v(1)))
	m.formKind = form.KindNone
}

func (m model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.renaming = false
		m.renameInput.Blur()
		return m, nil
	case "enter":
		if rec, ok := m.classAtCursor(); ok {
			// Inline label edits are a canvas transaction.
			m.report(m.wb.Canvas().Rename(rec.ID, strings.TrimSpace(m.renameInput.Value())), "Renamed")
		}
		m.renaming = false
		m.renameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m model) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.queryInput.Blur()
		if msg.String() == "tab" {
			m.switchView((m.currentView + 1) % viewCount)
		}
		return m, nil
	case "enter":
		m.executeQuery()
		return m, nil
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

func (m *model) executeQuery() {
	queryStr := strings.TrimSpace(m.queryInput.Value())
	if queryStr == "" {
		m.report(errors.New("query cannot be empty"), "")
		return
	}

	ctx, cancel := context.WithTimeout(m.ctx, queryTimeout)
	defer cancel()

	result := graphql.ExecuteWithDepthLimit(ctx, m.schema, queryStr, graphql.DefaultMaxDepth, nil)
	if result.HasErrors() {
		m.report(fmt.Errorf("query error: %s", result.Errors[0].Message), "")
		return
	}

	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		m.report(err, "")
		return
	}
	m.queryResult = string(data)
	m.report(nil, "Query executed")
}

func (m *model) report(err error, success string) {
	if err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}
	m.message = success
	m.messageErr = false
}

func (m *model) classAtCursor() (uml.ClassRecord, bool) {
	classes := m.wb.Snapshot().Classes()
	i := m.classTable.Cursor()
	if i < 0 || i >= len(classes) {
		return uml.ClassRecord{}, false
	}
	return classes[i], true
}

// refresh rebuilds the tables from the committed model and history.
func (m *model) refresh() {
	nodes := m.wb.Canvas().Nodes()
	rows := make([]table.Row, len(nodes))
	for i, n := range nodes {
		rows[i] = table.Row{
			n.ClassName,
			fmt.Sprintf("%d", len(n.Attributes)),
			fmt.Sprintf("%d", len(n.Methods)),
			fmt.Sprintf("%.0f, %.0f", n.Loc.X, n.Loc.Y),
		}
	}
	m.classTable.SetRows(rows)
	if m.classTable.Cursor() >= len(rows) && len(rows) > 0 {
		m.classTable.SetCursor(len(rows) - 1)
	}

	events := m.wb.History().Recent(50)
	hrows := make([]table.Row, len(events))
	for i, e := range events {
		hrows[i] = table.Row{
			e.Timestamp.Format("15:04:05"),
			string(e.Action),
			string(e.ResourceType),
			e.Member,
			string(e.Source),
			string(e.Status),
			e.ErrorMessage,
		}
	}
	m.historyTable.SetRows(hrows)
}
