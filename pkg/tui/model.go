package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/display"
	"github.com/ajxudir/skillsearch/pkg/filtering"
	"github.com/ajxudir/skillsearch/pkg/session"
	"github.com/ajxudir/skillsearch/pkg/table"
	"github.com/ajxudir/skillsearch/pkg/utils"
)

// focus identifies the widget that receives key presses.
type focus int

const (
	focusID focus = iota
	focusSkills
	focusResults
	focusCount
)

const (
	defaultSkillRows = 8
	defaultTableRows = 10
)

// ReloadMsg tells the browser that the session's file was loaded again.
type ReloadMsg struct {
	Table  *table.Table
	Cached bool
	Err    error
}

// Options tunes the browser.
//
// Fields:
//   - PreviewRows: Rows shown before the first search
//   - MaxCellWidth: Per-column cap of the result table
type Options struct {
	PreviewRows  int
	MaxCellWidth int
}

// Model is the bubbletea model of the browser.
type Model struct {
	session *session.Session
	opts    Options

	idInput  textinput.Model
	skills   []string
	selected map[string]bool
	cursor   int
	offset   int

	results      btable.Model
	resultsTitle string

	focus  focus
	status display.Message
	keys   keyMap
	help   help.Model
	styles Styles

	width     int
	skillRows int
	quitting  bool
}

// New creates a browser over s. The session should already hold a table;
// otherwise the browser starts empty and waits for a ReloadMsg.
//
// Parameters:
//   - s: Session to search
//   - opts: Display options
//
// Returns:
//   - Model: Initial model with the ID input focused
func New(s *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "ID: "
	ti.Placeholder = "e.g. 200027"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Focus()

	results := btable.New(
		btable.WithFocused(false),
		btable.WithHeight(defaultTableRows),
		btable.WithStyles(tableStyles(false)),
	)

	m := Model{
		session:   s,
		opts:      opts,
		idInput:   ti,
		selected:  make(map[string]bool),
		results:   results,
		focus:     focusID,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    DefaultStyles(),
		skillRows: defaultSkillRows,
	}
	if t := s.Table(); t != nil {
		m.loadTable(t)
		m.status = display.Loaded(t)
	} else if err := s.LastError(); err != nil {
		m.status = display.ForError(err)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case ReloadMsg:
		m.reload(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit) && m.focus != focusID:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		case key.Matches(msg, m.keys.Search):
			m.search()
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.clear()
			return m, nil
		}

		switch m.focus {
		case focusSkills:
			m.updateSkills(msg)
			return m, nil
		case focusResults:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}

	if m.focus == focusID {
		var cmd tea.Cmd
		m.idInput, cmd = m.idInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusID {
		m.idInput.Focus()
	} else {
		m.idInput.Blur()
	}
	if f == focusResults {
		m.results.Focus()
	} else {
		m.results.Blur()
	}
	m.results.SetStyles(tableStyles(f == focusResults))
}

func (m *Model) setSize(w, h int) {
	m.width = w
	m.results.SetWidth(utils.Max(20, w-4))
	// title, input box, skill header, skill box, results title, status, help
	fixed := 14 + m.skillRows
	m.results.SetHeight(utils.Max(3, h-fixed))
	m.help.Width = w
}

func (m *Model) updateSkills(msg tea.KeyMsg) {
	if len(m.skills) == 0 {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.skills)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		s := m.skills[m.cursor]
		if m.selected[s] {
			delete(m.selected, s)
		} else {
			m.selected[s] = true
		}
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.skillRows {
		m.offset = m.cursor - m.skillRows + 1
	}
}

// Selected returns the selected skills in vocabulary order.
func (m Model) Selected() []string {
	var out []string
	for _, s := range m.skills {
		if m.selected[s] {
			out = append(out, s)
		}
	}
	return out
}

// Criteria returns the criteria currently entered in the form.
func (m Model) Criteria() filtering.Criteria {
	return filtering.NewCriteria(m.idInput.Value(), m.Selected())
}

// Status returns the current status message.
func (m Model) Status() display.Message {
	return m.status
}

func (m *Model) search() {
	res, err := m.session.Run(m.Criteria())
	if err != nil {
		// The previous result stays on screen.
		m.status = display.ForError(err)
		return
	}
	m.showRows(display.ResultsHeader(res.Len()), res.Rows)
	if res.Empty() {
		m.status = display.NoResults()
	} else {
		m.status = display.Results(res.Len())
	}
}

func (m *Model) clear() {
	m.idInput.Reset()
	m.selected = make(map[string]bool)
	m.session.Reset()
	if t := m.session.Table(); t != nil {
		m.showPreview(t)
	}
	m.status = display.Message{Kind: display.KindInfo, Text: "Criteria cleared"}
}

func (m *Model) reload(msg ReloadMsg) {
	if msg.Err != nil {
		m.skills = nil
		m.selected = make(map[string]bool)
		m.cursor, m.offset = 0, 0
		m.showRows("", nil)
		m.status = display.ForError(msg.Err)
		return
	}
	if msg.Table == nil {
		return
	}
	if !msg.Cached {
		m.loadTable(msg.Table)
	}
	m.status = display.Reloaded(msg.Table)
}

// loadTable refreshes the vocabulary and shows the head of t. Selected
// skills that still exist stay selected.
func (m *Model) loadTable(t *table.Table) {
	m.skills = t.Vocabulary()
	kept := make(map[string]bool, len(m.selected))
	for _, s := range m.skills {
		if m.selected[s] {
			kept[s] = true
		}
	}
	m.selected = kept
	m.cursor, m.offset = 0, 0
	m.showPreview(t)
}

func (m *Model) showPreview(t *table.Table) {
	head := t.Head(m.previewRows())
	m.showRows(display.PreviewHeader(len(head), t.Len()), head)
}

func (m *Model) previewRows() int {
	if m.opts.PreviewRows > 0 {
		return m.opts.PreviewRows
	}
	return 5
}

// showRows replaces the result table. Rows are cleared before the columns
// change because the table renders existing rows against new columns.
func (m *Model) showRows(title string, rows []table.Row) {
	m.resultsTitle = title
	m.results.SetRows(nil)

	t := m.session.Table()
	if t == nil || t.Schema == nil {
		m.results.SetColumns(nil)
		return
	}

	values := display.RowValues(rows, t.Schema)
	cols := make([]btable.Column, len(t.Schema.Columns))
	for i, h := range t.Schema.Columns {
		width := utils.DisplayWidth(h)
		for _, v := range values {
			width = utils.Max(width, utils.DisplayWidth(utils.TruncateWidth(v[i], m.opts.MaxCellWidth)))
		}
		if m.opts.MaxCellWidth > 0 && width > m.opts.MaxCellWidth {
			width = m.opts.MaxCellWidth
		}
		cols[i] = btable.Column{Title: h, Width: width}
	}

	out := make([]btable.Row, len(values))
	for i, v := range values {
		row := make(btable.Row, len(v))
		for j, cell := range v {
			row[j] = utils.TruncateWidth(cell, m.opts.MaxCellWidth)
		}
		out[i] = row
	}
	m.results.SetColumns(cols)
	m.results.SetRows(out)
	m.results.GotoTop()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder

	title := constants.IconSearch + " Skill search"
	if t := m.session.Table(); t != nil {
		title += "  " + m.styles.Muted.Render(t.Source)
	}
	title += "  " + m.styles.Muted.Render(display.FormatState(m.session.State()))
	sb.WriteString(m.styles.Title.Render(title) + "\n\n")

	sb.WriteString(m.box(focusID).Render(m.idInput.View()) + "\n")
	sb.WriteString(m.styles.Section.Render(fmt.Sprintf("Code Mapping Skill (%d selected)", len(m.selected))) + "\n")
	sb.WriteString(m.box(focusSkills).Render(m.skillsView()) + "\n")

	if m.resultsTitle != "" {
		sb.WriteString(m.styles.Section.Render(m.resultsTitle) + "\n")
		sb.WriteString(m.results.View() + "\n")
	}

	if status := m.styles.Status(m.status); status != "" {
		sb.WriteString(status + "\n")
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) box(f focus) lipgloss.Style {
	if m.focus == f {
		return m.styles.Focused
	}
	return m.styles.Blurred
}

func (m Model) skillsView() string {
	if len(m.skills) == 0 {
		return m.styles.Muted.Render(constants.PlaceholderNone)
	}
	end := utils.Max(0, m.offset+m.skillRows)
	if end > len(m.skills) {
		end = len(m.skills)
	}
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		s := m.skills[i]
		pointer := "  "
		if m.focus == focusSkills && i == m.cursor {
			pointer = m.styles.Cursor.Render("> ")
		}
		check := "[ ] " + s
		if m.selected[s] {
			check = m.styles.Selected.Render("[x] " + s)
		}
		lines = append(lines, pointer+check)
	}
	if len(m.skills) > m.skillRows {
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.skills))))
	}
	return strings.Join(lines, "\n")
}
