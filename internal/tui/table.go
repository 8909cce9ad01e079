package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/quotedesk/internal/console"
	"github.com/rpggio/quotedesk/internal/domain/viewstate"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 30
)

// tableModel presents one console view.
type tableModel struct {
	view      console.View
	table     table.Model
	col       int
	filtering bool
	filter    textinput.Model
	loaded    bool
}

func newTableModel(v console.View) *tableModel {
	filter := newInput("filter by title")
	filter.Prompt = "/ "

	t := &tableModel{
		view:   v,
		table:  table.New(table.WithFocused(true), table.WithHeight(v.PageSize()+1)),
		filter: filter,
	}
	t.sync()
	return t
}

// sync rebuilds the table from the view's current page.
func (t *tableModel) sync() {
	cols := t.view.Columns()
	rows := t.view.Rows()
	sort := t.view.Sort()

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(header(c, sort, false)) + 2
	}
	for _, r := range rows {
		for i, cell := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	columns := make([]table.Column, len(cols))
	for i, c := range cols {
		columns[i] = table.Column{
			Title: header(c, sort, i == t.col),
			Width: min(max(widths[i], minColumnWidth), maxColumnWidth),
		}
	}
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}

	t.table.SetRows(nil)
	t.table.SetColumns(columns)
	t.table.SetRows(tableRows)
	if c := t.table.Cursor(); c >= len(tableRows) {
		t.table.SetCursor(max(0, len(tableRows)-1))
	}
}

func header(c console.ColumnInfo, sort viewstate.SortState, selected bool) string {
	title := c.Title
	if sort.ColumnKey == c.Key {
		switch sort.Direction {
		case viewstate.DirectionAscending:
			title += " ▲"
		case viewstate.DirectionDescending:
			title += " ▼"
		}
	}
	if selected {
		title = "[" + title + "]"
	}
	return title
}

// update handles table keys. It returns a refresh request when r is pressed
// and a status line for rejected actions.
func (t *tableModel) update(msg tea.KeyMsg) (cmd tea.Cmd, refresh bool, status string) {
	if t.filtering {
		switch msg.String() {
		case "enter":
			t.filtering = false
			t.filter.Blur()
			return nil, false, ""
		case "esc":
			t.filtering = false
			t.filter.Blur()
			t.filter.SetValue("")
			t.view.SetFilter("")
			t.sync()
			return nil, false, ""
		}
		t.filter, cmd = t.filter.Update(msg)
		t.view.SetFilter(t.filter.Value())
		t.sync()
		return cmd, false, ""
	}

	switch msg.String() {
	case "/":
		t.filtering = true
		return t.filter.Focus(), false, ""
	case "left", "h":
		if t.col > 0 {
			t.col--
		}
		t.sync()
	case "right", "l":
		if t.col < len(t.view.Columns())-1 {
			t.col++
		}
		t.sync()
	case "s":
		cols := t.view.Columns()
		if len(cols) == 0 {
			return nil, false, ""
		}
		if err := t.view.ToggleSort(cols[t.col].Key); err != nil {
			return nil, false, fmt.Sprintf("%s cannot be sorted", cols[t.col].Title)
		}
		t.sync()
	case "n", "pgdown":
		t.view.SetPage(t.view.Page() + 1)
		t.sync()
	case "p", "pgup":
		t.view.SetPage(t.view.Page() - 1)
		t.sync()
	case "r":
		return nil, true, ""
	default:
		t.table, cmd = t.table.Update(msg)
	}
	return cmd, false, ""
}

func (t *tableModel) render() string {
	var b strings.Builder
	if t.filtering || t.filter.Value() != "" {
		b.WriteString(t.filter.View() + "\n")
	}
	if t.view.Loading() && !t.loaded {
		b.WriteString(mutedStyle.Render("Loading...") + "\n")
	}
	b.WriteString(t.table.View() + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("page %d/%d  %d of %d records",
		t.view.Page()+1, t.view.PageCount(), t.view.Len(), t.view.Total())))
	return b.String()
}
