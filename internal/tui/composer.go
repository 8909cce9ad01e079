package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
)

type composerFocus int

const (
	focusCustomer composerFocus = iota
	focusReference
	focusExpires
	focusTermCount
	focusTermUnit
	focusProducts
	focusLines
	composerFocusCount
)

// composerModel edits a proposal draft. The total shown is the draft's
// running total.
type composerModel struct {
	draft    *proposal.Draft
	pickers  proposal.Pickers
	loaded   bool
	customer int
	product  int
	termUnit int
	line     int
	focus    composerFocus

	reference textinput.Model
	expires   textinput.Model
	termCount textinput.Model
	quantity  textinput.Model

	busy    bool
	message string
	failed  bool
}

func newComposer() *composerModel {
	return &composerModel{
		draft:     proposal.NewDraft(),
		customer:  -1,
		reference: newInput("Reference(optional)"),
		expires:   newInput(proposal.DateLayout),
		termCount: newInput("12"),
		quantity:  newInput("0"),
	}
}

func (c *composerModel) setPickers(p proposal.Pickers) {
	c.pickers = p
	c.loaded = true
	c.product = 0
}

func (c *composerModel) inputs() map[composerFocus]*textinput.Model {
	return map[composerFocus]*textinput.Model{
		focusReference: &c.reference,
		focusExpires:   &c.expires,
		focusTermCount: &c.termCount,
		focusLines:     &c.quantity,
	}
}

func (c *composerModel) setFocus(f composerFocus) tea.Cmd {
	c.focus = (f + composerFocusCount) % composerFocusCount
	var cmd tea.Cmd
	for k, in := range c.inputs() {
		if k == c.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (c *composerModel) selectLine(i int) {
	lines := c.draft.Lines()
	if len(lines) == 0 {
		c.line = 0
		c.quantity.SetValue("")
		return
	}
	c.line = min(max(i, 0), len(lines)-1)
	c.quantity.SetValue(strconv.FormatFloat(lines[c.line].Quantity, 'f', -1, 64))
	c.quantity.CursorEnd()
}

// apply copies the header inputs onto the draft.
func (c *composerModel) apply() {
	c.draft.CustomerID = ""
	if c.customer >= 0 && c.customer < len(c.pickers.Customers) {
		c.draft.CustomerID = c.pickers.Customers[c.customer].ID
	}
	c.draft.Reference = c.reference.Value()
	c.draft.ExpiresOn = time.Time{}
	if t, err := time.Parse(proposal.DateLayout, strings.TrimSpace(c.expires.Value())); err == nil {
		c.draft.ExpiresOn = t
	}
	c.draft.Term.Count, _ = strconv.Atoi(strings.TrimSpace(c.termCount.Value()))
	c.draft.Term.Unit = proposal.TermUnits()[c.termUnit]
}

// update handles composer keys. submit is true when the draft should be posted.
func (c *composerModel) update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	if c.busy {
		return nil, false
	}
	switch msg.String() {
	case "tab":
		return c.setFocus(c.focus + 1), false
	case "shift+tab":
		return c.setFocus(c.focus - 1), false
	case "ctrl+s":
		c.apply()
		return nil, true
	}

	switch c.focus {
	case focusCustomer:
		n := len(c.pickers.Customers)
		switch msg.String() {
		case "right":
			if n > 0 {
				c.customer = (c.customer + 1) % n
			}
		case "left":
			switch {
			case n == 0:
			case c.customer <= 0:
				c.customer = n - 1
			default:
				c.customer--
			}
		}
		return nil, false
	case focusTermUnit:
		n := len(proposal.TermUnits())
		switch msg.String() {
		case "right":
			c.termUnit = (c.termUnit + 1) % n
		case "left":
			c.termUnit = (c.termUnit - 1 + n) % n
		}
		return nil, false
	case focusProducts:
		n := len(c.pickers.Products)
		switch msg.String() {
		case "right", "down":
			if n > 0 {
				c.product = (c.product + 1) % n
			}
		case "left", "up":
			if n > 0 {
				c.product = (c.product - 1 + n) % n
			}
		case "enter":
			if n > 0 {
				c.selectLine(c.draft.AddLine(c.pickers.Products[c.product]))
			}
		}
		return nil, false
	case focusLines:
		switch msg.String() {
		case "up":
			c.selectLine(c.line - 1)
			return nil, false
		case "down":
			c.selectLine(c.line + 1)
			return nil, false
		}
		c.quantity, cmd = c.quantity.Update(msg)
		c.draft.SetQuantity(c.line, c.quantity.Value())
		return cmd, false
	}

	if in, ok := c.inputs()[c.focus]; ok {
		*in, cmd = in.Update(msg)
	}
	return cmd, false
}

func (c *composerModel) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create Proposal") + "\n\n")
	if !c.loaded {
		b.WriteString(mutedStyle.Render("Loading customers and products...") + "\n")
	}

	row := func(f composerFocus, label, value string) {
		l := labelStyle.Render(label)
		if c.focus == f {
			l = focusedLabel.Render(label)
		}
		b.WriteString(l + value + "\n")
	}

	customer := mutedStyle.Render("Select a customer")
	if c.customer >= 0 && c.customer < len(c.pickers.Customers) {
		customer = c.pickers.Customers[c.customer].Name
	}
	row(focusCustomer, "Customer", "< "+customer+" >")
	row(focusReference, "Proposal No", c.reference.View())
	row(focusExpires, "Proposal Expires", c.expires.View())
	row(focusTermCount, "Term", c.termCount.View())
	row(focusTermUnit, "Term unit", "< "+string(proposal.TermUnits()[c.termUnit])+" >")

	product := mutedStyle.Render("Select a product")
	if c.product < len(c.pickers.Products) {
		p := c.pickers.Products[c.product]
		product = fmt.Sprintf("%s (%s)", p.Name, strconv.FormatFloat(p.UnitPrice, 'f', -1, 64))
	}
	row(focusProducts, "Products", "< "+product+" >  enter: add")

	b.WriteString("\n")
	lines := c.draft.Lines()
	if len(lines) == 0 {
		b.WriteString(mutedStyle.Render("No products added") + "\n")
	}
	for i, l := range lines {
		qty := strconv.FormatFloat(l.Quantity, 'f', -1, 64)
		if c.focus == focusLines && i == c.line {
			qty = c.quantity.View()
		}
		marker := "  "
		if i == c.line {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-24s %10s x %-8s = %10.2f\n", marker, l.Name,
			strconv.FormatFloat(l.UnitPrice, 'f', -1, 64), qty, l.Subtotal()))
	}

	b.WriteString("\n" + totalStyle.Render(fmt.Sprintf("Effective Total Price  %.2f", c.draft.Total())) + "\n\n")
	switch {
	case c.busy:
		b.WriteString(mutedStyle.Render("Submitting..."))
	case c.message != "":
		b.WriteString(feedback(c.message, c.failed))
	default:
		b.WriteString(mutedStyle.Render("tab: next  ←/→: choose  ctrl+s: submit  esc: back"))
	}
	return boxStyle.Render(b.String())
}
