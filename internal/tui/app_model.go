package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/quotedesk/internal/console"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/session"
)

type screen int

const (
	screenSignIn screen = iota
	screenTable
	screenCustomerForm
	screenProductForm
	screenComposer
	screenHelp
)

// Session is the session surface the TUI drives.
type Session interface {
	Login(ctx context.Context, email, password string) (*session.Credential, error)
	Logout(ctx context.Context) error
	Require(ctx context.Context) (*session.Credential, error)
	Subscribe(fn func(authenticated bool)) func()
}

// Deps are the services behind the TUI.
type Deps struct {
	Console *console.Console
	Session Session
	Logger  *slog.Logger
}

type appModel struct {
	ctx      context.Context
	deps     Deps
	screen   screen
	resource catalog.Resource
	tables   map[catalog.Resource]*tableModel
	signIn   signInModel
	form     *formModel
	composer *composerModel
	help     helpModel
	status   string
	failed   bool
	width    int
	height   int
}

func newAppModel(ctx context.Context, deps Deps) appModel {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	m := appModel{
		ctx:      ctx,
		deps:     deps,
		resource: catalog.Proposals,
		tables:   make(map[catalog.Resource]*tableModel),
		signIn:   newSignInModel(),
	}
	for _, r := range catalog.Resources() {
		v, err := deps.Console.View(r)
		if err != nil {
			continue
		}
		m.tables[r] = newTableModel(v)
	}
	if _, err := deps.Session.Require(ctx); err == nil {
		m.screen = screenTable
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.screen == screenTable {
		return m.refresh(m.resource)
	}
	return textinput.Blink
}

func (m appModel) refresh(r catalog.Resource) tea.Cmd {
	t, ok := m.tables[r]
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return refreshedMsg{resource: r, err: t.view.Refresh(ctx)}
	}
}

// navigate routes to a screen, sending protected screens to sign-in
// while no session is stored.
func (m appModel) navigate(to screen) (appModel, tea.Cmd) {
	if to != screenSignIn {
		if _, err := m.deps.Session.Require(m.ctx); err != nil {
			if !errors.Is(err, session.ErrNotAuthenticated) {
				m.deps.Logger.Warn("session check failed", "error", err)
			}
			m.screen = screenSignIn
			m.status = "Please sign in."
			m.failed = false
			return m, m.signIn.email.Focus()
		}
	}
	m.screen = to
	m.status = ""

	switch to {
	case screenTable:
		return m, m.refresh(m.resource)
	case screenCustomerForm:
		m.form = newCustomerForm()
	case screenProductForm:
		m.form = newProductForm()
	case screenComposer:
		m.composer = newComposer()
		proposals, ctx := m.deps.Console.Proposals(), m.ctx
		return m, func() tea.Msg {
			return pickersLoadedMsg{pickers: proposals.LoadPickers(ctx)}
		}
	}
	return m, nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case sessionChangedMsg:
		if !msg.authenticated && m.screen != screenSignIn {
			m.screen = screenSignIn
			m.status = "Session ended. Please sign in again."
			m.failed = true
			return m, m.signIn.email.Focus()
		}
		return m, nil

	case loginDoneMsg:
		m.signIn = m.signIn.done(msg.err)
		if msg.err != nil {
			return m, nil
		}
		return m.navigate(screenTable)

	case logoutDoneMsg:
		if msg.err != nil {
			m.status = "Logout failed: " + msg.err.Error()
			m.failed = true
			return m, nil
		}
		m.screen = screenSignIn
		m.status = "Signed out."
		m.failed = false
		return m, m.signIn.email.Focus()

	case refreshedMsg:
		if t, ok := m.tables[msg.resource]; ok {
			t.loaded = true
			t.sync()
		}
		if msg.err != nil && msg.resource == m.resource && m.screen == screenTable {
			m.status = fmt.Sprintf("Could not load %s.", msg.resource)
			m.failed = true
		}
		return m, nil

	case createDoneMsg:
		if m.form == nil {
			return m, nil
		}
		m.form.busy = false
		m.form.message = msg.message
		m.form.failed = msg.err != nil
		if msg.err != nil {
			return m, nil
		}
		m.form.reset()
		return m, m.refresh(msg.resource)

	case pickersLoadedMsg:
		if m.composer != nil {
			m.composer.setPickers(msg.pickers)
		}
		return m, nil

	case proposalSubmittedMsg:
		if m.composer == nil {
			return m, nil
		}
		m.composer.busy = false
		m.composer.failed = msg.err != nil
		m.composer.message = msg.message
		if msg.err == nil {
			pickers := m.composer.pickers
			m.composer = newComposer()
			m.composer.setPickers(pickers)
			m.composer.message = msg.message
			return m, m.refresh(catalog.Proposals)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenSignIn:
		var cmd tea.Cmd
		m.signIn, cmd = m.signIn.update(m.ctx, msg, m.deps.Session)
		return m, cmd

	case screenTable:
		return m.handleTableKey(msg)

	case screenCustomerForm, screenProductForm:
		if msg.String() == "esc" {
			return m.navigate(screenTable)
		}
		cmd, submit := m.form.update(msg)
		if submit {
			return m, m.submitForm()
		}
		return m, cmd

	case screenComposer:
		if msg.String() == "esc" {
			return m.navigate(screenTable)
		}
		cmd, submit := m.composer.update(msg)
		if submit {
			return m, m.submitProposal()
		}
		return m, cmd

	case screenHelp:
		switch msg.String() {
		case "esc", "?", "q":
			m.screen = screenTable
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.tables[m.resource]
	if t != nil && t.filtering {
		cmd, _, _ := t.update(msg)
		return m, cmd
	}

	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.help = newHelpModel(m.width, m.height)
		m.screen = screenHelp
		return m, nil
	case "L":
		sessions, ctx := m.deps.Session, m.ctx
		return m, func() tea.Msg {
			return logoutDoneMsg{err: sessions.Logout(ctx)}
		}
	case "1", "2", "3", "4", "5":
		m.resource = catalog.Resources()[key[0]-'1']
		return m.navigate(screenTable)
	case "+":
		switch m.resource {
		case catalog.Customers:
			return m.navigate(screenCustomerForm)
		case catalog.Products:
			return m.navigate(screenProductForm)
		case catalog.Proposals:
			return m.navigate(screenComposer)
		}
		m.status = fmt.Sprintf("%s cannot be created here.", m.resource.Label())
		m.failed = true
		return m, nil
	}

	if t == nil {
		return m, nil
	}
	cmd, refresh, status := t.update(msg)
	m.status, m.failed = status, status != ""
	if refresh {
		return m.navigate(screenTable)
	}
	return m, cmd
}

func (m appModel) submitForm() tea.Cmd {
	f := m.form
	f.busy = true
	f.message = ""
	c, ctx := m.deps.Console, m.ctx
	switch f.resource {
	case catalog.Customers:
		in := f.customerInput()
		return func() tea.Msg {
			msg, err := c.CreateCustomer(ctx, in)
			return createDoneMsg{resource: catalog.Customers, message: msg, err: err}
		}
	default:
		in := f.productInput()
		return func() tea.Msg {
			msg, err := c.CreateProduct(ctx, in)
			return createDoneMsg{resource: catalog.Products, message: msg, err: err}
		}
	}
}

func (m appModel) submitProposal() tea.Cmd {
	c := m.composer
	if err := c.draft.Validate(); err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			c.message, c.failed = verr.First(), true
		}
		return nil
	}
	if _, err := m.deps.Session.Require(m.ctx); err != nil {
		c.message, c.failed = console.MissingTokenMessage, true
		return nil
	}
	c.busy = true
	c.message = ""
	proposals, ctx, draft := m.deps.Console.Proposals(), m.ctx, c.draft
	return func() tea.Msg {
		msg, err := proposals.Submit(ctx, draft)
		if err != nil {
			return proposalSubmittedMsg{message: "Error creating proposal. Please try again.", err: err}
		}
		if msg == "" {
			msg = "Proposal created successfully"
		}
		return proposalSubmittedMsg{message: msg}
	}
}

func (m appModel) View() string {
	var body string
	switch m.screen {
	case screenSignIn:
		body = m.signIn.view()
	case screenCustomerForm, screenProductForm:
		body = m.form.render()
	case screenComposer:
		body = m.composer.render()
	case screenHelp:
		body = m.help.view()
	default:
		if t := m.tables[m.resource]; t != nil {
			body = titleStyle.Render(m.resource.Label()) + "\n" + t.render()
		}
	}

	var b strings.Builder
	if m.screen != screenSignIn {
		b.WriteString(m.menu() + "\n\n")
	}
	b.WriteString(body + "\n")
	if m.status != "" {
		b.WriteString(feedback(m.status, m.failed) + "\n")
	}
	if m.screen == screenTable {
		b.WriteString(mutedStyle.Render("1-5: views  /: filter  ←/→: column  s: sort  n/p: page  r: refresh  +: new  ?: help  L: logout  q: quit"))
	}
	return b.String()
}

func (m appModel) menu() string {
	items := make([]string, 0, len(catalog.Resources()))
	for i, r := range catalog.Resources() {
		label := fmt.Sprintf("%d %s", i+1, r.Label())
		if r == m.resource {
			items = append(items, menuActive.Render(label))
		} else {
			items = append(items, menuStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}
