package tui

import (
	"context"
	"os"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/quotedesk/internal/app"
	"github.com/rpggio/quotedesk/internal/config"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/viewstate"
	"github.com/rpggio/quotedesk/internal/testserver"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cursorMode = cursor.CursorStatic
	helpStyle = "notty"
	os.Exit(m.Run())
}

type harness struct {
	ts  *testserver.TestServer
	app *app.App
}

func newHarness(t *testing.T, signedIn bool) *harness {
	t.Helper()
	ts := testserver.New(t)
	cfg := config.Defaults()
	cfg.API.BaseURL = ts.URL
	cfg.Session.Path = ":memory:"
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	if signedIn {
		_, err := a.Session.Login(context.Background(), testserver.Email, testserver.Password)
		require.NoError(t, err)
	}
	return &harness{ts: ts, app: a}
}

func (h *harness) model() appModel {
	return newAppModel(context.Background(), Deps{Console: h.app.Console, Session: h.app.Session})
}

// send applies msg and runs the returned command chain to completion,
// skipping commands that only drive the cursor.
func send(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(appModel)
	for cmd != nil {
		out := cmd()
		switch out.(type) {
		case loginDoneMsg, logoutDoneMsg, refreshedMsg, createDoneMsg, pickersLoadedMsg, proposalSubmittedMsg:
			next, cmd = m.Update(out)
			m = next.(appModel)
		default:
			cmd = nil
		}
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSignIn_SuccessShowsProposals(t *testing.T) {
	h := newHarness(t, false)
	m := h.model()
	require.Equal(t, screenSignIn, m.screen)

	m = typeText(t, m, testserver.Email)
	m = send(t, m, key(tea.KeyEnter))
	m = typeText(t, m, testserver.Password)
	m = send(t, m, key(tea.KeyEnter))

	require.Equal(t, screenTable, m.screen)
	require.Equal(t, catalog.Proposals, m.resource)
	require.Contains(t, m.View(), "Acme renewal")
	require.True(t, h.app.Session.Authenticated(context.Background()))
}

func TestSignIn_FailureShowsServerMessage(t *testing.T) {
	h := newHarness(t, false)
	m := h.model()

	m = typeText(t, m, testserver.Email)
	m = send(t, m, key(tea.KeyEnter))
	m = typeText(t, m, "wrong")
	m = send(t, m, key(tea.KeyEnter))

	require.Equal(t, screenSignIn, m.screen)
	require.Equal(t, "Invalid email or password", m.signIn.err)
}

func TestSignIn_RequiresEmail(t *testing.T) {
	h := newHarness(t, false)
	m := h.model()

	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "pw")
	m = send(t, m, key(tea.KeyEnter))

	require.Equal(t, "Please enter your email", m.signIn.err)
}

func TestTable_SwitchFilterSort(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	require.Equal(t, catalog.Customers, m.resource)

	tbl := m.tables[catalog.Customers]
	require.Equal(t, 3, tbl.view.Len())

	m = typeText(t, m, "/acme")
	m = send(t, m, key(tea.KeyEnter))
	require.Equal(t, 2, tbl.view.Len())

	m = typeText(t, m, "ss")
	require.Equal(t, viewstate.SortState{ColumnKey: "name", Direction: viewstate.DirectionDescending}, tbl.view.Sort())
	require.Equal(t, "acme Corp", tbl.view.Rows()[0][0])

	m = send(t, m, key(tea.KeyRight))
	m = typeText(t, m, "s")
	require.True(t, m.failed)
	require.Contains(t, m.status, "cannot be sorted")
}

func TestTable_PagesAndDegradedFetch(t *testing.T) {
	h := newHarness(t, true)
	h.ts.Backend.FailList(catalog.Invoices, testserver.FaultStatus)
	m := h.model()

	m = typeText(t, m, "3")
	require.Zero(t, m.tables[catalog.Invoices].view.Total())
	require.Equal(t, "Could not load invoices.", m.status)

	h.ts.Backend.FailList(catalog.Invoices, testserver.FaultNone)
	m = typeText(t, m, "r")
	require.Equal(t, 3, m.tables[catalog.Invoices].view.Total())
	require.Empty(t, m.status)
}

func TestProductForm_Create(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()

	m = typeText(t, m, "5+")
	require.Equal(t, screenProductForm, m.screen)

	m = send(t, m, key(tea.KeyCtrlS))
	require.True(t, m.form.failed)
	require.Equal(t, "Please input the Product name!", m.form.message)

	m = typeText(t, m, "Training")
	m = send(t, m, key(tea.KeyEnter))
	require.False(t, m.form.failed)
	require.Equal(t, "Product created successfully", m.form.message)
	require.Equal(t, 4, m.tables[catalog.Products].view.Total())

	m = send(t, m, key(tea.KeyEsc))
	require.Equal(t, screenTable, m.screen)
}

func TestCustomerForm_CountryResetsState(t *testing.T) {
	f := newCustomerForm()
	f.field("state").value = "Karnataka"
	f.setFocus(7)

	f.update(key(tea.KeyRight))
	require.Equal(t, "usa", f.value("country"))
	require.Empty(t, f.value("state"))

	f.setFocus(8)
	f.update(key(tea.KeyRight))
	require.Equal(t, "California", f.value("state"))
}

func TestComposer_RunningTotal(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()

	m = typeText(t, m, "1+")
	require.Equal(t, screenComposer, m.screen)
	require.True(t, m.composer.loaded)

	for range int(focusProducts) {
		m = send(t, m, key(tea.KeyTab))
	}
	m = send(t, m, key(tea.KeyEnter))
	m = send(t, m, key(tea.KeyRight))
	m = send(t, m, key(tea.KeyEnter))
	m = send(t, m, key(tea.KeyTab))
	require.Equal(t, focusLines, m.composer.focus)

	m = send(t, m, key(tea.KeyUp))
	m = send(t, m, key(tea.KeyBackspace))
	m = typeText(t, m, "3")
	m = send(t, m, key(tea.KeyDown))
	m = send(t, m, key(tea.KeyBackspace))
	m = typeText(t, m, "2")

	require.Equal(t, 40.0, m.composer.draft.Total())
	require.Contains(t, m.View(), "40.00")

	m = send(t, m, key(tea.KeyCtrlS))
	require.True(t, m.composer.failed)
	require.Equal(t, "Please select a customer!", m.composer.message)
	require.Empty(t, h.ts.Backend.Created(catalog.Proposals))
}

func TestComposer_Submit(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()
	m = typeText(t, m, "1+")

	m = send(t, m, key(tea.KeyRight))
	m = send(t, m, key(tea.KeyTab))
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "2026-12-31")
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "12")
	m = send(t, m, key(tea.KeyCtrlS))

	require.False(t, m.composer.failed, m.composer.message)
	require.Equal(t, "Proposal created successfully", m.composer.message)
	require.Len(t, h.ts.Backend.Created(catalog.Proposals), 1)
}

func TestRouter_GuardsProtectedScreens(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()
	require.Equal(t, screenTable, m.screen)

	require.NoError(t, h.app.Session.Logout(context.Background()))
	m, _ = m.navigate(screenComposer)
	require.Equal(t, screenSignIn, m.screen)
}

func TestSessionEndedReturnsToSignIn(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()

	m = send(t, m, sessionChangedMsg{authenticated: false})
	require.Equal(t, screenSignIn, m.screen)
	require.Contains(t, m.status, "Session ended")
}

func TestLogout(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()

	m = typeText(t, m, "L")
	require.Equal(t, screenSignIn, m.screen)
	require.False(t, h.app.Session.Authenticated(context.Background()))
}

func TestHelpScreen(t *testing.T) {
	h := newHarness(t, true)
	m := h.model()
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 80})

	m = typeText(t, m, "?")
	require.Equal(t, screenHelp, m.screen)
	require.NoError(t, m.help.err)
	require.Contains(t, m.View(), "Proposal composer")

	m = send(t, m, key(tea.KeyEsc))
	require.Equal(t, screenTable, m.screen)
}
