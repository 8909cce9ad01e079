package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/quotedesk/internal/api"
	"github.com/rpggio/quotedesk/internal/domain/session"
)

type signInModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string
}

func newSignInModel() signInModel {
	email := newInput("you@company.com")
	email.Focus()

	password := newInput("password")
	password.EchoMode = textinput.EchoPassword

	return signInModel{email: email, password: password}
}

func (s *signInModel) setFocus(i int) {
	s.focus = i
	if i == 0 {
		s.email.Focus()
		s.password.Blur()
	} else {
		s.password.Focus()
		s.email.Blur()
	}
}

func (s signInModel) update(ctx context.Context, msg tea.KeyMsg, sessions Session) (signInModel, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		s.setFocus(1 - s.focus)
		return s, nil
	case "enter":
		if s.focus == 0 {
			s.setFocus(1)
			return s, nil
		}
		s.busy = true
		s.err = ""
		email, password := s.email.Value(), s.password.Value()
		return s, func() tea.Msg {
			_, err := sessions.Login(ctx, email, password)
			return loginDoneMsg{err: err}
		}
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s signInModel) done(err error) signInModel {
	s.busy = false
	if err == nil {
		s.err = ""
		s.password.SetValue("")
		s.setFocus(0)
		return s
	}
	s.err = loginMessage(err)
	return s
}

// loginMessage renders a failed sign-in the way the server phrased it.
func loginMessage(err error) string {
	if errors.Is(err, session.ErrInvalidInput) {
		msg := strings.TrimPrefix(err.Error(), session.ErrInvalidInput.Error()+": ")
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return api.UserMessage(err, "Sign in failed. Please try again.")
}

func (s signInModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in to quotedesk") + "\n\n")

	label := func(text string, focused bool) string {
		if focused {
			return focusedLabel.Render(text)
		}
		return labelStyle.Render(text)
	}
	b.WriteString(label("Email", s.focus == 0) + s.email.View() + "\n")
	b.WriteString(label("Password", s.focus == 1) + s.password.View() + "\n\n")

	switch {
	case s.busy:
		b.WriteString(mutedStyle.Render("Signing in..."))
	case s.err != "":
		b.WriteString(feedback(s.err, true))
	default:
		b.WriteString(mutedStyle.Render("enter: next / sign in  ctrl+c: quit"))
	}
	return boxStyle.Render(b.String())
}
