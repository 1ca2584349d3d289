package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Creator stores a new login.
type Creator interface {
	CreateUser(ctx context.Context, username, password string) error
}

var ErrPasswordMismatch = errors.New("passwords do not match")

const (
	inputUsername = iota
	inputPassword
	inputConfirm
)

type createdMsg struct{ username string }

type errMsg struct{ err error }

// FormModel collects a username and a confirmed password and hands them to
// a Creator on submit.
type FormModel struct {
	Users    Creator
	Timeout  time.Duration
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
	Created  string
	Busy     bool
}

func NewFormModel(users Creator) FormModel {
	inputs := make([]textinput.Model, 3)

	inputs[inputUsername] = textinput.New()
	inputs[inputUsername].Placeholder = "sommelier"
	inputs[inputUsername].Prompt = "Username: "
	inputs[inputUsername].PromptStyle = focusedStyle
	inputs[inputUsername].Focus()

	inputs[inputPassword] = textinput.New()
	inputs[inputPassword].Placeholder = "password"
	inputs[inputPassword].Prompt = "Password: "
	inputs[inputPassword].EchoMode = textinput.EchoPassword

	inputs[inputConfirm] = textinput.New()
	inputs[inputConfirm].Placeholder = "password"
	inputs[inputConfirm].Prompt = "Confirm:  "
	inputs[inputConfirm].EchoMode = textinput.EchoPassword

	return FormModel{Users: users, Timeout: 10 * time.Second, Inputs: inputs}
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.Created != "" {
				return m, tea.Quit
			}
			if m.FocusIdx == len(m.Inputs)-1 {
				if m.Busy {
					return m, nil
				}
				m.Busy = true
				m.Err = nil
				return m, m.submit()
			}
			m.focus(m.FocusIdx + 1)
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.focus(m.FocusIdx + 1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus(m.FocusIdx - 1)
			return m, nil
		}
	case createdMsg:
		m.Busy = false
		m.Created = msg.username
		return m, nil
	case errMsg:
		m.Busy = false
		m.Err = msg.err
		m.Inputs[inputPassword].Reset()
		m.Inputs[inputConfirm].Reset()
		m.focus(inputPassword)
		return m, nil
	}

	cmds := make([]tea.Cmd, len(m.Inputs))
	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *FormModel) focus(idx int) {
	n := len(m.Inputs)
	idx = ((idx % n) + n) % n
	m.Inputs[m.FocusIdx].Blur()
	m.Inputs[m.FocusIdx].PromptStyle = blurredStyle
	m.FocusIdx = idx
	m.Inputs[idx].Focus()
	m.Inputs[idx].PromptStyle = focusedStyle
}

// submit captures the field values now; the returned command runs off the
// update loop.
func (m FormModel) submit() tea.Cmd {
	username := strings.TrimSpace(m.Inputs[inputUsername].Value())
	password := m.Inputs[inputPassword].Value()
	confirm := m.Inputs[inputConfirm].Value()
	users, timeout := m.Users, m.Timeout
	return func() tea.Msg {
		if password != confirm {
			return errMsg{ErrPasswordMismatch}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := users.CreateUser(ctx, username, password); err != nil {
			return errMsg{err}
		}
		return createdMsg{username: username}
	}
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Wine Cellar - New User") + "\n\n")

	if m.Created != "" {
		b.WriteString(successStyle("Created user " + m.Created))
		b.WriteString("\n\n")
		b.WriteString(blurredStyle.Render("Press Enter to exit"))
		return docStyle.Render(b.String())
	}

	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		if i < len(m.Inputs)-1 {
			b.WriteRune('\n')
		}
	}

	b.WriteString("\n\n")
	if m.Busy {
		b.WriteString(blurredStyle.Render("Saving..."))
	} else {
		b.WriteString(blurredStyle.Render("Tab to change fields, Enter to submit, Esc to quit"))
	}

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}

	return docStyle.Render(b.String())
}
