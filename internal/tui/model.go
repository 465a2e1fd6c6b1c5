// Package tui provides the terminal chat client for the relay.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gemini-chat/internal/chatui"
	"gemini-chat/internal/models"
	"gemini-chat/internal/render"
)

// Message types for the TUI
type (
	replyMsg struct {
		text string
	}
	errMsg struct {
		err error
	}
)

// Sender delivers one chat request to the relay.
type Sender interface {
	Send(ctx context.Context, req models.ChatRequest) (string, error)
}

// ThemeToggler loads and flips the persisted theme.
type ThemeToggler interface {
	Load() chatui.Theme
	Toggle() (chatui.Theme, error)
}

// Model is the bubbletea model driving a chatui.Session.
type Model struct {
	sender   Sender
	themes   ThemeToggler
	session  *chatui.Session
	copyText func(string) error

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	theme  chatui.Theme
	styles styles

	ready  bool
	err    error
	status string

	width  int
	height int
}

func New(sender Sender, themes ThemeToggler) Model {
	theme := themes.Load()

	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	// Enter submits; newlines are inserted explicitly.
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Points

	m := Model{
		sender:   sender,
		themes:   themes,
		session:  chatui.NewSession(),
		copyText: clipboard.WriteAll,
		textarea: ta,
		spinner:  s,
	}
	m.applyTheme(theme)
	return m
}

// Run starts the full-screen chat client.
func Run(sender Sender, themes ThemeToggler) error {
	p := tea.NewProgram(New(sender, themes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 5
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "alt+enter", "ctrl+j", "shift+enter":
			if !m.session.Loading() {
				m.textarea.InsertString("\n")
			}
			return m, nil

		case "ctrl+l":
			m.session.Clear()
			m.err = nil
			m.status = ""
			m.refresh()
			return m, nil

		case "ctrl+t":
			theme, err := m.themes.Toggle()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.applyTheme(theme)
			m.refresh()
			return m, nil

		case "ctrl+y":
			if text, ok := m.session.LastReply(); ok {
				if err := m.copyText(text); err != nil {
					m.err = fmt.Errorf("copy to clipboard: %w", err)
				} else {
					m.status = "Copied last reply"
				}
			}
			return m, nil
		}

	case replyMsg:
		m.session.Receive(msg.text)
		m.refresh()

	case errMsg:
		m.session.Fail(msg.err)
		m.err = msg.err

	case spinner.TickMsg:
		if m.session.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only key input reaches the textarea, and only while idle.
	if !m.session.Loading() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.session.Loading() {
		return m, nil
	}

	req, ok := m.session.Submit(m.textarea.Value())
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.err = nil
	m.status = ""
	m.refresh()

	return m, tea.Batch(m.send(req), m.spinner.Tick)
}

func (m Model) send(req models.ChatRequest) tea.Cmd {
	sender := m.sender
	return func() tea.Msg {
		text, err := sender.Send(context.Background(), req)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{text: text}
	}
}

func (m *Model) applyTheme(theme chatui.Theme) {
	m.theme = theme
	m.styles = newStyles(theme)
	m.spinner.Style = m.styles.loading
	m.textarea.FocusedStyle.CursorLine = lipgloss.NewStyle()
	m.textarea.FocusedStyle.Base = m.styles.text
	m.textarea.FocusedStyle.Placeholder = m.styles.hint
	m.textarea.BlurredStyle = m.textarea.FocusedStyle
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m Model) renderConversation() string {
	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for _, turn := range m.session.Turns() {
		switch turn.Role {
		case models.RoleUser:
			b.WriteString(m.styles.userLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.styles.userBubble.Width(width).Render(turn.Text))
		default:
			b.WriteString(m.styles.botLabel.Render("Gemini"))
			b.WriteString("\n")
			b.WriteString(m.styles.botBubble.Render(m.renderMarkdown(turn.Text, width)))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderMarkdown(text string, width int) string {
	out, err := render.Markdown(text, render.Options{Style: string(m.theme), Width: width})
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m Model) View() string {
	if !m.ready {
		return "  Initializing..."
	}

	contentWidth := m.width - 4
	var sections []string

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("💬 Gemini AI Assistant"),
		m.styles.hint.Render("  •  "+string(m.theme)),
	)
	sections = append(sections, m.styles.header.Width(contentWidth).Render(headerContent))

	messages := m.viewport.View()
	if len(m.session.Turns()) == 0 {
		messages = m.styles.hint.Render("Start a conversation by typing a message below")
	}
	sections = append(sections, m.styles.messages.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messages))

	var input string
	if m.session.Loading() {
		input = m.spinner.View() + m.styles.loading.Render(" Gemini is thinking...")
	} else {
		input = m.textarea.View()
	}
	sections = append(sections, m.styles.input.Width(contentWidth).Render(input))

	status := "enter send • alt+enter newline • ctrl+l clear • ctrl+t theme • ctrl+y copy • esc quit"
	if m.status != "" {
		status = m.status
	}
	sections = append(sections, m.styles.status.Render(status))

	if m.err != nil {
		sections = append(sections, m.styles.err.Render("Error: "+m.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
