package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gemini-chat/internal/chatui"
	"gemini-chat/internal/models"
)

type fakeSender struct {
	reply string
	err   error
	got   []models.ChatRequest
}

func (f *fakeSender) Send(ctx context.Context, req models.ChatRequest) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

type fakeThemes struct {
	theme chatui.Theme
	err   error
}

func (f *fakeThemes) Load() chatui.Theme { return f.theme }

func (f *fakeThemes) Toggle() (chatui.Theme, error) {
	if f.err != nil {
		return "", f.err
	}
	f.theme = f.theme.Toggle()
	return f.theme, nil
}

func newTestModel(sender *fakeSender) Model {
	return New(sender, &fakeThemes{theme: chatui.ThemeLight})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func TestModel_SubmitAndReceive(t *testing.T) {
	sender := &fakeSender{reply: "hello back"}
	m := newTestModel(sender)
	m.textarea.SetValue("hello")

	m, cmd := update(t, m, enterKey)
	if !m.session.Loading() {
		t.Fatalf("expected loading after enter")
	}
	if m.textarea.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.textarea.Value())
	}

	reply, ok := findMsg[replyMsg](collect(cmd))
	if !ok {
		t.Fatalf("expected a reply message from the send command")
	}
	if len(sender.got) != 1 || sender.got[0].Message != "hello" || len(sender.got[0].History) != 0 {
		t.Fatalf("unexpected request sent: %+v", sender.got)
	}

	m, _ = update(t, m, reply)
	if m.session.Loading() {
		t.Fatalf("expected loading cleared after reply")
	}
	turns := m.session.Turns()
	if len(turns) != 2 || turns[1].Role != models.RoleBot || turns[1].Text != "hello back" {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}

func TestModel_EnterIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(&fakeSender{reply: "x"})
	m.textarea.SetValue("first")
	m, _ = update(t, m, enterKey)

	m.textarea.SetValue("second")
	m, cmd := update(t, m, enterKey)

	if cmd != nil {
		t.Fatalf("expected no command while loading")
	}
	if got := len(m.session.Turns()); got != 1 {
		t.Fatalf("expected 1 turn, got %d", got)
	}
}

func TestModel_BlankEnterIgnored(t *testing.T) {
	m := newTestModel(&fakeSender{})
	m.textarea.SetValue("   ")

	m, cmd := update(t, m, enterKey)
	if cmd != nil || m.session.Loading() || len(m.session.Turns()) != 0 {
		t.Fatalf("blank input must not submit")
	}
}

func TestModel_NewlineKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyEnter, Alt: true},
		{Type: tea.KeyCtrlJ},
	}

	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			m := newTestModel(&fakeSender{})
			m.textarea.SetValue("line")

			m, _ = update(t, m, key)
			if got := m.textarea.Value(); got != "line\n" {
				t.Fatalf("expected newline inserted, got %q", got)
			}
			if len(m.session.Turns()) != 0 {
				t.Fatalf("newline key must not submit")
			}
		})
	}
}

func TestModel_ErrorAddsNoBotTurn(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	m := newTestModel(sender)
	m.textarea.SetValue("hello")

	m, cmd := update(t, m, enterKey)
	failure, ok := findMsg[errMsg](collect(cmd))
	if !ok {
		t.Fatalf("expected an error message from the send command")
	}

	m, _ = update(t, m, failure)
	if m.session.Loading() {
		t.Fatalf("expected loading cleared after failure")
	}
	if got := len(m.session.Turns()); got != 1 {
		t.Fatalf("expected only the user turn, got %d", got)
	}
	if m.err == nil {
		t.Fatalf("expected error to be shown")
	}
}

func TestModel_ClearKeepsLoading(t *testing.T) {
	m := newTestModel(&fakeSender{reply: "x"})
	m.textarea.SetValue("hello")
	m, _ = update(t, m, enterKey)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.session.Turns()) != 0 {
		t.Fatalf("expected conversation cleared")
	}
	if !m.session.Loading() {
		t.Fatalf("clear must not change loading")
	}
}

func TestModel_ToggleTheme(t *testing.T) {
	themes := &fakeThemes{theme: chatui.ThemeLight}
	m := New(&fakeSender{}, themes)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme != chatui.ThemeDark || themes.theme != chatui.ThemeDark {
		t.Fatalf("expected dark theme after toggle, got %q", m.theme)
	}

	themes.err = errors.New("read-only")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme != chatui.ThemeDark || m.err == nil {
		t.Fatalf("failed toggle must keep theme and report error")
	}
}

func TestModel_CopyLastReply(t *testing.T) {
	m := newTestModel(&fakeSender{})
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m.session.Submit("q")
	m.session.Receive("**answer**")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if copied != "**answer**" {
		t.Fatalf("expected raw reply copied, got %q", copied)
	}
	if m.status == "" {
		t.Fatalf("expected status after copy")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(&fakeSender{})
	if !strings.Contains(m.View(), "Initializing") {
		t.Fatalf("expected initializing view before first size message")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	if !strings.Contains(view, "Gemini AI Assistant") {
		t.Fatalf("expected header in view")
	}

	m.textarea.SetValue("hello")
	m, _ = update(t, m, enterKey)
	if !strings.Contains(m.View(), "Gemini is thinking...") {
		t.Fatalf("expected loading indicator while waiting")
	}
}
