package tui

import (
	"github.com/charmbracelet/lipgloss"

	"gemini-chat/internal/chatui"
)

type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	text    lipgloss.Color
	textDim lipgloss.Color
	border  lipgloss.Color
	surface lipgloss.Color
	err     lipgloss.Color
}

var palettes = map[chatui.Theme]palette{
	chatui.ThemeLight: {
		primary: lipgloss.Color("#2563eb"),
		accent:  lipgloss.Color("#0f766e"),
		text:    lipgloss.Color("#1f2937"),
		textDim: lipgloss.Color("#6b7280"),
		border:  lipgloss.Color("#d1d5db"),
		surface: lipgloss.Color("#f3f4f6"),
		err:     lipgloss.Color("#b91c1c"),
	},
	chatui.ThemeDark: {
		primary: lipgloss.Color("#7aa2f7"),
		accent:  lipgloss.Color("#9ece6a"),
		text:    lipgloss.Color("#c0caf5"),
		textDim: lipgloss.Color("#565f89"),
		border:  lipgloss.Color("#3b4261"),
		surface: lipgloss.Color("#1f2335"),
		err:     lipgloss.Color("#f7768e"),
	},
}

// styles is rebuilt whenever the theme changes.
type styles struct {
	header     lipgloss.Style
	title      lipgloss.Style
	hint       lipgloss.Style
	messages   lipgloss.Style
	userLabel  lipgloss.Style
	userBubble lipgloss.Style
	botLabel   lipgloss.Style
	botBubble  lipgloss.Style
	input      lipgloss.Style
	loading    lipgloss.Style
	status     lipgloss.Style
	err        lipgloss.Style
	text       lipgloss.Style
}

func newStyles(theme chatui.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[chatui.ThemeDark]
	}

	return styles{
		header: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		title: lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		hint:  lipgloss.NewStyle().Foreground(p.textDim),
		messages: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		userLabel: lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		userBubble: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.surface).
			Padding(0, 1),
		botLabel: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		botBubble: lipgloss.NewStyle().
			Foreground(p.text),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
		loading: lipgloss.NewStyle().Foreground(p.accent),
		status:  lipgloss.NewStyle().Foreground(p.textDim),
		err:     lipgloss.NewStyle().Foreground(p.err).Bold(true),
		text:    lipgloss.NewStyle().Foreground(p.text),
	}
}
