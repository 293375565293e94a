package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palettelabs/shade/internal/models"
	"github.com/palettelabs/shade/internal/themes"
)

// Config configures the picker.
type Config struct {
	// Pairs to choose from, in display order.
	Pairs []*themes.Pair
	// Active is the currently selected pair id, marked in the list.
	Active string
	// Mode selects which variant of each pair is previewed.
	Mode models.Mode
}

// Result reports what the picker session ended with.
type Result struct {
	Selected string
	Aborted  bool
}

// Run launches the picker and blocks until the user selects a pair or
// quits.
func Run(cfg Config) (Result, error) {
	program := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return Result{Aborted: true}, err
	}
	m, ok := final.(model)
	if !ok || m.selected == "" {
		return Result{Aborted: true}, nil
	}
	return Result{Selected: m.selected}, nil
}

type model struct {
	pairs    []*themes.Pair
	active   string
	mode     models.Mode
	cursor   int
	selected string
	styles   Styles
	width    int
	height   int
}

func newModel(cfg Config) model {
	m := model{
		pairs:  cfg.Pairs,
		active: cfg.Active,
		mode:   cfg.Mode,
		styles: DefaultStyles(),
	}
	for i, pair := range cfg.Pairs {
		if pair.ID == cfg.Active {
			m.cursor = i
			break
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.pairs)-1 {
				m.cursor++
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.pairs) - 1
		case "t", "tab":
			m.mode = models.ModeFor(!m.mode.Dark())
		case "enter":
			if len(m.pairs) > 0 {
				m.selected = m.pairs[m.cursor].ID
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) View() string {
	lines := []string{
		m.styles.Title.Render(fmt.Sprintf("shade: pick a palette pair (%s preview)", m.mode)),
		"",
	}

	if len(m.pairs) == 0 {
		lines = append(lines, m.styles.Muted.Render("No pairs available."))
	}

	idWidth := 0
	variantWidth := 0
	for _, pair := range m.pairs {
		if len(pair.ID) > idWidth {
			idWidth = len(pair.ID)
		}
		if v := pair.Variant(m.mode); len(v) > variantWidth {
			variantWidth = len(v)
		}
	}

	for i, pair := range m.pairs {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Cursor.Render("> ")
		}

		id := fmt.Sprintf("%-*s", idWidth, pair.ID)
		if pair.ID == m.active {
			id = m.styles.Active.Render(id)
		} else if i == m.cursor {
			id = m.styles.Cursor.Render(id)
		} else {
			id = m.styles.Text.Render(id)
		}

		variant := m.styles.Muted.Render(fmt.Sprintf("%-*s", variantWidth, pair.Variant(m.mode)))
		swatch := Swatch(pair.PaletteFor(m.mode))

		lines = append(lines, fmt.Sprintf("%s%s  %s  %s", marker, id, variant, swatch))
	}

	lines = append(lines, "", m.styles.Muted.Render("enter apply | t toggle light/dark | q quit"))

	return strings.Join(lines, "\n") + "\n"
}
