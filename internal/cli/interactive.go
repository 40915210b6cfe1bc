package cli

import (
	"coordinates-service/internal/domain"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AFFF")).
			Padding(1, 0)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00AFFF")).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF87"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(1, 0)
)

// interactiveModel re-parses the input line on every keystroke.
type interactiveModel struct {
	input    []rune
	coords   domain.Coordinates
	notation domain.Notation
	err      error
	quitting bool
}

func newInteractiveModel() interactiveModel {
	return interactiveModel{}
}

func (m interactiveModel) Init() tea.Cmd {
	return nil
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = m.input[:0]
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	default:
		return m, nil
	}

	m.reparse()
	return m, nil
}

func (m *interactiveModel) reparse() {
	text := string(m.input)
	if strings.TrimSpace(text) == "" {
		m.coords, m.notation, m.err = domain.Coordinates{}, "", nil
		return
	}
	m.coords, m.notation, m.err = domain.Detect(text)
}

func (m interactiveModel) View() string {
	if m.quitting {
		return ""
	}

	var result string
	switch {
	case len(m.input) == 0:
		result = helpStyle.Render("Start typing, e.g. N 50 06.625 E 8 40.928")
	case m.err != nil:
		result = errorStyle.Render("not recognized")
	default:
		result = resultStyle.Render(fmt.Sprintf(
			"Notation: %s\n\nDEC: %s\nDMM: %s\nDMS: %s",
			m.notation, m.coords.StringDEC(), m.coords.StringDMM(), m.coords.StringDMS(),
		))
	}

	return titleStyle.Render("Coordinates") + "\n" +
		inputStyle.Render(string(m.input)+"_") + "\n\n" +
		result + "\n" +
		helpStyle.Render("ctrl+u clear  esc quit")
}
