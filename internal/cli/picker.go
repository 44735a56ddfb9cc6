package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbertsch/graphplace/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// algorithmChoice pairs an algorithm name with a one-line description.
type algorithmChoice struct {
	Name    string
	Summary string
}

// algorithmChoices lists the selectable layout algorithms in display order.
var algorithmChoices = []algorithmChoice{
	{pipeline.AlgorithmTree, "hierarchies with a single root per component"},
	{pipeline.AlgorithmLayered, "directed graphs arranged in layers"},
	{pipeline.AlgorithmForce, "organic spring embedding"},
	{pipeline.AlgorithmCircular, "nodes evenly spaced on a circle"},
	{pipeline.AlgorithmGrid, "uniform rows and columns"},
}

// =============================================================================
// AlgorithmPickerModel - Interactive algorithm selection
// =============================================================================

// AlgorithmPickerModel is the bubbletea model for interactive algorithm selection.
type AlgorithmPickerModel struct {
	Choices  []algorithmChoice
	Cursor   int
	Selected string
}

// NewAlgorithmPickerModel creates a picker with the cursor on the default algorithm.
func NewAlgorithmPickerModel() AlgorithmPickerModel {
	m := AlgorithmPickerModel{Choices: algorithmChoices}
	for i, c := range m.Choices {
		if c.Name == pipeline.DefaultAlgorithm {
			m.Cursor = i
		}
	}
	return m
}

func (m AlgorithmPickerModel) Init() tea.Cmd {
	return nil
}

func (m AlgorithmPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Choices[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m AlgorithmPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Algorithm"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, c := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-10s  %s", cursor, c.Name, listDimStyle.Render(c.Summary))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// pickAlgorithm runs the interactive picker and returns the chosen algorithm.
// It returns the empty string when the user quits without selecting.
func pickAlgorithm() (string, error) {
	p := tea.NewProgram(NewAlgorithmPickerModel(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run algorithm picker: %w", err)
	}
	model, ok := final.(AlgorithmPickerModel)
	if !ok {
		return "", nil
	}
	return model.Selected, nil
}

// isInteractive reports whether both stdin and stderr are terminals.
func isInteractive() bool {
	for _, f := range []*os.File{os.Stdin, os.Stderr} {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice == 0 {
			return false
		}
	}
	return true
}
