// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type (
	// PickerOptions configures the test target picker.
	PickerOptions struct {
		// Title is the prompt displayed above the picker.
		Title string
		// CurrentDirectory is the starting directory (default: current working directory).
		CurrentDirectory string
		// ShowHidden enables showing hidden files.
		ShowHidden bool
		// Height limits the visible height (0 for auto).
		Height int
		// FileAllowed enables file selection.
		FileAllowed bool
		// DirAllowed enables directory selection.
		DirAllowed bool
	}

	pickerModel struct {
		picker    filepicker.Model
		title     string
		result    string
		done      bool
		cancelled bool
	}
)

var (
	pickerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	pickerHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func newPickerModel(opts PickerOptions) *pickerModel {
	picker := filepicker.New()
	picker.CurrentDirectory = "."
	if opts.CurrentDirectory != "" {
		picker.CurrentDirectory = opts.CurrentDirectory
	}
	picker.ShowHidden = opts.ShowHidden

	// Default to allowing files if neither is specified.
	fileAllowed := opts.FileAllowed
	dirAllowed := opts.DirAllowed
	if !fileAllowed && !dirAllowed {
		fileAllowed = true
	}
	picker.FileAllowed = fileAllowed
	picker.DirAllowed = dirAllowed

	if opts.Height > 0 {
		picker.AutoHeight = false
		picker.Height = opts.Height
	}

	return &pickerModel{picker: picker, title: opts.Title}
}

// Init implements tea.Model.
func (m *pickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model.
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.result = path
		m.done = true
		return m, tea.Quit
	}

	return m, cmd
}

// View implements tea.Model.
func (m *pickerModel) View() string {
	if m.done {
		return ""
	}

	lines := make([]string, 0, 3)
	if m.title != "" {
		lines = append(lines, pickerTitleStyle.Render(m.title))
	}
	lines = append(lines,
		m.picker.View(),
		pickerHelpStyle.Render("enter select • esc cancel"),
	)

	return strings.Join(lines, "\n")
}

// ChoosePath runs the picker and returns the selected absolute path.
// A cancelled prompt returns ErrCancelled.
func ChoosePath(ctx context.Context, opts PickerOptions) (string, error) {
	model := newPickerModel(opts)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m := finalModel.(*pickerModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.result, nil
}
