// Package ui contains the interactive terminal viewer for highlighted files.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewerModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

// NewViewer returns a Bubble Tea model that scrolls pre-rendered highlighted
// output.
func NewViewer(title, content string) tea.Model {
	return &viewerModel{title: title, content: content}
}

// RunViewer renders content in a full-screen scrollable view and blocks
// until the user quits.
func RunViewer(title, content string) error {
	_, err := tea.NewProgram(NewViewer(title, content), tea.WithAltScreen()).Run()
	return err
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		height := msg.Height - headerHeight - footerHeight
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *viewerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.vp.View() + "\n" + m.footerView()
}

func (m *viewerModel) headerView() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	title := style.Render(m.title)
	line := strings.Repeat("─", max(0, m.vp.Width-lipgloss.Width(title)))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, line)
}

func (m *viewerModel) footerView() string {
	style := lipgloss.NewStyle().Faint(true)
	info := style.Render(fmt.Sprintf("%3.f%%  q to quit", m.vp.ScrollPercent()*100))
	line := strings.Repeat("─", max(0, m.vp.Width-lipgloss.Width(info)))
	return lipgloss.JoinHorizontal(lipgloss.Center, line, info)
}
