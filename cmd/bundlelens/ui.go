// # cmd/bundlelens/ui.go
package main

import (
	"context"
	"fmt"
	"time"

	"bundlelens/internal/analysis"
	"bundlelens/internal/app"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	uiTitleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	depCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	summary    analysis.Summary
	lastUpdate time.Time
}

type updateMsg struct {
	data *analysis.ReportData
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.summary = msg.data.Summary
		m.lastUpdate = time.Now()
		m.list.SetItems(assetItems(msg.data))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	header := uiTitleStyle("bundlelens")
	counts := fmt.Sprintf("  %d modules", m.summary.Modules)
	if m.summary.DependencyModules > 0 {
		counts += depCountStyle.Render(fmt.Sprintf("  %d from dependencies", m.summary.DependencyModules))
	}
	status := ""
	if !m.lastUpdate.IsZero() {
		status = statusStyle.Render(fmt.Sprintf("  updated %s", m.lastUpdate.Format("15:04:05")))
	}
	return header + counts + status + "\n" + docStyle.Render(m.list.View())
}

func assetItems(data *analysis.ReportData) []list.Item {
	items := make([]list.Item, 0, len(data.Assets))
	for _, asset := range data.Assets {
		items = append(items, item{
			title: asset.Name,
			desc:  fmt.Sprintf("%d modules, %d bytes, chunks [%s]", len(asset.Modules), asset.Size, joinChunks(asset.Chunks)),
		})
	}
	return items
}

func joinChunks(chunks []string) string {
	out := ""
	for i, chunk := range chunks {
		if i > 0 {
			out += ", "
		}
		out += chunk
	}
	return out
}

func runUI(ctx context.Context, application *app.App, data *analysis.ReportData, watchEnabled bool) error {
	delegate := list.NewDefaultDelegate()
	assetList := list.New(assetItems(data), delegate, 0, 0)
	assetList.Title = "Script Assets"

	m := model{
		list:       assetList,
		summary:    data.Summary,
		lastUpdate: time.Now(),
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if watchEnabled {
		watcher, err := application.StartWatch(ctx, func(fresh *analysis.ReportData) {
			program.Send(updateMsg{data: fresh})
		})
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	_, err := program.Run()
	return err
}
