// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/i18n"
)

// buildsModel shows the recorded build history, newest first.
type buildsModel struct {
	table table.Model
	err   error
}

func newBuildsModel() buildsModel {
	m := buildsModel{}
	builds, err := db.GetRecentBuilds(50)
	if err != nil {
		m.err = err
		return m
	}

	columns := []table.Column{
		{Title: i18n.T("builds.header.started"), Width: 17},
		{Title: i18n.T("builds.header.mode"), Width: 12},
		{Title: i18n.T("builds.header.built"), Width: 7},
		{Title: i18n.T("builds.header.skipped"), Width: 8},
		{Title: i18n.T("builds.header.duration"), Width: 10},
		{Title: i18n.T("builds.header.drafts"), Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)

	var rows []table.Row
	for _, b := range builds {
		drafts := ""
		if b.Drafts {
			drafts = specialStyle.Render("yes")
		}
		rows = append(rows, table.Row{
			b.StartedAt.Format("2006-01-02 15:04"),
			b.Mode,
			fmt.Sprintf("%d", b.PagesBuilt),
			fmt.Sprintf("%d", b.PagesSkipped),
			b.Duration.Round(time.Millisecond).String(),
			drafts,
		})
	}
	t.SetRows(rows)

	m.table = t
	return m
}

func (m buildsModel) Init() tea.Cmd {
	return nil
}

func (m buildsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 6)
		m.table.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m buildsModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error loading build history: %v", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🔨 "+i18n.T("builds.title")) + "\n\n")

	if len(m.table.Rows()) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("builds.empty")))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString(helpStyle.Render("\n(↑/↓ to scroll, q to quit)"))
	return b.String()
}
