// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"github.com/zuhairmbj123/zws/internal/model"
	"github.com/zuhairmbj123/zws/internal/seo"
)

// pagesModel lists the indexed pages with an incremental filter. The
// canonical URL of the selected page can be copied to the clipboard.
type pagesModel struct {
	table       table.Model
	allPages    []model.Page // Master list of all pages
	visible     []model.Page // Pages currently shown, parallel to table rows
	filter      string
	isFiltering bool
	status      string
	err         error
}

func newPagesModel() pagesModel {
	m := pagesModel{}
	pages, err := db.GetAllPages()
	if err != nil {
		m.err = err
		return m
	}
	m.allPages = pages

	columns := []table.Column{
		{Title: i18n.T("pages.header.date"), Width: 10},
		{Title: i18n.T("pages.header.slug"), Width: 28},
		{Title: i18n.T("pages.header.title"), Width: 40},
		{Title: i18n.T("pages.header.tags"), Width: 20},
		{Title: i18n.T("pages.header.status"), Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15), // Placeholder height
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

	m.table = t
	m.rebuildTableRows()
	return m
}

// rebuildTableRows filters the master list of pages and populates the table.
func (m *pagesModel) rebuildTableRows() {
	var rows []table.Row
	m.visible = m.visible[:0]
	lowerFilter := strings.ToLower(m.filter)

	for _, p := range m.allPages {
		if m.filter != "" {
			match := strings.Contains(strings.ToLower(p.Title), lowerFilter) ||
				strings.Contains(strings.ToLower(p.Slug), lowerFilter) ||
				strings.Contains(strings.ToLower(p.Tags), lowerFilter)
			if !match {
				continue
			}
		}

		date := ""
		if !p.Date.IsZero() {
			date = p.Date.Format("2006-01-02")
		}
		status := i18n.T("pages.status.published")
		if p.Draft {
			status = specialStyle.Render(i18n.T("pages.status.draft"))
		}
		rows = append(rows, table.Row{date, p.Slug, p.Title, p.Tags, status})
		m.visible = append(m.visible, p)
	}
	m.table.SetRows(rows)

	if m.isFiltering {
		m.table.GotoTop()
	}
}

func (m pagesModel) Init() tea.Cmd {
	return nil
}

func (m *pagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// header(3) + filter/help(3)
		m.table.SetHeight(msg.Height - 6)
		m.table.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		// If filtering, handle input.
		if m.isFiltering {
			switch msg.Type {
			case tea.KeyEsc:
				m.isFiltering = false
				m.filter = ""
				m.rebuildTableRows()
			case tea.KeyEnter:
				m.isFiltering = false
			case tea.KeyBackspace:
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.rebuildTableRows()
				}
			case tea.KeyRunes:
				m.filter += string(msg.Runes)
				m.rebuildTableRows()
			}
			return m, nil
		}

		// Not filtering, handle commands.
		switch msg.String() {
		case "/":
			m.isFiltering = true
			m.filter = ""
			m.status = ""
			m.rebuildTableRows()
			return m, nil
		case "c":
			if p, ok := m.selectedPage(); ok {
				url := seo.AbsoluteURL(appCfg.Site.BaseURL, p.Route())
				if err := clipboard.WriteAll(url); err == nil {
					m.status = successStyle.Render(fmt.Sprintf(i18n.T("pages.copied"), url))
				} else {
					m.status = errorStyle.Render(fmt.Sprintf(i18n.T("pages.copy_failed"), err))
				}
			}
			return m, nil
		case "q", "esc":
			if m.filter != "" {
				m.filter = ""
				m.isFiltering = false
				m.rebuildTableRows()
				return m, nil
			}
			return m, func() tea.Msg { return backToMenuMsg{} }
		}
	}

	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// selectedPage returns the page under the cursor, if any.
func (m *pagesModel) selectedPage() (model.Page, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return model.Page{}, false
	}
	return m.visible[idx], true
}

func (m *pagesModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error loading pages: %v", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📄 "+i18n.T("pages.title")) + "\n\n")

	if len(m.table.Rows()) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("pages.empty")))
		b.WriteString(m.footerView())
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString(m.footerView())
	return b.String()
}

func (m *pagesModel) footerView() string {
	var filterStatus string
	if m.isFiltering {
		filterStatus = fmt.Sprintf("Filter: %s█", m.filter)
	} else if m.filter != "" {
		filterStatus = fmt.Sprintf("Filter: %s (press 'esc' to clear)", m.filter)
	} else {
		filterStatus = "Press / to filter..."
	}
	footer := helpStyle.Render(fmt.Sprintf("\n(↑/↓ to scroll, c: copy URL, q to quit) %s", filterStatus))
	if m.status != "" {
		footer += "\n" + m.status
	}
	return footer
}
