// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for ZWS.
// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that acts as a router to all other sub-views.
package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zuhairmbj123/zws/buildvars"
	"github.com/zuhairmbj123/zws/internal/build"
	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"github.com/zuhairmbj123/zws/internal/logging"
	"github.com/zuhairmbj123/zws/internal/model"
)

// appCfg is the configuration the TUI was started with. Set once by Run.
var appCfg config.Config

// viewState represents which part of the UI is currently active.
type viewState int

const (
	// menuView is the main dashboard and navigation menu.
	menuView viewState = iota
	pagesView
	buildsView
	auditLogView
	languageView
)

// backToMenuMsg signals a sub-view wants to return to the main menu.
type backToMenuMsg struct{}

// dashboardDataMsg is a message containing the data for the main menu dashboard.
type dashboardDataMsg struct {
	data dashboardData
}

// buildFinishedMsg reports the outcome of a build triggered from the menu.
type buildFinishedMsg struct {
	summary *build.Summary
	err     error
}

// languageChangedMsg signals that the language has changed and the UI
// should be re-initialized.
type languageChangedMsg struct{}

// dashboardData holds the summary information for the main menu view.
type dashboardData struct {
	pageCount      int
	publishedCount int
	draftCount     int
	lastBuild      *model.BuildRecord
	deployTargets  int
	recentLogs     []model.AuditLogEntry
	err            error
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the currently
// active sub-model.
type mainModel struct {
	state     viewState
	menu      menuModel
	pages     *pagesModel
	builds    buildsModel
	auditLog  *auditLogModel
	language  languageModel
	dashboard dashboardData
	building  bool
	buildNote string
	width     int
	height    int
	err       error
}

// menuModel holds the state for the main menu.
type menuModel struct {
	choices []string // The menu items to show.
	cursor  int      // Which menu item our cursor is pointing at.
}

// languageModel holds the state for the language selection menu.
type languageModel struct {
	choices     map[string]string // map of lang code to display name
	orderedKeys []string          // for stable iteration
	cursor      int
}

// initialModel creates the starting state of the TUI, beginning at the
// main menu.
func initialModel() mainModel {
	return mainModel{
		state: menuView,
		menu: menuModel{
			choices: []string{
				i18n.T("menu.browse_pages"),
				i18n.T("menu.run_build"),
				i18n.T("menu.build_history"),
				i18n.T("menu.view_audit_log"),
				i18n.T("menu.language"),
			},
		},
	}
}

// Init is the first function that will be called by the Bubble Tea runtime.
// It kicks off the initial command to load data for the dashboard.
func (m mainModel) Init() tea.Cmd {
	return refreshDashboardCmd()
}

// Update is the main message loop. It handles all events (like key presses
// and window size changes) and delegates them to the active sub-model.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings that work everywhere.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case dashboardDataMsg:
		m.dashboard = msg.data
		if msg.data.err != nil {
			m.err = msg.data.err
		}
		return m, nil
	case buildFinishedMsg:
		m.building = false
		if msg.err != nil {
			m.buildNote = errorStyle.Render(fmt.Sprintf(i18n.T("tui.build_failed"), msg.err))
		} else {
			rec := msg.summary.Record
			m.buildNote = successStyle.Render(fmt.Sprintf(i18n.T("tui.build_done"),
				rec.PagesBuilt, rec.PagesSkipped, rec.Duration.Round(time.Millisecond)))
		}
		return m, refreshDashboardCmd()
	case languageChangedMsg:
		// The language has changed. Re-initialize the entire model to
		// apply new translations everywhere, preserving the window size.
		newModel := initialModel()
		newModel.width = m.width
		newModel.height = m.height
		return newModel, newModel.Init()
	}

	// Delegate updates to the currently active view.
	switch m.state {
	case pagesView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newPagesModel tea.Model
		newPagesModel, cmd = m.pages.Update(msg)
		if newModel, ok := newPagesModel.(*pagesModel); ok {
			m.pages = newModel
		}

	case buildsView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newBuildsModel tea.Model
		newBuildsModel, cmd = m.builds.Update(msg)
		m.builds = newBuildsModel.(buildsModel)

	case auditLogView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newAuditLogModel tea.Model
		newAuditLogModel, cmd = m.auditLog.Update(msg)
		m.auditLog = newAuditLogModel.(*auditLogModel)

	case languageView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.state = menuView
				return m, refreshDashboardCmd()
			case "up", "k":
				if m.language.cursor > 0 {
					m.language.cursor--
				}
			case "down", "j":
				if m.language.cursor < len(m.language.orderedKeys)-1 {
					m.language.cursor++
				}
			case "enter":
				langCode := m.language.orderedKeys[m.language.cursor]
				i18n.SetLang(langCode)
				appCfg.Language = langCode
				if err := config.WriteConfigFile(&appCfg, false); err != nil {
					m.err = fmt.Errorf("failed to save config: %w", err)
				}
				// Signal that the language has changed so the entire UI
				// can be re-initialized.
				return m, func() tea.Msg { return languageChangedMsg{} }
			}
		}

	default: // menuView
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.menu.cursor > 0 {
					m.menu.cursor--
				}
			case "down", "j":
				if m.menu.cursor < len(m.menu.choices)-1 {
					m.menu.cursor++
				}
			case "enter":
				switch m.menu.cursor {
				case 0: // Browse pages
					m.state = pagesView
					newModel := newPagesModel()
					m.pages = &newModel
					// Manually update the new sub-model with the current
					// window size so the table is sized correctly.
					var updatedModel tea.Model
					updatedModel, cmd = m.pages.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.pages = updatedModel.(*pagesModel)
					return m, cmd
				case 1: // Run build
					if m.building {
						return m, nil
					}
					m.building = true
					m.buildNote = specialStyle.Render(i18n.T("tui.build_running"))
					return m, runBuildCmd()
				case 2: // Build history
					m.state = buildsView
					m.builds = newBuildsModel()
					var updatedModel tea.Model
					updatedModel, cmd = m.builds.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.builds = updatedModel.(buildsModel)
					return m, cmd
				case 3: // View audit log
					m.state = auditLogView
					m.auditLog = newAuditLogModel()
					var newAuditLogModel tea.Model
					newAuditLogModel, cmd = m.auditLog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.auditLog = newAuditLogModel.(*auditLogModel)
					return m, cmd
				case 4: // Language
					m.state = languageView
					m.language = newLanguageModel()
					return m, nil
				}
			case "L":
				m.state = languageView
				m.language = newLanguageModel()
				return m, nil
			}
		}
	}

	return m, cmd
}

// View renders the TUI. It's called after every Update and delegates
// rendering to the currently active sub-model.
func (m mainModel) View() string {
	if m.err != nil {
		errorViewStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
		return errorViewStyle.Render(fmt.Sprintf("An error occurred: %v", m.err))
	}

	switch m.state {
	case pagesView:
		return m.pages.View()
	case buildsView:
		return m.builds.View()
	case auditLogView:
		return m.auditLog.View()
	case languageView:
		return m.language.View()
	default: // menuView
		return m.menu.View(m.dashboard, m.buildNote, m.width, m.height)
	}
}

// View renders the main menu and dashboard.
func (m menuModel) View(data dashboardData, buildNote string, width, height int) string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("dashboard.title"))
	subTitle := helpStyle.Render(i18n.T("dashboard.subtitle"))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subTitle)

	paneTitleStyle := lipgloss.NewStyle().Bold(true)

	// Menu List (Left Pane)
	var menuItems []string
	menuItems = append(menuItems, paneTitleStyle.Render(i18n.T("menu.navigation")), "")
	for i, choice := range m.choices {
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ "+choice))
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+choice))
		}
	}
	menuContent := lipgloss.JoinVertical(lipgloss.Left, menuItems...)

	// Dashboard (Right Pane)
	var dashboardItems []string
	dashboardItems = append(dashboardItems, paneTitleStyle.Render(i18n.T("dashboard.site_status")), "")

	draftNote := fmt.Sprintf("%d", data.draftCount)
	if data.draftCount > 0 {
		draftNote = specialStyle.Render(draftNote)
	}
	dashboardItems = append(dashboardItems,
		fmt.Sprintf("%s %d (%d published)", i18n.T("dashboard.pages"), data.pageCount, data.publishedCount),
		fmt.Sprintf("%s %s", i18n.T("dashboard.drafts"), draftNote),
		fmt.Sprintf("%s %d", i18n.T("dashboard.deploy_targets"), data.deployTargets),
	)

	dashboardItems = append(dashboardItems, "", paneTitleStyle.Render(i18n.T("dashboard.last_build")), "")
	if data.lastBuild == nil {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.never_built")))
	} else {
		b := data.lastBuild
		line := fmt.Sprintf("%s  %s  %d built / %d skipped",
			b.StartedAt.Format("2006-01-02 15:04"), b.Mode, b.PagesBuilt, b.PagesSkipped)
		dashboardItems = append(dashboardItems, successStyle.Render(line))
	}
	if buildNote != "" {
		dashboardItems = append(dashboardItems, buildNote)
	}

	// Recent Activity
	dashboardItems = append(dashboardItems, "", paneTitleStyle.Render(i18n.T("dashboard.recent_activity")), "")

	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	headerHeight := lipgloss.Height(header)
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")).Padding(0, 1).Italic(true)
	footerHeight := lipgloss.Height(footerStyle.Render(""))
	paneHeight := height - headerHeight - footerHeight - 2

	menuWidth := 34
	dashboardWidth := width - 4 - menuWidth - 2

	if len(data.recentLogs) == 0 {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.no_recent_activity")))
	} else {
		for _, entry := range data.recentLogs {
			ts := entry.Timestamp
			if len(ts) >= 16 {
				ts = ts[5:16] // MM-DD HH:MM
			}
			details := entry.Details
			detailsWidth := dashboardWidth - len(ts) - len(entry.Action) - 10
			if detailsWidth < 10 {
				detailsWidth = 10
			}
			if len(details) > detailsWidth {
				details = details[:detailsWidth-3] + "..."
			}
			logLine := lipgloss.JoinHorizontal(lipgloss.Left,
				helpStyle.Render(ts), " ", auditActionStyle(entry.Action).Render(entry.Action), " ", helpStyle.Render(details))
			dashboardItems = append(dashboardItems, logLine)
		}
	}
	dashboardContent := lipgloss.JoinVertical(lipgloss.Left, dashboardItems...)

	leftPane := paneStyle.Width(menuWidth).Height(paneHeight).Render(menuContent)
	rightPane := paneStyle.Width(dashboardWidth).Height(paneHeight).MarginLeft(2).Render(dashboardContent)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	footer := footerStyle.Render(AlignFooter(i18n.T("dashboard.footer"), "zws "+buildvars.VersionOrDefault("dev"), width))

	return lipgloss.JoinVertical(lipgloss.Top, header, mainArea, footer)
}

// newLanguageModel creates a new model for the language selection view.
func newLanguageModel() languageModel {
	choices := i18n.GetAvailableLocales()

	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return languageModel{
		choices:     choices,
		orderedKeys: keys,
		cursor:      0,
	}
}

// Init for languageModel.
func (m languageModel) Init() tea.Cmd { return nil }

// Update for languageModel.
func (m languageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

// View for languageModel.
func (m languageModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("menu.language"))

	var listItems []string
	listItems = append(listItems, titleStyle.Render(i18n.T("language.select")), "")

	for i, langCode := range m.orderedKeys {
		displayName := m.choices[langCode]
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+displayName))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+displayName))
		}
	}

	paneStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle).Padding(1, 2)
	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))

	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")).Padding(0, 1).Italic(true)
	helpLine := footerStyle.Render(AlignFooter(i18n.T("language.help"), "", 60))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", helpLine)
}

// Run is the main entrypoint for the TUI. It initializes and runs the
// Bubble Tea program.
func Run(cfg config.Config) {
	appCfg = cfg

	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		os.Exit(1)
	}
}

// refreshDashboardCmd is a tea.Cmd that fetches summary data for the main
// menu.
func refreshDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		data := dashboardData{deployTargets: len(appCfg.Deploy)}

		pages, err := db.GetAllPages()
		if err != nil {
			return dashboardDataMsg{data: dashboardData{err: err}}
		}
		data.pageCount = len(pages)
		for _, p := range pages {
			if p.Draft {
				data.draftCount++
			} else {
				data.publishedCount++
			}
		}

		if last, err := db.GetLastBuild(); err == nil {
			data.lastBuild = last
		}

		if logs, err := db.GetRecentAuditLogEntries(8); err == nil {
			data.recentLogs = logs
		}

		return dashboardDataMsg{data: data}
	}
}

// runBuildCmd is a tea.Cmd that runs a full site build in the background.
func runBuildCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := build.Run(build.Options{Config: appCfg})
		return buildFinishedMsg{summary: summary, err: err}
	}
}

// auditActionStyle picks a style for an audit action name so the log is
// scannable at a glance.
func auditActionStyle(action string) lipgloss.Style {
	switch {
	case strings.HasPrefix(action, "BUILD"),
		strings.HasPrefix(action, "TRUST"),
		strings.HasPrefix(action, "DEPLOY"):
		return successStyle
	case strings.HasPrefix(action, "PRUNE"),
		strings.HasPrefix(action, "DELETE"):
		return specialStyle
	default:
		return helpStyle
	}
}
