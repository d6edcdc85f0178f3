package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cepdnaclk/e22-co2060-Syncro/cmd/syncro/ui"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/catalog"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/logging"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/session"
)

// Pages of the interactive interface.
const (
	pageDashboard = iota
	pageDiscovery
	pageOrders
	pageMessages
	pageSettings
)

var pageNames = []string{"Dashboard", "Discover", "Orders", "Messages", "Settings"}

type appModel struct {
	app     *app
	styles  ui.Styles
	spinner spinner.Model

	page       int
	searchMode bool
	toggling   bool
	status     string
	width      int
	height     int
	ready      bool

	dashboard ui.DashboardPageModel
	discovery ui.DiscoveryPageModel
	orders    ui.OrdersPageModel
	messages  ui.MessagesPageModel
	settings  ui.SettingsPageModel
}

// Messages for tea updates
type (
	catalogMsg     []catalog.Listing
	ordersMsg      []api.Order
	roleToggledMsg struct{ err error }
)

// runInteractive starts the full-screen interface.
func runInteractive() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m := newAppModel(a)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newAppModel(a *app) appModel {
	styles := ui.NewStyles(ui.ThemeByName(a.session.Theme()))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := appModel{
		app:       a,
		styles:    styles,
		spinner:   sp,
		dashboard: ui.NewDashboardPageModel(styles),
		discovery: ui.NewDiscoveryPageModel(catalog.SampleListings, styles),
		orders:    ui.NewOrdersPageModel(styles),
		messages:  ui.NewMessagesPageModel(styles),
		settings:  ui.NewSettingsPageModel(styles),
	}
	m.syncSession()
	return m
}

// syncSession pushes current session state into the pages.
func (m *appModel) syncSession() {
	user := m.app.session.AuthUser()
	role := m.app.session.Role()

	name := ""
	userID := 0
	if user != nil {
		name = user.FirstName
		userID = user.UserID
	}
	m.dashboard.SetData(name, role, nil)
	m.orders.SetData(userID, role, nil)
	m.settings.SetData(user, role, m.app.session.Theme(),
		m.app.session.UserProfile(), m.app.session.BusinessProfile())
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCatalog(),
		m.loadOrders(),
	)
}

func (m appModel) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogMsg(m.app.fetchCatalog(context.Background()))
	}
}

func (m appModel) loadOrders() tea.Cmd {
	return func() tea.Msg {
		return ordersMsg(m.app.fetchOrders(context.Background()))
	}
}

func (m appModel) toggleRole() tea.Cmd {
	return func() tea.Msg {
		return roleToggledMsg{err: m.app.session.ToggleRole(context.Background())}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 4 // header + footer
		m.dashboard.SetSize(msg.Width-4, contentHeight)
		m.discovery.SetSize(msg.Width-4, contentHeight)
		m.orders.SetSize(msg.Width-4, contentHeight)
		m.messages.SetSize(msg.Width-4, contentHeight)
		m.settings.SetSize(msg.Width-4, contentHeight)
		return m, nil

	case catalogMsg:
		m.discovery.SetListings(msg)
		return m, nil

	case ordersMsg:
		user := m.app.session.AuthUser()
		if user != nil {
			m.dashboard.SetData(user.FirstName, m.app.session.Role(), msg)
			m.orders.SetData(user.UserID, m.app.session.Role(), msg)
		}
		return m, nil

	case roleToggledMsg:
		m.toggling = false
		if msg.err != nil {
			if errors.Is(msg.err, session.ErrToggleInFlight) {
				m.status = "Role switch already in progress"
			} else {
				m.status = "Role switch failed: " + msg.err.Error()
			}
			return m, nil
		}
		m.status = fmt.Sprintf("Now acting as %s", m.app.session.Role())
		m.syncSession()
		return m, m.loadOrders()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updatePage(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// While the discovery search owns the keyboard, only esc escapes.
	if m.searchMode {
		if msg.Type == tea.KeyEsc {
			m.searchMode = false
			m.discovery.Blur()
			return m, nil
		}
		return m.updatePage(msg)
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "1", "2", "3", "4", "5":
		m.page = int(msg.String()[0] - '1')
		m.status = ""
		return m, nil
	case "/":
		m.page = pageDiscovery
		m.searchMode = true
		return m, m.discovery.Focus()
	case "t":
		return m.handleThemeToggle()
	case "r":
		if m.toggling {
			m.status = "Role switch already in progress"
			return m, nil
		}
		if !m.app.session.IsLoggedIn() {
			m.status = "Sign in first: run `syncro login`"
			return m, nil
		}
		m.toggling = true
		m.status = "Switching role..."
		return m, m.toggleRole()
	}

	return m.updatePage(msg)
}

func (m appModel) handleThemeToggle() (tea.Model, tea.Cmd) {
	theme := "dark"
	if m.app.session.Theme() == "dark" {
		theme = "light"
	}
	if err := m.app.session.SetTheme(theme); err != nil {
		logging.UI("failed to persist theme: %v", err)
	}

	m.styles = ui.NewStyles(ui.ThemeByName(theme))
	m.spinner.Style = m.styles.Spinner
	m.dashboard.SetStyles(m.styles)
	m.discovery.SetStyles(m.styles)
	m.orders.SetStyles(m.styles)
	m.messages.SetStyles(m.styles)
	m.settings.SetStyles(m.styles)
	m.status = "Theme: " + theme
	m.syncSession()
	return m, nil
}

func (m appModel) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case pageDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case pageDiscovery:
		m.discovery, cmd = m.discovery.Update(msg)
	case pageOrders:
		m.orders, cmd = m.orders.Update(msg)
	case pageMessages:
		m.messages, cmd = m.messages.Update(msg)
	case pageSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	if !m.ready {
		return m.spinner.View() + " Loading Syncro..."
	}

	var tabs []string
	for i, name := range pageNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.page {
			tabs = append(tabs, m.styles.Selected.Render(" "+label+" "))
		} else {
			tabs = append(tabs, m.styles.Muted.Render(" "+label+" "))
		}
	}
	header := m.styles.Header.Width(m.width).Render("Syncro") + "\n" + strings.Join(tabs, "")

	var body string
	switch m.page {
	case pageDashboard:
		body = m.dashboard.View()
	case pageDiscovery:
		body = m.discovery.View()
	case pageOrders:
		body = m.orders.View()
	case pageMessages:
		body = m.messages.View()
	case pageSettings:
		body = m.settings.View()
	}

	footer := m.styles.Footer.Render("/ search · t theme · r switch role · q quit")
	if m.status != "" {
		footer = m.styles.Footer.Render(m.status)
	}
	if m.toggling {
		footer = m.spinner.View() + " " + footer
	}

	return header + "\n" + m.styles.Content.Render(body) + "\n" + footer
}
