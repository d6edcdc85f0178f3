package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/session"
)

// MonthlyValue is one point in the dashboard charts.
type MonthlyValue struct {
	Month string
	Value float64
}

// Seller dashboard chart seeds, shown until enough order history exists.
var (
	RevenueData = []MonthlyValue{
		{"Jan", 4200}, {"Feb", 5100}, {"Mar", 6800},
		{"Apr", 7200}, {"May", 8500}, {"Jun", 9200},
	}
	OrderVolumeData = []MonthlyValue{
		{"Jan", 12}, {"Feb", 19}, {"Mar", 15},
		{"Apr", 25}, {"May", 22}, {"Jun", 30},
	}
)

// Activity is one entry in the recent-activity feed.
type Activity struct {
	Text string
	Time string
	Type string // success, info, default
}

// BuyerActivities seeds the buyer feed.
var BuyerActivities = []Activity{
	{"Payment confirmed for Logo Design", "2 hours ago", "success"},
	{"New message from WebCraft Inc", "5 hours ago", "info"},
	{"Order #ORD-004 status updated", "1 day ago", "default"},
	{"Review submitted for SEO Masters", "2 days ago", "default"},
}

// DashboardPageModel renders role-specific stats over the user's order book.
type DashboardPageModel struct {
	viewport viewport.Model
	styles   Styles
	role     session.Role
	name     string
	orders   []api.Order
	width    int
	height   int
}

// NewDashboardPageModel creates the dashboard page.
func NewDashboardPageModel(styles Styles) DashboardPageModel {
	return DashboardPageModel{
		viewport: viewport.New(80, 20),
		styles:   styles,
	}
}

// SetSize updates the size of the viewport.
func (m *DashboardPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 2
	m.UpdateContent()
}

// SetStyles swaps the theme styles and re-renders.
func (m *DashboardPageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.UpdateContent()
}

// SetData refreshes the dashboard inputs.
func (m *DashboardPageModel) SetData(name string, role session.Role, orders []api.Order) {
	m.name = name
	m.role = role
	m.orders = orders
	m.UpdateContent()
}

// UpdateContent rebuilds the viewport content.
func (m *DashboardPageModel) UpdateContent() {
	var sb strings.Builder

	greeting := fmt.Sprintf("Welcome back, %s", m.name)
	if m.name == "" {
		greeting = "Welcome to Syncro"
	}
	sb.WriteString(m.styles.Title.Render(greeting))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Acting as %s", m.role)))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderStats())
	sb.WriteString("\n")

	if m.role == session.RoleSeller {
		sb.WriteString(m.styles.Title.Render("Revenue (last 6 months)"))
		sb.WriteString("\n")
		sb.WriteString(renderBarChart(RevenueData, 40, m.styles))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Title.Render("Orders (last 6 months)"))
		sb.WriteString("\n")
		sb.WriteString(renderBarChart(OrderVolumeData, 40, m.styles))
	} else {
		sb.WriteString(m.styles.Title.Render("Recent Activity"))
		sb.WriteString("\n")
		for _, a := range BuyerActivities {
			marker := m.styles.Muted.Render("·")
			switch a.Type {
			case "success":
				marker = m.styles.Success.Render("✓")
			case "info":
				marker = m.styles.Info.Render("i")
			}
			sb.WriteString(fmt.Sprintf("%s %s %s\n", marker, a.Text, m.styles.Muted.Render(a.Time)))
		}
	}

	m.viewport.SetContent(sb.String())
}

func (m *DashboardPageModel) renderStats() string {
	var active, completed int
	var spent float64
	for _, o := range m.orders {
		switch o.Status {
		case "completed":
			completed++
			spent += o.Amount
		case "cancelled":
		default:
			active++
			spent += o.Amount
		}
	}

	label := "Total Spent"
	if m.role == session.RoleSeller {
		label = "Total Earned"
	}
	return fmt.Sprintf("%s %s   %s %s   %s %s\n",
		m.styles.Bold.Render("Active Orders:"), fmt.Sprint(active),
		m.styles.Bold.Render("Completed:"), fmt.Sprint(completed),
		m.styles.Bold.Render(label+":"), m.styles.Price.Render(fmt.Sprintf("$%.0f", spent)),
	)
}

// renderBarChart draws a horizontal bar chart scaled to maxWidth.
func renderBarChart(data []MonthlyValue, maxWidth int, styles Styles) string {
	var max float64
	for _, d := range data {
		if d.Value > max {
			max = d.Value
		}
	}
	if max == 0 {
		return styles.Muted.Render("No data yet.")
	}

	var sb strings.Builder
	for _, d := range data {
		bar := int(d.Value / max * float64(maxWidth))
		if bar < 1 {
			bar = 1
		}
		sb.WriteString(fmt.Sprintf("%-4s %s %s\n",
			d.Month,
			styles.Prompt.Render(strings.Repeat("█", bar)),
			styles.Muted.Render(fmt.Sprintf("%.0f", d.Value)),
		))
	}
	return sb.String()
}

// Update handles messages.
func (m DashboardPageModel) Update(msg tea.Msg) (DashboardPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m DashboardPageModel) View() string {
	return m.viewport.View()
}
